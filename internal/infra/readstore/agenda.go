package readstore

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AgendaReadStore serves the staff agenda and the public availability
// queries. Rows come back joined with the room name so views need no
// second lookup.
type AgendaReadStore struct {
	db infra.DBTX
}

func NewAgendaReadStore(db infra.DBTX) *AgendaReadStore {
	return &AgendaReadStore{db: db}
}

const selectAgendaSQL = `
SELECT r.id, r.room_id, rm.name, r.client_id, r.client_name, r.category,
	r.date, r.start_min, r.end_min, r.status, r.charge_cents, r.note,
	r.check_in_at, r.check_out_at, r.created_at, r.updated_at
FROM reservations r
JOIN rooms rm ON rm.id = r.room_id`

func (s *AgendaReadStore) FindBetween(ctx context.Context, roomID *uuid.UUID, from, to time.Time) ([]queries.AgendaRow, error) {
	sql := selectAgendaSQL + ` WHERE r.date BETWEEN $1 AND $2`
	args := []any{from, to}
	if roomID != nil {
		sql += ` AND r.room_id = $3`
		args = append(args, *roomID)
	}
	sql += ` ORDER BY r.date, r.start_min`

	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list agenda rows", err)
	}
	defer rows.Close()

	var out []queries.AgendaRow
	for rows.Next() {
		row, err := scanAgendaRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan agenda row", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list agenda rows", err)
	}
	return out, nil
}

func (s *AgendaReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AgendaRow, error) {
	row, err := scanAgendaRow(s.db.QueryRow(ctx, selectAgendaSQL+` WHERE r.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation", err)
	}
	return &row, nil
}

func scanAgendaRow(row pgx.Row) (queries.AgendaRow, error) {
	var r queries.AgendaRow
	err := row.Scan(&r.ID, &r.RoomID, &r.RoomName, &r.ClientID, &r.ClientName, &r.Category,
		&r.Date, &r.StartMin, &r.EndMin, &r.Status, &r.ChargeCents, &r.Note,
		&r.CheckInAt, &r.CheckOutAt, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}
