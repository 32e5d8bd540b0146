package readstore

import (
	"context"
	"errors"

	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RoomReadStore struct {
	db infra.DBTX
}

func NewRoomReadStore(db infra.DBTX) *RoomReadStore {
	return &RoomReadStore{db: db}
}

const selectRoomSQL = `
SELECT id, name, hourly_rate_cents, capacity, equipment, created_at, updated_at
FROM rooms`

func (s *RoomReadStore) FindAll(ctx context.Context) ([]queries.RoomView, error) {
	rows, err := s.db.Query(ctx, selectRoomSQL+` ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rooms", err)
	}
	defer rows.Close()

	var out []queries.RoomView
	for rows.Next() {
		var v queries.RoomView
		if err := rows.Scan(&v.ID, &v.Name, &v.HourlyRateCents, &v.Capacity, &v.Equipment, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan room", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rooms", err)
	}
	return out, nil
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	var v queries.RoomView
	err := s.db.QueryRow(ctx, selectRoomSQL+` WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.HourlyRateCents, &v.Capacity, &v.Equipment, &v.CreatedAt, &v.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find room", err)
	}
	return &v, nil
}
