package repository

import (
	"context"
	"errors"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/room"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CommandReads rehydrates full domain entities for the write side. The
// read side has its own leaner stores under readstore.
type CommandReads struct {
	db infra.DBTX
}

func NewCommandReads(db infra.DBTX) *CommandReads {
	return &CommandReads{db: db}
}

func (r *CommandReads) RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	var (
		name            string
		hourlyRateCents int64
		capacity        int
		equipment       string
	)
	err := r.db.QueryRow(ctx,
		`SELECT name, hourly_rate_cents, capacity, equipment FROM rooms WHERE id = $1`, id,
	).Scan(&name, &hourlyRateCents, &capacity, &equipment)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find room", err)
	}

	rm, err := room.NewRoom(id, name, pricing.NewMoney(hourlyRateCents), capacity, equipment)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid room row", err)
	}
	return rm, nil
}

func (r *CommandReads) ActiveRateRules(ctx context.Context, category pricing.Category) ([]pricing.RateRule, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, category, min_hours, max_hours, flat_cents, hourly_cents
		 FROM rate_rules WHERE active AND category = $1
		 ORDER BY min_hours`, category.String())
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rate rules", err)
	}
	defer rows.Close()

	var rules []pricing.RateRule
	for rows.Next() {
		var (
			id          uuid.UUID
			cat         string
			minHours    int
			maxHours    *int
			flatCents   *int64
			hourlyCents *int64
		)
		if err := rows.Scan(&id, &cat, &minHours, &maxHours, &flatCents, &hourlyCents); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan rate rule", err)
		}
		parsed, err := pricing.ParseCategory(cat)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid rate rule row", err)
		}
		var flat, hourly *pricing.Money
		if flatCents != nil {
			m := pricing.NewMoney(*flatCents)
			flat = &m
		}
		if hourlyCents != nil {
			m := pricing.NewMoney(*hourlyCents)
			hourly = &m
		}
		rule, err := pricing.NewRateRule(id, parsed, minHours, maxHours, flat, hourly)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "invalid rate rule row", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list rate rules", err)
	}
	return rules, nil
}

const selectReservationSQL = `
SELECT id, room_id, client_id, client_name, category,
	date, start_min, end_min, status, charge_cents, note,
	check_in_at, check_out_at, created_at, updated_at
FROM reservations`

func (r *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row := r.db.QueryRow(ctx, selectReservationSQL+` WHERE id = $1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
	}
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find reservation", err)
	}
	return res, nil
}

func (r *CommandReads) ReservationsBetween(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.db.Query(ctx,
		selectReservationSQL+` WHERE room_id = $1 AND date BETWEEN $2 AND $3 ORDER BY date, start_min`,
		roomID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list reservations", err)
	}
	defer rows.Close()

	var out []*reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan reservation", err)
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list reservations", err)
	}
	return out, nil
}

func scanReservation(row pgx.Row) (*reservation.Reservation, error) {
	var (
		id, roomID, clientID  uuid.UUID
		clientName, cat       string
		date                  time.Time
		startMin, endMin      int
		status                string
		chargeCents           int64
		note                  string
		checkInAt, checkOutAt *time.Time
		createdAt, updatedAt  time.Time
	)
	if err := row.Scan(&id, &roomID, &clientID, &clientName, &cat,
		&date, &startMin, &endMin, &status, &chargeCents, &note,
		&checkInAt, &checkOutAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	category, err := pricing.ParseCategory(cat)
	if err != nil {
		return nil, err
	}
	start, err := schedule.NewTimeOfDay(startMin/60, startMin%60)
	if err != nil {
		return nil, err
	}
	end, err := schedule.NewTimeOfDay(endMin/60, endMin%60)
	if err != nil {
		return nil, err
	}
	iv, err := schedule.NewInterval(date, start, end)
	if err != nil {
		return nil, err
	}

	return reservation.ReconstructReservation(
		id, roomID, clientID, clientName, category, iv,
		reservation.Status(status), pricing.NewMoney(chargeCents), reservation.NewNote(note),
		checkInAt, checkOutAt, createdAt, updatedAt,
	), nil
}
