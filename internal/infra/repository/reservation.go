package repository

import (
	"context"
	"errors"

	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type ReservationRepository struct {
	db infra.DBTX
}

func NewReservationRepository(db infra.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

const createReservationSQL = `
INSERT INTO reservations (
	id, room_id, client_id, client_name, category,
	date, start_min, end_min, status, charge_cents, note,
	check_in_at, check_out_at, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	iv := res.Interval()
	_, err := r.db.Exec(ctx, createReservationSQL,
		res.ID(), res.RoomID(), res.ClientID(), res.ClientName(), res.Category().String(),
		iv.Date(), iv.Start().MinuteOfDay(), iv.End().MinuteOfDay(),
		res.Status().String(), res.Charge().Cents(), res.Note().String(),
		res.CheckInAt(), res.CheckOutAt(), res.CreatedAt(), res.UpdatedAt(),
	)
	if err != nil {
		return wrapWriteErr("failed to create reservation", err)
	}
	return nil
}

const updateReservationSQL = `
UPDATE reservations SET
	room_id = $2, client_name = $3, category = $4,
	date = $5, start_min = $6, end_min = $7,
	status = $8, charge_cents = $9, note = $10,
	check_in_at = $11, check_out_at = $12, updated_at = $13
WHERE id = $1`

func (r *ReservationRepository) Update(ctx context.Context, res *reservation.Reservation) error {
	iv := res.Interval()
	tag, err := r.db.Exec(ctx, updateReservationSQL,
		res.ID(), res.RoomID(), res.ClientName(), res.Category().String(),
		iv.Date(), iv.Start().MinuteOfDay(), iv.End().MinuteOfDay(),
		res.Status().String(), res.Charge().Cents(), res.Note().String(),
		res.CheckInAt(), res.CheckOutAt(), res.UpdatedAt(),
	)
	if err != nil {
		return wrapWriteErr("failed to update reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return wrapWriteErr("failed to delete reservation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return nil
}

func wrapWriteErr(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.WrapRepoErr(infra.KindDuplicateKey, msg, err)
		case pgErrCodeForeignKeyViolation:
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, msg, err)
		}
	}
	return infra.WrapRepoErr(infra.KindDBFailure, msg, err)
}
