package commands

import (
	"context"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/room"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/infra"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/patch"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound        = errs.New("room not found")
	ErrReservationNotFound = errs.New("reservation not found")
	ErrSlotConflict        = errs.New("slot conflict")
	ErrStorageFailed       = errs.New("storage operation failed")
)

type CreateReservationParams struct {
	RoomID     uuid.UUID
	ClientID   uuid.UUID
	ClientName string
	Category   pricing.Category
	Date       time.Time
	StartTime  string
	EndTime    string
	Note       *string
}

// EditReservationParams carries only the fields being changed; nil means
// keep the current value.
type EditReservationParams struct {
	RoomID    *uuid.UUID
	Category  *pricing.Category
	Date      *time.Time
	StartTime *string
	EndTime   *string
	Note      *string
}

type ReservationCommands interface {
	Create(ctx context.Context, p CreateReservationParams) (*reservation.Reservation, error)
	Edit(ctx context.Context, id uuid.UUID, p EditReservationParams) (*reservation.Reservation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CheckIn(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	CheckOut(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	MarkNoShow(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	holds shared.HoldStore
	clock clock.Clock
}

func NewReservationCommands(uow shared.UnitOfWork, holds shared.HoldStore, clock clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:   uow,
		holds: holds,
		clock: clock,
	}
}

func (u *reservationCommandsImpl) Create(ctx context.Context, p CreateReservationParams) (*reservation.Reservation, error) {
	interval, err := parseInterval(p.Date, p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}

	var created *reservation.Reservation
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockRoomAgenda(ctx, p.RoomID); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}

		if _, err := fetchRoom(ctx, tx.Reads(), p.RoomID); err != nil {
			return err
		}

		free, err := slotIsFree(ctx, tx.Reads(), u.holds, p.RoomID, interval, uuid.Nil)
		if err != nil {
			return err
		}
		if !free {
			return ErrSlotConflict
		}

		charge, err := quoteCharge(ctx, tx.Reads(), p.Category, interval)
		if err != nil {
			return err
		}

		note := reservation.NewNote(patch.Coalesce(p.Note, ""))
		created = reservation.NewReservation(
			p.RoomID, p.ClientID, p.ClientName, p.Category, interval, charge, note, u.clock.Now(),
		)
		if err := tx.Reservations().Create(ctx, created); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (u *reservationCommandsImpl) Edit(ctx context.Context, id uuid.UUID, p EditReservationParams) (*reservation.Reservation, error) {
	var edited *reservation.Reservation
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := fetchReservation(ctx, tx.Reads(), id)
		if err != nil {
			return err
		}
		if !current.CanEdit() {
			return reservation.ErrNotEditable
		}

		roomID := patch.Coalesce(p.RoomID, current.RoomID())
		category := patch.Coalesce(p.Category, current.Category())
		date := patch.Coalesce(p.Date, current.Interval().Date())
		start := patch.Coalesce(p.StartTime, current.Interval().Start().String())
		end := patch.Coalesce(p.EndTime, current.Interval().End().String())
		note := current.Note()
		if p.Note != nil {
			note = reservation.NewNote(*p.Note)
		}

		interval, err := parseInterval(date, start, end)
		if err != nil {
			return err
		}

		if err := tx.LockRoomAgenda(ctx, roomID); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		if roomID != current.RoomID() {
			if _, err := fetchRoom(ctx, tx.Reads(), roomID); err != nil {
				return err
			}
		}

		free, err := slotIsFree(ctx, tx.Reads(), u.holds, roomID, interval, current.ID())
		if err != nil {
			return err
		}
		if !free {
			return ErrSlotConflict
		}

		charge := current.Charge()
		if roomID != current.RoomID() || category != current.Category() ||
			!interval.Date().Equal(current.Interval().Date()) ||
			interval.Start() != current.Interval().Start() ||
			interval.End() != current.Interval().End() {
			charge, err = quoteCharge(ctx, tx.Reads(), category, interval)
			if err != nil {
				return err
			}
		}

		if err := current.ApplyEdit(roomID, category, interval, charge, note, u.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, current); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		edited = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return edited, nil
}

func (u *reservationCommandsImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := fetchReservation(ctx, tx.Reads(), id)
		if err != nil {
			return err
		}
		if !current.CanDelete() {
			return reservation.ErrNotDeletable
		}
		if err := tx.Reservations().Delete(ctx, id); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		return nil
	})
}

func (u *reservationCommandsImpl) CheckIn(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return u.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.CheckIn(now)
	})
}

func (u *reservationCommandsImpl) CheckOut(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return u.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.CheckOut(now)
	})
}

func (u *reservationCommandsImpl) MarkNoShow(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	return u.transition(ctx, id, func(r *reservation.Reservation, now time.Time) error {
		return r.MarkAbsent(now)
	})
}

func (u *reservationCommandsImpl) transition(
	ctx context.Context,
	id uuid.UUID,
	apply func(*reservation.Reservation, time.Time) error,
) (*reservation.Reservation, error) {
	var result *reservation.Reservation
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		current, err := fetchReservation(ctx, tx.Reads(), id)
		if err != nil {
			return err
		}
		if err := apply(current, u.clock.Now()); err != nil {
			return err
		}
		if err := tx.Reservations().Update(ctx, current); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		result = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func fetchRoom(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*room.Room, error) {
	r, err := reads.RoomByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailed)
	}
	return r, nil
}

func fetchReservation(ctx context.Context, reads shared.CommandReads, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := reads.ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrStorageFailed)
	}
	return r, nil
}

// slotIsFree applies the display-date availability rule against both
// committed reservations and live soft holds.
func slotIsFree(
	ctx context.Context,
	reads shared.CommandReads,
	holds shared.HoldStore,
	roomID uuid.UUID,
	interval schedule.Interval,
	exclude uuid.UUID,
) (bool, error) {
	display := interval.DisplayDate()
	from, to := display, display.AddDate(0, 0, 1)

	existing, err := reads.ReservationsBetween(ctx, roomID, from, to)
	if err != nil {
		return false, errs.Mark(err, ErrStorageFailed)
	}
	booked := make([]schedule.Booked, 0, len(existing))
	for _, r := range existing {
		// A recorded no-show frees its slot.
		if r.Status() == reservation.StatusAbsent {
			continue
		}
		booked = append(booked, r.Booked())
	}

	live, err := holds.ActiveForRoom(ctx, roomID, from, to)
	if err != nil {
		return false, errs.Mark(err, ErrStorageFailed)
	}
	for _, h := range live {
		booked = append(booked, h.Booked())
	}

	return schedule.IsFree(interval, booked, exclude), nil
}

func quoteCharge(
	ctx context.Context,
	reads shared.CommandReads,
	category pricing.Category,
	interval schedule.Interval,
) (pricing.Money, error) {
	rules, err := reads.ActiveRateRules(ctx, category)
	if err != nil {
		return pricing.Money{}, errs.Mark(err, ErrStorageFailed)
	}
	return pricing.ComputeCharge(category, interval.DurationMinutes(), rules)
}

func parseInterval(date time.Time, start, end string) (schedule.Interval, error) {
	startTD, err := schedule.ParseTimeOfDay(start)
	if err != nil {
		return schedule.Interval{}, errs.Mark(err, schedule.ErrInvalidInterval)
	}
	endTD, err := schedule.ParseTimeOfDay(end)
	if err != nil {
		return schedule.Interval{}, errs.Mark(err, schedule.ErrInvalidInterval)
	}
	return schedule.NewInterval(date, startTD, endTD)
}
