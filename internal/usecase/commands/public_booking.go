package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/verification"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/pkg/patch"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type StartPublicBookingParams struct {
	RoomID     uuid.UUID
	ClientID   uuid.UUID
	ClientName string
	Email      string
	Category   pricing.Category
	Date       time.Time
	StartTime  string
	EndTime    string
	Note       *string
}

// PublicBookingStarted is returned to the public caller: the booking id
// doubles as the confirmation handle, and the slot is soft-held until
// ExpiresAt.
type PublicBookingStarted struct {
	BookingID   uuid.UUID
	ChargeCents int64
	ExpiresAt   time.Time
}

type PublicBookingCommands interface {
	Start(ctx context.Context, p StartPublicBookingParams) (*PublicBookingStarted, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, code string) (*reservation.Reservation, error)
}

type publicBookingImpl struct {
	uow      shared.UnitOfWork
	holds    shared.HoldStore
	codes    shared.CodeStore
	notifier shared.Notifier
	clock    clock.Clock
	cfg      config.BookingConfig
}

func NewPublicBookingCommands(
	uow shared.UnitOfWork,
	holds shared.HoldStore,
	codes shared.CodeStore,
	notifier shared.Notifier,
	clock clock.Clock,
	cfg config.BookingConfig,
) PublicBookingCommands {
	return &publicBookingImpl{
		uow:      uow,
		holds:    holds,
		codes:    codes,
		notifier: notifier,
		clock:    clock,
		cfg:      cfg,
	}
}

// Start creates a soft hold and issues a verification code. The hold
// occupies the slot against every other booker for the code window; if
// the flow is abandoned the hold and the code expire together.
func (u *publicBookingImpl) Start(ctx context.Context, p StartPublicBookingParams) (*PublicBookingStarted, error) {
	interval, err := parseInterval(p.Date, p.StartTime, p.EndTime)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	hold := shared.Hold{
		BookingID:  uuid.New(),
		RoomID:     p.RoomID,
		ClientID:   p.ClientID,
		ClientName: p.ClientName,
		Email:      p.Email,
		Category:   p.Category,
		Interval:   interval,
		Note:       patch.Coalesce(p.Note, ""),
		CreatedAt:  now,
	}

	var roomName string
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockRoomAgenda(ctx, p.RoomID); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}

		rm, err := fetchRoom(ctx, tx.Reads(), p.RoomID)
		if err != nil {
			return err
		}
		roomName = rm.Name()

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
		hold.ChargeCents = charge.Cents()

		// The hold is written while the room lock is held so a concurrent
		// booker serialized behind us will see it.
		if err := u.holds.Put(ctx, hold, u.cfg.CodeTTL); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	clear, code, err := verification.Issue(hold.BookingID, p.Email, now, u.cfg.CodeTTL, u.cfg.CodeAttempts)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailed)
	}
	if err := u.codes.Save(ctx, code, u.cfg.CodeTTL); err != nil {
		return nil, errs.Mark(err, ErrStorageFailed)
	}

	// Best-effort delivery: a notification failure must not abort the flow.
	meta := shared.CodeMeta{
		BookingID: hold.BookingID,
		RoomName:  roomName,
		Date:      interval.Date().Format("2006-01-02"),
		StartTime: interval.Start().String(),
		EndTime:   interval.End().String(),
		ExpiresAt: code.ExpiresAt(),
	}
	if err := u.notifier.SendCode(ctx, p.Email, clear, meta); err != nil {
		slog.Warn("failed to send verification code", "booking_id", hold.BookingID, "error", err)
	}

	return &PublicBookingStarted{
		BookingID:   hold.BookingID,
		ChargeCents: hold.ChargeCents,
		ExpiresAt:   code.ExpiresAt(),
	}, nil
}

// Confirm validates the code and commits the held booking as a pending
// reservation. The attempt claim is atomic in the code store; the commit
// itself re-checks availability under the room lock.
func (u *publicBookingImpl) Confirm(ctx context.Context, bookingID uuid.UUID, candidate string) (*reservation.Reservation, error) {
	code, err := u.codes.Claim(ctx, bookingID)
	if err != nil {
		if errors.Is(err, verification.ErrCodeExpired) {
			// A consumed code and an expired one are indistinguishable in
			// the store; a committed reservation tells them apart.
			if existing, lookupErr := u.uow.Reads().ReservationByID(ctx, bookingID); lookupErr == nil && existing != nil {
				return nil, verification.ErrAlreadyVerified
			}
			return nil, verification.ErrCodeExpired
		}
		return nil, errs.Mark(err, ErrStorageFailed)
	}

	if err := code.Verify(u.clock.Now(), candidate); err != nil {
		if errors.Is(err, verification.ErrAttemptsExhausted) {
			// Terminal: release the slot and discard the code.
			u.discard(ctx, bookingID)
		}
		return nil, err
	}

	hold, err := u.holds.Get(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrStorageFailed)
	}
	if hold == nil {
		// Hold lapsed before the code did; treat as an expired flow.
		_ = u.codes.Consume(ctx, bookingID)
		return nil, verification.ErrCodeExpired
	}

	now := u.clock.Now()
	committed := reservation.ReconstructReservation(
		hold.BookingID, hold.RoomID, hold.ClientID, hold.ClientName,
		hold.Category, hold.Interval,
		reservation.StatusPending,
		pricing.NewMoney(hold.ChargeCents),
		reservation.NewNote(hold.Note),
		nil, nil,
		now, now,
	)

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.LockRoomAgenda(ctx, hold.RoomID); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		// Exclude our own hold: it still occupies the slot we are claiming.
		free, err := slotIsFree(ctx, tx.Reads(), u.holds, hold.RoomID, hold.Interval, hold.BookingID)
		if err != nil {
			return err
		}
		if !free {
			return ErrSlotConflict
		}
		if err := tx.Reservations().Create(ctx, committed); err != nil {
			return errs.Mark(err, ErrStorageFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.discard(ctx, bookingID)
	return committed, nil
}

func (u *publicBookingImpl) discard(ctx context.Context, bookingID uuid.UUID) {
	if err := u.codes.Consume(ctx, bookingID); err != nil {
		slog.Warn("failed to discard verification code", "booking_id", bookingID, "error", err)
	}
	if err := u.holds.Release(ctx, bookingID); err != nil {
		slog.Warn("failed to release hold", "booking_id", bookingID, "error", err)
	}
}
