package shared

import (
	"context"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/room"

	"github.com/google/uuid"
)

// UnitOfWork brackets a check-then-commit sequence in one transaction so
// two concurrent bookers cannot both pass the availability check for the
// same slot.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access to command reads outside a transaction
	Reads() CommandReads
}

type Tx interface {
	Reservations() ReservationRepository
	Reads() CommandReads
	// LockRoomAgenda serializes all bookers of one room until the
	// transaction ends. Must be called before the availability check.
	LockRoomAgenda(ctx context.Context, roomID uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, res *reservation.Reservation) error
	Update(ctx context.Context, res *reservation.Reservation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommandReads are the lookups command handlers need before mutating.
// Implementations rehydrate full domain entities, not raw rows.
type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	ActiveRateRules(ctx context.Context, category pricing.Category) ([]pricing.RateRule, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// ReservationsBetween returns reservations whose nominal date lies in
	// [from, to] inclusive, for one room.
	ReservationsBetween(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error)
}
