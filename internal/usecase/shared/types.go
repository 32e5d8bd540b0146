package shared

import (
	"context"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/domain/verification"

	"github.com/google/uuid"
)

// Hold is a provisional public reservation occupying its slot until the
// verification window elapses. It lives only in the hold store and never
// reaches primary storage unless confirmed.
type Hold struct {
	BookingID   uuid.UUID
	RoomID      uuid.UUID
	ClientID    uuid.UUID
	ClientName  string
	Email       string
	Category    pricing.Category
	Interval    schedule.Interval
	ChargeCents int64
	Note        string
	CreatedAt   time.Time
}

func (h Hold) Booked() schedule.Booked {
	return schedule.Booked{ID: h.BookingID, Interval: h.Interval}
}

// HoldStore keeps soft holds with automatic expiry; an abandoned public
// booking flow cleans itself up without explicit cancellation.
type HoldStore interface {
	Put(ctx context.Context, hold Hold, ttl time.Duration) error
	Get(ctx context.Context, bookingID uuid.UUID) (*Hold, error)
	// ActiveForRoom returns live holds for a room whose nominal date lies
	// in [from, to] inclusive.
	ActiveForRoom(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]Hold, error)
	Release(ctx context.Context, bookingID uuid.UUID) error
}

// CodeStore persists verification codes. Claim must be atomic: it
// consumes one attempt and returns the code as stored before the claim,
// so concurrent verify calls cannot bypass the attempt limit.
type CodeStore interface {
	Save(ctx context.Context, code *verification.Code, ttl time.Duration) error
	// Claim returns verification.ErrCodeExpired when no code exists
	// (expired, consumed, or never issued).
	Claim(ctx context.Context, bookingID uuid.UUID) (*verification.Code, error)
	Consume(ctx context.Context, bookingID uuid.UUID) error
}

// Notifier delivers verification codes. Best-effort: callers log failures
// and never abort the booking flow on them.
type Notifier interface {
	SendCode(ctx context.Context, email, code string, meta CodeMeta) error
}

// CodeMeta gives the notification template its context.
type CodeMeta struct {
	BookingID uuid.UUID
	RoomName  string
	Date      string
	StartTime string
	EndTime   string
	ExpiresAt time.Time
}
