package reservation

import (
	"errors"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

var (
	ErrInvalidTransition = errors.New("invalid reservation status transition")
	ErrNotEditable       = errors.New("finalized reservation cannot be edited")
	ErrNotDeletable      = errors.New("finalized reservation cannot be deleted")
)

// Reservation is a booked session in one room. It is owned exclusively by
// the booking subsystem; sales and reporting read it but never mutate it.
type Reservation struct {
	id         uuid.UUID
	roomID     uuid.UUID
	clientID   uuid.UUID
	clientName string
	category   pricing.Category
	interval   schedule.Interval
	status     Status
	charge     pricing.Money
	note       Note
	checkInAt  *time.Time
	checkOutAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

// NewReservation creates a pending reservation. Availability and pricing
// are the caller's concern; the entity only guards its own invariants.
func NewReservation(
	roomID, clientID uuid.UUID,
	clientName string,
	category pricing.Category,
	interval schedule.Interval,
	charge pricing.Money,
	note Note,
	now time.Time,
) *Reservation {
	return &Reservation{
		id:         uuid.New(),
		roomID:     roomID,
		clientID:   clientID,
		clientName: clientName,
		category:   category,
		interval:   interval,
		status:     StatusPending,
		charge:     charge,
		note:       note,
		createdAt:  now,
		updatedAt:  now,
	}
}

func ReconstructReservation(
	id, roomID, clientID uuid.UUID,
	clientName string,
	category pricing.Category,
	interval schedule.Interval,
	status Status,
	charge pricing.Money,
	note Note,
	checkInAt, checkOutAt *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		roomID:     roomID,
		clientID:   clientID,
		clientName: clientName,
		category:   category,
		interval:   interval,
		status:     status,
		charge:     charge,
		note:       note,
		checkInAt:  checkInAt,
		checkOutAt: checkOutAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// CheckIn marks the client as arrived. Legal only from pending.
func (r *Reservation) CheckIn(now time.Time) error {
	if r.status != StatusPending {
		return ErrInvalidTransition
	}
	r.status = StatusPresent
	r.checkInAt = &now
	r.updatedAt = now
	return nil
}

// CheckOut closes the session. Legal only from present; the reservation
// becomes immutable afterwards.
func (r *Reservation) CheckOut(now time.Time) error {
	if r.status != StatusPresent {
		return ErrInvalidTransition
	}
	r.status = StatusFinalized
	r.checkOutAt = &now
	r.updatedAt = now
	return nil
}

// MarkAbsent records a no-show. Legal only from pending; absent is
// terminal.
func (r *Reservation) MarkAbsent(now time.Time) error {
	if r.status != StatusPending {
		return ErrInvalidTransition
	}
	r.status = StatusAbsent
	r.updatedAt = now
	return nil
}

func (r *Reservation) CanEdit() bool {
	return r.status != StatusFinalized
}

func (r *Reservation) CanDelete() bool {
	return r.status != StatusFinalized
}

// ApplyEdit moves the reservation to a new interval/category with its
// recomputed charge. The caller must have re-checked availability
// excluding this reservation's own id.
func (r *Reservation) ApplyEdit(
	roomID uuid.UUID,
	category pricing.Category,
	interval schedule.Interval,
	charge pricing.Money,
	note Note,
	now time.Time,
) error {
	if !r.CanEdit() {
		return ErrNotEditable
	}
	r.roomID = roomID
	r.category = category
	r.interval = interval
	r.charge = charge
	r.note = note
	r.updatedAt = now
	return nil
}

func (r *Reservation) ID() uuid.UUID               { return r.id }
func (r *Reservation) RoomID() uuid.UUID           { return r.roomID }
func (r *Reservation) ClientID() uuid.UUID         { return r.clientID }
func (r *Reservation) ClientName() string          { return r.clientName }
func (r *Reservation) Category() pricing.Category  { return r.category }
func (r *Reservation) Interval() schedule.Interval { return r.interval }
func (r *Reservation) Status() Status              { return r.status }
func (r *Reservation) Charge() pricing.Money       { return r.charge }
func (r *Reservation) Note() Note                  { return r.note }
func (r *Reservation) CheckInAt() *time.Time       { return r.checkInAt }
func (r *Reservation) CheckOutAt() *time.Time      { return r.checkOutAt }
func (r *Reservation) CreatedAt() time.Time        { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time        { return r.updatedAt }

// Booked projects the reservation into the availability engine's view.
func (r *Reservation) Booked() schedule.Booked {
	return schedule.Booked{ID: r.id, Interval: r.interval}
}
