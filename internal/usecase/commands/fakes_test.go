//go:build unit

package commands_test

import (
	"context"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/room"
	"studio-booking/internal/domain/verification"
	"studio-booking/internal/infra"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory doubles for the command ports. They reproduce only the
// behavior the command handlers depend on: not-found signalling, nominal
// date window filtering, and the code store's claim semantics.

type fakeState struct {
	rooms        map[uuid.UUID]*room.Room
	rules        map[pricing.Category][]pricing.RateRule
	reservations map[uuid.UUID]*reservation.Reservation

	lockedRooms []uuid.UUID
	readsErr    error
	createErr   error
	updateErr   error
}

func newFakeState() *fakeState {
	return &fakeState{
		rooms:        make(map[uuid.UUID]*room.Room),
		rules:        make(map[pricing.Category][]pricing.RateRule),
		reservations: make(map[uuid.UUID]*reservation.Reservation),
	}
}

type fakeUoW struct {
	state *fakeState
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{state: u.state})
}

func (u *fakeUoW) Reads() shared.CommandReads {
	return &fakeReads{state: u.state}
}

type fakeTx struct {
	state *fakeState
}

func (t *fakeTx) Reservations() shared.ReservationRepository {
	return &fakeReservationRepo{state: t.state}
}

func (t *fakeTx) Reads() shared.CommandReads {
	return &fakeReads{state: t.state}
}

func (t *fakeTx) LockRoomAgenda(_ context.Context, roomID uuid.UUID) error {
	t.state.lockedRooms = append(t.state.lockedRooms, roomID)
	return nil
}

type fakeReads struct {
	state *fakeState
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	if r.state.readsErr != nil {
		return nil, r.state.readsErr
	}
	rm, ok := r.state.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "room not found", nil)
	}
	return rm, nil
}

func (r *fakeReads) ActiveRateRules(_ context.Context, category pricing.Category) ([]pricing.RateRule, error) {
	if r.state.readsErr != nil {
		return nil, r.state.readsErr
	}
	return r.state.rules[category], nil
}

func (r *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	if r.state.readsErr != nil {
		return nil, r.state.readsErr
	}
	res, ok := r.state.reservations[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	return res, nil
}

func (r *fakeReads) ReservationsBetween(_ context.Context, roomID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	if r.state.readsErr != nil {
		return nil, r.state.readsErr
	}
	var out []*reservation.Reservation
	for _, res := range r.state.reservations {
		if res.RoomID() != roomID {
			continue
		}
		d := res.Interval().Date()
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

type fakeReservationRepo struct {
	state *fakeState
}

func (r *fakeReservationRepo) Create(_ context.Context, res *reservation.Reservation) error {
	if r.state.createErr != nil {
		return r.state.createErr
	}
	if _, exists := r.state.reservations[res.ID()]; exists {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "duplicate reservation", nil)
	}
	r.state.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *reservation.Reservation) error {
	if r.state.updateErr != nil {
		return r.state.updateErr
	}
	if _, exists := r.state.reservations[res.ID()]; !exists {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	r.state.reservations[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, exists := r.state.reservations[id]; !exists {
		return infra.WrapRepoErr(infra.KindNotFound, "reservation not found", nil)
	}
	delete(r.state.reservations, id)
	return nil
}

type heldEntry struct {
	hold      shared.Hold
	expiresAt time.Time
}

type fakeHoldStore struct {
	holds  map[uuid.UUID]heldEntry
	now    func() time.Time
	putErr error
}

func newFakeHoldStore(now func() time.Time) *fakeHoldStore {
	return &fakeHoldStore{holds: make(map[uuid.UUID]heldEntry), now: now}
}

func (s *fakeHoldStore) Put(_ context.Context, hold shared.Hold, ttl time.Duration) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.holds[hold.BookingID] = heldEntry{hold: hold, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *fakeHoldStore) Get(_ context.Context, bookingID uuid.UUID) (*shared.Hold, error) {
	e, ok := s.holds[bookingID]
	if !ok || s.now().After(e.expiresAt) {
		return nil, nil
	}
	h := e.hold
	return &h, nil
}

func (s *fakeHoldStore) ActiveForRoom(_ context.Context, roomID uuid.UUID, from, to time.Time) ([]shared.Hold, error) {
	var out []shared.Hold
	for _, e := range s.holds {
		if s.now().After(e.expiresAt) || e.hold.RoomID != roomID {
			continue
		}
		d := e.hold.Interval.Date()
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, e.hold)
	}
	return out, nil
}

func (s *fakeHoldStore) Release(_ context.Context, bookingID uuid.UUID) error {
	delete(s.holds, bookingID)
	return nil
}

type fakeCodeStore struct {
	codes map[uuid.UUID]*verification.Code
	now   func() time.Time
}

func newFakeCodeStore(now func() time.Time) *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[uuid.UUID]*verification.Code), now: now}
}

func (s *fakeCodeStore) Save(_ context.Context, code *verification.Code, _ time.Duration) error {
	s.codes[code.BookingID()] = code
	return nil
}

func (s *fakeCodeStore) Claim(_ context.Context, bookingID uuid.UUID) (*verification.Code, error) {
	stored, ok := s.codes[bookingID]
	if !ok || s.now().After(stored.ExpiresAt()) {
		return nil, verification.ErrCodeExpired
	}
	// return the pre-claim snapshot, then burn one attempt in the store
	snapshot := verification.Reconstruct(
		stored.BookingID(), stored.Email(), stored.Hash(),
		stored.ExpiresAt(), stored.Attempts(), stored.IsVerified(),
	)
	if stored.Attempts() > 0 {
		s.codes[bookingID] = verification.Reconstruct(
			stored.BookingID(), stored.Email(), stored.Hash(),
			stored.ExpiresAt(), stored.Attempts()-1, stored.IsVerified(),
		)
	}
	return snapshot, nil
}

func (s *fakeCodeStore) Consume(_ context.Context, bookingID uuid.UUID) error {
	delete(s.codes, bookingID)
	return nil
}

type sentCode struct {
	email string
	code  string
	meta  shared.CodeMeta
}

type fakeNotifier struct {
	sent []sentCode
	err  error
}

func (n *fakeNotifier) SendCode(_ context.Context, email, code string, meta shared.CodeMeta) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentCode{email: email, code: code, meta: meta})
	return nil
}
