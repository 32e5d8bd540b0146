//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"studio-booking/internal/domain/pricing"
	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/room"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/pkg/clock"
	"studio-booking/internal/usecase/commands"
	"studio-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commandsFixture struct {
	commands commands.ReservationCommands
	state    *fakeState
	holds    *fakeHoldStore
	clock    *clock.MockClock
}

func newCommandsFixture(t *testing.T) *commandsFixture {
	t.Helper()
	mockClock := clock.NewMockClock(time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC))
	state := newFakeState()
	holds := newFakeHoldStore(mockClock.Now)
	return &commandsFixture{
		commands: commands.NewReservationCommands(&fakeUoW{state: state}, holds, mockClock),
		state:    state,
		holds:    holds,
		clock:    mockClock,
	}
}

// seedRoom registers the builder's room with an hourly Standard rate of
// 8500 currency units.
func (f *commandsFixture) seedRoom(t *testing.T, b *builder.ReservationBuilder) {
	t.Helper()
	rm, err := room.NewRoom(b.RoomID, b.RoomName, pricing.NewMoneyFromUnits(8500), 6, "drums, 2x guitar amp")
	require.NoError(t, err)
	f.state.rooms[b.RoomID] = rm

	hourly := pricing.NewMoneyFromUnits(8500)
	rule, err := pricing.NewRateRule(uuid.New(), b.Category, 0, nil, nil, &hourly)
	require.NoError(t, err)
	f.state.rules[b.Category] = append(f.state.rules[b.Category], rule)
}

func (f *commandsFixture) seedReservation(t *testing.T, b *builder.ReservationBuilder) *reservation.Reservation {
	t.Helper()
	res, err := b.BuildDomain()
	require.NoError(t, err)
	f.state.reservations[res.ID()] = res
	return res
}

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)

		created, err := f.commands.Create(ctx, b.BuildCreateParams())
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusPending, created.Status())
		assert.Equal(t, int64(1_700_000), created.Charge().Cents())
		assert.Equal(t, b.ClientName, created.ClientName())
		assert.Equal(t, f.clock.Now(), created.CreatedAt())
		assert.Contains(t, f.state.reservations, created.ID())
		assert.Equal(t, []uuid.UUID{b.RoomID}, f.state.lockedRooms)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()

		_, err := f.commands.Create(ctx, b.BuildCreateParams())
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("overlapping reservation blocks", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		f.seedReservation(t, builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.RoomID = b.RoomID
			o.StartTime = "20:00"
			o.EndTime = "22:00"
		}))

		_, err := f.commands.Create(ctx, b.BuildCreateParams())
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("touching reservation does not block", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		f.seedReservation(t, builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.RoomID = b.RoomID
			o.StartTime = "21:00"
			o.EndTime = "23:00"
		}))

		_, err := f.commands.Create(ctx, b.BuildCreateParams())
		assert.NoError(t, err)
	})

	t.Run("no-show frees its slot", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		f.seedReservation(t, builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.RoomID = b.RoomID
			o.Status = reservation.StatusAbsent
		}))

		_, err := f.commands.Create(ctx, b.BuildCreateParams())
		assert.NoError(t, err)
	})

	t.Run("live hold blocks", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)

		hold, err := builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.RoomID = b.RoomID
		}).BuildHold()
		require.NoError(t, err)
		require.NoError(t, f.holds.Put(ctx, hold, 5*time.Minute))

		_, err = f.commands.Create(ctx, b.BuildCreateParams())
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("expired hold does not block", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)

		hold, err := builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.RoomID = b.RoomID
		}).BuildHold()
		require.NoError(t, err)
		require.NoError(t, f.holds.Put(ctx, hold, 5*time.Minute))
		f.clock.Add(6 * time.Minute)

		_, err = f.commands.Create(ctx, b.BuildCreateParams())
		assert.NoError(t, err)
	})

	t.Run("no rate rule covers the duration", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		f.state.rules[b.Category] = nil

		_, err := f.commands.Create(ctx, b.BuildCreateParams())
		assert.ErrorIs(t, err, pricing.ErrNoRateRule)
	})

	t.Run("malformed time", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		p := b.BuildCreateParams()
		p.StartTime = "quarter past seven"

		_, err := f.commands.Create(ctx, p)
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("inverted range", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		p := b.BuildCreateParams()
		p.StartTime, p.EndTime = p.EndTime, p.StartTime

		_, err := f.commands.Create(ctx, p)
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})
}

func TestEditReservation(t *testing.T) {
	ctx := context.Background()

	strPtr := func(s string) *string { return &s }

	t.Run("moving the slot recomputes the charge", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		res := f.seedReservation(t, b)

		edited, err := f.commands.Edit(ctx, res.ID(), commands.EditReservationParams{
			StartTime: strPtr("18:00"),
			EndTime:   strPtr("21:00"),
		})
		require.NoError(t, err)
		assert.Equal(t, "18:00", edited.Interval().Start().String())
		assert.Equal(t, int64(2_550_000), edited.Charge().Cents())
	})

	t.Run("own slot does not conflict with itself", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		res := f.seedReservation(t, b)

		// extend by one hour over its own original range
		_, err := f.commands.Edit(ctx, res.ID(), commands.EditReservationParams{
			EndTime: strPtr("22:00"),
		})
		assert.NoError(t, err)
	})

	t.Run("conflict with another reservation", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		res := f.seedReservation(t, b)
		f.seedReservation(t, builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.RoomID = b.RoomID
			o.StartTime = "21:00"
			o.EndTime = "23:00"
		}))

		_, err := f.commands.Edit(ctx, res.ID(), commands.EditReservationParams{
			EndTime: strPtr("22:00"),
		})
		assert.ErrorIs(t, err, commands.ErrSlotConflict)
	})

	t.Run("note-only edit keeps the charge", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		res := f.seedReservation(t, b)
		// no requote happens, so missing rules must not matter
		f.state.rules[b.Category] = nil

		edited, err := f.commands.Edit(ctx, res.ID(), commands.EditReservationParams{
			Note: strPtr("bring own cymbals"),
		})
		require.NoError(t, err)
		assert.Equal(t, b.ChargeCents, edited.Charge().Cents())
		assert.Equal(t, "bring own cymbals", edited.Note().String())
	})

	t.Run("finalized cannot be edited", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.Status = reservation.StatusFinalized
		})
		f.seedRoom(t, b)
		res := f.seedReservation(t, b)

		_, err := f.commands.Edit(ctx, res.ID(), commands.EditReservationParams{
			Note: strPtr("too late"),
		})
		assert.ErrorIs(t, err, reservation.ErrNotEditable)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newCommandsFixture(t)
		_, err := f.commands.Edit(ctx, uuid.New(), commands.EditReservationParams{})
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("moving to an unknown room", func(t *testing.T) {
		f := newCommandsFixture(t)
		b := builder.NewReservationBuilder()
		f.seedRoom(t, b)
		res := f.seedReservation(t, b)

		other := uuid.New()
		_, err := f.commands.Edit(ctx, res.ID(), commands.EditReservationParams{RoomID: &other})
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})
}

func TestDeleteReservation(t *testing.T) {
	ctx := context.Background()

	t.Run("pending is deletable", func(t *testing.T) {
		f := newCommandsFixture(t)
		res := f.seedReservation(t, builder.NewReservationBuilder())

		require.NoError(t, f.commands.Delete(ctx, res.ID()))
		assert.NotContains(t, f.state.reservations, res.ID())
	})

	t.Run("finalized is not deletable", func(t *testing.T) {
		f := newCommandsFixture(t)
		res := f.seedReservation(t, builder.NewReservationBuilder().With(func(o *builder.ReservationBuilder) {
			o.Status = reservation.StatusFinalized
		}))

		assert.ErrorIs(t, f.commands.Delete(ctx, res.ID()), reservation.ErrNotDeletable)
		assert.Contains(t, f.state.reservations, res.ID())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newCommandsFixture(t)
		assert.ErrorIs(t, f.commands.Delete(ctx, uuid.New()), commands.ErrReservationNotFound)
	})
}

func TestLifecycleCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("check-in then check-out", func(t *testing.T) {
		f := newCommandsFixture(t)
		res := f.seedReservation(t, builder.NewReservationBuilder())

		present, err := f.commands.CheckIn(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusPresent, present.Status())
		require.NotNil(t, present.CheckInAt())
		assert.Equal(t, f.clock.Now(), *present.CheckInAt())

		f.clock.Add(2 * time.Hour)
		finalized, err := f.commands.CheckOut(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusFinalized, finalized.Status())
		require.NotNil(t, finalized.CheckOutAt())
		assert.Equal(t, f.clock.Now(), *finalized.CheckOutAt())
	})

	t.Run("no-show", func(t *testing.T) {
		f := newCommandsFixture(t)
		res := f.seedReservation(t, builder.NewReservationBuilder())

		absent, err := f.commands.MarkNoShow(ctx, res.ID())
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusAbsent, absent.Status())
	})

	t.Run("check-out without check-in", func(t *testing.T) {
		f := newCommandsFixture(t)
		res := f.seedReservation(t, builder.NewReservationBuilder())

		_, err := f.commands.CheckOut(ctx, res.ID())
		assert.ErrorIs(t, err, reservation.ErrInvalidTransition)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		f := newCommandsFixture(t)
		_, err := f.commands.CheckIn(ctx, uuid.New())
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})
}
