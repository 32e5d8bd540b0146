package queries

import (
	"context"
	"sort"
	"time"

	"studio-booking/internal/domain/reservation"
	"studio-booking/internal/domain/schedule"
	"studio-booking/internal/pkg/config"
	"studio-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AgendaQueries interface {
	// DaySchedule renders one room's slot grid for a display date,
	// occupant summaries included.
	DaySchedule(ctx context.Context, roomID uuid.UUID, date time.Time) ([]SlotView, error)
	// ReservationsInRange lists reservations whose display date lies in
	// [from, to] inclusive, newest first. A nil roomID means all rooms.
	ReservationsInRange(ctx context.Context, roomID *uuid.UUID, from, to time.Time) ([]ReservationView, error)
	// PublicAvailability exposes the free ranges of a room's display
	// date, soft holds counted as occupied.
	PublicAvailability(ctx context.Context, roomID uuid.UUID, date time.Time) ([]FreeRangeView, error)
}

type AgendaViewRepo interface {
	// FindBetween returns rows whose nominal date lies in [from, to]
	// inclusive. A nil roomID means all rooms.
	FindBetween(ctx context.Context, roomID *uuid.UUID, from, to time.Time) ([]AgendaRow, error)
}

type agendaQueriesImpl struct {
	repo  AgendaViewRepo
	holds shared.HoldStore
	cfg   config.BookingConfig
}

func NewAgendaQueries(repo AgendaViewRepo, holds shared.HoldStore, cfg config.BookingConfig) AgendaQueries {
	return &agendaQueriesImpl{repo: repo, holds: holds, cfg: cfg}
}

func (q *agendaQueriesImpl) DaySchedule(ctx context.Context, roomID uuid.UUID, date time.Time) ([]SlotView, error) {
	booked, summaries, err := q.occupancy(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	out := make([]SlotView, 0, q.cfg.CloseHour-q.cfg.OpenHour)
	for slot := range schedule.DaySlots(date, booked, q.cfg.OpenHour, q.cfg.CloseHour, q.cfg.SlotMinutes) {
		view := SlotView{
			StartTime: slot.Start.String(),
			EndTime:   slot.End.String(),
			Free:      slot.IsFree(),
		}
		if !slot.IsFree() {
			if s, ok := summaries[slot.BookedBy]; ok {
				view.Occupant = &s
			}
		}
		out = append(out, view)
	}
	return out, nil
}

func (q *agendaQueriesImpl) ReservationsInRange(ctx context.Context, roomID *uuid.UUID, from, to time.Time) ([]ReservationView, error) {
	// Extend the nominal window one day so late-night sessions stored
	// under the next nominal date survive the display filter.
	rows, err := q.repo.FindBetween(ctx, roomID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	rowByID := make(map[uuid.UUID]AgendaRow, len(rows))
	booked := make([]schedule.Booked, 0, len(rows))
	for _, row := range rows {
		iv, err := row.Interval()
		if err != nil {
			continue
		}
		rowByID[row.ID] = row
		booked = append(booked, schedule.Booked{ID: row.ID, Interval: iv})
	}

	out := make([]ReservationView, 0, len(booked))
	for _, b := range schedule.FilterByDisplayRange(booked, from, to) {
		out = append(out, toReservationView(rowByID[b.ID], b.Interval))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out, nil
}

func (q *agendaQueriesImpl) PublicAvailability(ctx context.Context, roomID uuid.UUID, date time.Time) ([]FreeRangeView, error) {
	booked, _, err := q.occupancy(ctx, roomID, date)
	if err != nil {
		return nil, err
	}

	var out []FreeRangeView
	for slot := range schedule.DaySlots(date, booked, q.cfg.OpenHour, q.cfg.CloseHour, q.cfg.SlotMinutes) {
		if !slot.IsFree() {
			continue
		}
		start, end := slot.Start.String(), slot.End.String()
		if n := len(out); n > 0 && out[n-1].EndTime == start {
			out[n-1].EndTime = end
			continue
		}
		out = append(out, FreeRangeView{StartTime: start, EndTime: end})
	}
	return out, nil
}

// occupancy collects everything occupying the room on a display date:
// committed reservations still holding their slot and live soft holds.
// No-shows release their slot and are excluded.
func (q *agendaQueriesImpl) occupancy(ctx context.Context, roomID uuid.UUID, date time.Time) ([]schedule.Booked, map[uuid.UUID]ReservationSummary, error) {
	rows, err := q.repo.FindBetween(ctx, &roomID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, nil, err
	}

	booked := make([]schedule.Booked, 0, len(rows))
	summaries := make(map[uuid.UUID]ReservationSummary, len(rows))
	for _, row := range rows {
		if row.Status == reservation.StatusAbsent.String() {
			continue
		}
		iv, err := row.Interval()
		if err != nil {
			continue
		}
		if !iv.DisplayDate().Equal(truncate(date)) {
			continue
		}
		booked = append(booked, schedule.Booked{ID: row.ID, Interval: iv})
		summaries[row.ID] = ReservationSummary{
			ID:          row.ID,
			ClientName:  row.ClientName,
			StartTime:   iv.Start().String(),
			EndTime:     iv.End().String(),
			Status:      row.Status,
			ChargeCents: row.ChargeCents,
			Note:        row.Note,
		}
	}

	holds, err := q.holds.ActiveForRoom(ctx, roomID, date, date.AddDate(0, 0, 1))
	if err != nil {
		return nil, nil, err
	}
	for _, h := range holds {
		if !h.Interval.DisplayDate().Equal(truncate(date)) {
			continue
		}
		booked = append(booked, h.Booked())
		var note *string
		if h.Note != "" {
			note = &h.Note
		}
		summaries[h.BookingID] = ReservationSummary{
			ID:          h.BookingID,
			ClientName:  h.ClientName,
			StartTime:   h.Interval.Start().String(),
			EndTime:     h.Interval.End().String(),
			Status:      "held",
			ChargeCents: h.ChargeCents,
			Note:        note,
		}
	}
	return booked, summaries, nil
}

func toReservationView(row AgendaRow, iv schedule.Interval) ReservationView {
	return ReservationView{
		ID:          row.ID,
		RoomID:      row.RoomID,
		RoomName:    row.RoomName,
		ClientID:    row.ClientID,
		ClientName:  row.ClientName,
		Category:    row.Category,
		Date:        row.Date.Format(time.DateOnly),
		DisplayDate: iv.DisplayDate().Format(time.DateOnly),
		StartTime:   iv.Start().String(),
		EndTime:     iv.End().String(),
		Status:      row.Status,
		ChargeCents: row.ChargeCents,
		Note:        row.Note,
		CheckInAt:   row.CheckInAt,
		CheckOutAt:  row.CheckOutAt,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
