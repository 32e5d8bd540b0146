package queries

import (
	"time"

	"studio-booking/internal/domain/schedule"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ReservationView struct {
	ID          uuid.UUID  `json:"id"`
	RoomID      uuid.UUID  `json:"room_id"`
	RoomName    string     `json:"room_name"`
	ClientID    uuid.UUID  `json:"client_id"`
	ClientName  string     `json:"client_name"`
	Category    string     `json:"category"`
	Date        string     `json:"date"`
	DisplayDate string     `json:"display_date"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Status      string     `json:"status"`
	ChargeCents int64      `json:"charge_cents"`
	Note        *string    `json:"note,omitempty"`
	CheckInAt   *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt  *time.Time `json:"check_out_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ReservationSummary describes a slot's occupant in the day schedule.
// The time range is the occupying booking's own, not the slot's, so a
// booking spanning several slots reads the same on each of them.
type ReservationSummary struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"client_name"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Status      string    `json:"status"`
	ChargeCents int64     `json:"charge_cents"`
	Note        *string   `json:"note,omitempty"`
}

type SlotView struct {
	StartTime string              `json:"start_time"`
	EndTime   string              `json:"end_time"`
	Free      bool                `json:"free"`
	Occupant  *ReservationSummary `json:"occupant,omitempty"`
}

// FreeRangeView is a maximal run of contiguous free slots, the shape the
// public availability endpoint exposes.
type FreeRangeView struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type RoomView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	Capacity        int32     `json:"capacity"`
	Equipment       string    `json:"equipment"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AgendaRow is a raw read row keyed by nominal date; the query layer does
// the display-date arithmetic, so the store never needs to know about the
// late-night cutover.
type AgendaRow struct {
	ID          uuid.UUID
	RoomID      uuid.UUID
	RoomName    string
	ClientID    uuid.UUID
	ClientName  string
	Category    string
	Date        time.Time
	StartMin    int
	EndMin      int
	Status      string
	ChargeCents int64
	Note        *string
	CheckInAt   *time.Time
	CheckOutAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Interval rebuilds the schedule interval from the stored minute offsets.
func (r AgendaRow) Interval() (schedule.Interval, error) {
	start, err := schedule.NewTimeOfDay(r.StartMin/60, r.StartMin%60)
	if err != nil {
		return schedule.Interval{}, err
	}
	end, err := schedule.NewTimeOfDay(r.EndMin/60, r.EndMin%60)
	if err != nil {
		return schedule.Interval{}, err
	}
	return schedule.NewInterval(r.Date, start, end)
}
