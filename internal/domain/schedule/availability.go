package schedule

import (
	"iter"
	"time"

	"github.com/google/uuid"
)

// Booked is the minimal view of an existing booking the availability
// engine needs: an identity to exclude during edits and the occupied
// interval. Sources are committed reservations and live soft holds.
type Booked struct {
	ID       uuid.UUID
	Interval Interval
}

// Slot is a discrete bookable unit within a room's operating hours. A
// zero BookedBy means the slot is free.
type Slot struct {
	Start    TimeOfDay
	End      TimeOfDay
	BookedBy uuid.UUID
}

func (s Slot) IsFree() bool {
	return s.BookedBy == uuid.Nil
}

// IsFree reports whether the proposed interval collides with no booking
// that shares its display date. Pass exclude to ignore one booking id,
// used when re-checking during an edit.
func IsFree(proposed Interval, booked []Booked, exclude uuid.UUID) bool {
	display := proposed.DisplayDate()
	for _, b := range booked {
		if exclude != uuid.Nil && b.ID == exclude {
			continue
		}
		if !b.Interval.DisplayDate().Equal(display) {
			continue
		}
		if proposed.Overlaps(b.Interval) {
			return false
		}
	}
	return true
}

// DaySlots yields the slot grid for one date between openHour and
// closeHour. The sequence is finite and restartable; each slot carries
// the id of the booking occupying it, if any. Bookings that straddle
// several slots mark every slot they touch.
func DaySlots(date time.Time, booked []Booked, openHour, closeHour, slotMinutes int) iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		start := TimeOfDay{minutes: openHour * 60}
		closing := TimeOfDay{minutes: closeHour * 60}
		for start.Before(closing) {
			end := start.AddMinutes(slotMinutes)
			if end.MinuteOfDay() > closing.MinuteOfDay() {
				return
			}
			slot := Slot{Start: start, End: end}
			if iv, err := NewInterval(date, start, end); err == nil {
				for _, b := range booked {
					if iv.Overlaps(b.Interval) {
						slot.BookedBy = b.ID
						break
					}
				}
			}
			if !yield(slot) {
				return
			}
			start = end
		}
	}
}

// FilterByDisplayRange keeps the bookings whose display date falls in
// [from, to] inclusive. Callers must fetch with a window extended one day
// past `to` so late-night sessions stored under the next nominal date are
// not lost before this precise filter runs.
func FilterByDisplayRange(booked []Booked, from, to time.Time) []Booked {
	out := make([]Booked, 0, len(booked))
	for _, b := range booked {
		if b.Interval.WithinDisplayRange(from, to) {
			out = append(out, b)
		}
	}
	return out
}
