package schedule

import (
	"errors"
	"time"
)

var ErrInvalidInterval = errors.New("invalid interval")

// Late-night sessions are grouped with the evening that spawned them:
// anything starting before this hour is displayed under the previous day.
const displayCutoverHour = 6

// Interval is a half-open time range [start, end) on a nominal calendar
// date. Sessions that cross midnight are modeled as two intervals with
// distinct nominal dates, never inferred from the time order.
type Interval struct {
	date  time.Time
	start TimeOfDay
	end   TimeOfDay
}

// NewInterval builds an interval on the given nominal date. The date's
// time-of-day portion is discarded. Zero-length and inverted ranges are
// rejected with ErrInvalidInterval.
func NewInterval(date time.Time, start, end TimeOfDay) (Interval, error) {
	if end.MinuteOfDay() <= start.MinuteOfDay() {
		return Interval{}, ErrInvalidInterval
	}
	return Interval{date: truncateToDay(date), start: start, end: end}, nil
}

func (iv Interval) Date() time.Time {
	return iv.date
}

func (iv Interval) Start() TimeOfDay {
	return iv.start
}

func (iv Interval) End() TimeOfDay {
	return iv.end
}

// DisplayDate is the calendar date the interval is shown and filtered
// under. Starts in [00:00, 06:00) belong to the previous day's agenda.
func (iv Interval) DisplayDate() time.Time {
	if iv.start.Hour() < displayCutoverHour {
		return iv.date.AddDate(0, 0, -1)
	}
	return iv.date
}

// StartAt anchors the interval start to an absolute instant in loc.
func (iv Interval) StartAt(loc *time.Location) time.Time {
	return time.Date(iv.date.Year(), iv.date.Month(), iv.date.Day(),
		iv.start.Hour(), iv.start.Minute(), 0, 0, loc)
}

// EndAt anchors the interval end to an absolute instant in loc.
func (iv Interval) EndAt(loc *time.Location) time.Time {
	return time.Date(iv.date.Year(), iv.date.Month(), iv.date.Day(),
		iv.end.Hour(), iv.end.Minute(), 0, 0, loc)
}

func (iv Interval) DurationMinutes() int {
	return iv.end.MinuteOfDay() - iv.start.MinuteOfDay()
}

// Overlaps reports whether two intervals share any instant. The predicate
// is strict half-open: touching intervals do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	a0, a1 := iv.absRange()
	b0, b1 := other.absRange()
	return a0 < b1 && b0 < a1
}

// absRange flattens the interval to minutes on an absolute day axis so
// intervals on different nominal dates compare correctly.
func (iv Interval) absRange() (int64, int64) {
	day := iv.date.Unix() / 60
	return day + int64(iv.start.MinuteOfDay()), day + int64(iv.end.MinuteOfDay())
}

// WithinDisplayRange reports whether the interval's display date falls in
// [from, to], both inclusive.
func (iv Interval) WithinDisplayRange(from, to time.Time) bool {
	d := iv.DisplayDate()
	return !d.Before(truncateToDay(from)) && !d.After(truncateToDay(to))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
