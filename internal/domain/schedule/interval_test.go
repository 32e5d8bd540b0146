//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"studio-booking/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) schedule.TimeOfDay {
	t.Helper()
	td, err := schedule.ParseTimeOfDay(s)
	require.NoError(t, err)
	return td
}

func mustInterval(t *testing.T, date time.Time, start, end string) schedule.Interval {
	t.Helper()
	iv, err := schedule.NewInterval(date, mustTime(t, start), mustTime(t, end))
	require.NoError(t, err)
	return iv
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		wantErr bool
		hour    int
		minute  int
	}{
		{name: "midnight", input: "00:00", hour: 0, minute: 0},
		{name: "last minute of day", input: "23:59", hour: 23, minute: 59},
		{name: "evening", input: "19:30", hour: 19, minute: 30},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "12:60", wantErr: true},
		{name: "missing separator", input: "1930", wantErr: true},
		{name: "trailing non-digit", input: "12:3a", wantErr: true},
		{name: "non-digit hour", input: "1a:30", wantErr: true},
		{name: "garbage", input: "later", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			td, err := schedule.ParseTimeOfDay(tc.input)
			if tc.wantErr {
				assert.ErrorIs(t, err, schedule.ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.hour, td.Hour())
			assert.Equal(t, tc.minute, td.Minute())
		})
	}
}

func TestNewInterval(t *testing.T) {
	d := date(2025, 8, 22)

	t.Run("valid range", func(t *testing.T) {
		iv, err := schedule.NewInterval(d, mustTime(t, "19:00"), mustTime(t, "21:00"))
		require.NoError(t, err)
		assert.Equal(t, 120, iv.DurationMinutes())
		assert.Equal(t, d, iv.Date())
	})

	t.Run("zero length rejected", func(t *testing.T) {
		_, err := schedule.NewInterval(d, mustTime(t, "19:00"), mustTime(t, "19:00"))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		_, err := schedule.NewInterval(d, mustTime(t, "21:00"), mustTime(t, "19:00"))
		assert.ErrorIs(t, err, schedule.ErrInvalidInterval)
	})

	t.Run("time portion of date is discarded", func(t *testing.T) {
		noisy := time.Date(2025, 8, 22, 15, 42, 7, 0, time.UTC)
		iv, err := schedule.NewInterval(noisy, mustTime(t, "10:00"), mustTime(t, "11:00"))
		require.NoError(t, err)
		assert.Equal(t, d, iv.Date())
	})
}

func TestDisplayDate(t *testing.T) {
	testCases := []struct {
		name  string
		start string
		end   string
		want  time.Time
	}{
		{name: "evening session keeps its date", start: "19:00", end: "21:00", want: date(2025, 8, 22)},
		{name: "late night belongs to previous day", start: "00:30", end: "02:30", want: date(2025, 8, 21)},
		{name: "just before cutover", start: "05:59", end: "07:00", want: date(2025, 8, 21)},
		{name: "exactly at cutover", start: "06:00", end: "08:00", want: date(2025, 8, 22)},
		{name: "midnight start", start: "00:00", end: "01:00", want: date(2025, 8, 21)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			iv := mustInterval(t, date(2025, 8, 22), tc.start, tc.end)
			assert.Equal(t, tc.want, iv.DisplayDate())
		})
	}
}

func TestOverlaps(t *testing.T) {
	d := date(2025, 8, 22)

	testCases := []struct {
		name string
		a    schedule.Interval
		b    schedule.Interval
		want bool
	}{
		{
			name: "identical",
			a:    mustInterval(t, d, "19:00", "21:00"),
			b:    mustInterval(t, d, "19:00", "21:00"),
			want: true,
		},
		{
			name: "partial overlap",
			a:    mustInterval(t, d, "19:00", "21:00"),
			b:    mustInterval(t, d, "20:00", "22:00"),
			want: true,
		},
		{
			name: "containment",
			a:    mustInterval(t, d, "18:00", "22:00"),
			b:    mustInterval(t, d, "19:00", "20:00"),
			want: true,
		},
		{
			name: "touching ends do not overlap",
			a:    mustInterval(t, d, "19:00", "21:00"),
			b:    mustInterval(t, d, "21:00", "23:00"),
			want: false,
		},
		{
			name: "disjoint",
			a:    mustInterval(t, d, "10:00", "11:00"),
			b:    mustInterval(t, d, "19:00", "21:00"),
			want: false,
		},
		{
			name: "same clock times on different dates",
			a:    mustInterval(t, d, "19:00", "21:00"),
			b:    mustInterval(t, date(2025, 8, 23), "19:00", "21:00"),
			want: false,
		},
		{
			name: "late night on next nominal date shares display date but not instants",
			a:    mustInterval(t, d, "22:00", "23:59"),
			b:    mustInterval(t, date(2025, 8, 23), "00:30", "02:00"),
			want: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			// the predicate is symmetric
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a))
		})
	}
}

func TestWithinDisplayRange(t *testing.T) {
	t.Run("inclusive on both ends", func(t *testing.T) {
		iv := mustInterval(t, date(2025, 8, 22), "19:00", "21:00")
		assert.True(t, iv.WithinDisplayRange(date(2025, 8, 22), date(2025, 8, 22)))
		assert.True(t, iv.WithinDisplayRange(date(2025, 8, 20), date(2025, 8, 22)))
		assert.False(t, iv.WithinDisplayRange(date(2025, 8, 23), date(2025, 8, 25)))
	})

	t.Run("late night session filters under its display date", func(t *testing.T) {
		iv := mustInterval(t, date(2025, 8, 23), "00:30", "02:30")
		assert.True(t, iv.WithinDisplayRange(date(2025, 8, 22), date(2025, 8, 22)))
		assert.False(t, iv.WithinDisplayRange(date(2025, 8, 23), date(2025, 8, 23)))
	})
}

func TestStartAtEndAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	iv := mustInterval(t, date(2025, 8, 22), "19:00", "21:00")
	assert.Equal(t, time.Date(2025, 8, 22, 19, 0, 0, 0, loc), iv.StartAt(loc))
	assert.Equal(t, time.Date(2025, 8, 22, 21, 0, 0, 0, loc), iv.EndAt(loc))
}
