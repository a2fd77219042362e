package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

func weekdayOnlyProfile(start, end string) domain.WorkingHoursProfile {
	entry := domain.WorkingHoursEntry{Enabled: true, Start: start, End: end}
	return domain.WorkingHoursProfile{
		"monday":    entry,
		"tuesday":   entry,
		"wednesday": entry,
		"thursday":  entry,
		"friday":    entry,
		"saturday":  {Enabled: false},
		"sunday":    {Enabled: false},
	}
}

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func TestSegmentSplitsAcrossDays(t *testing.T) {
	profile := weekdayOnlyProfile("08:00", "16:00") // 480 minutes per day

	sched := Segment(monday, 500, profile, Options{})

	require.Len(t, sched.Segments, 2)
	assert.Equal(t, 2, sched.TotalDays)
	assert.True(t, sched.IsMultiDay())
	assert.False(t, sched.Truncated)

	first := sched.Segments[0]
	assert.Equal(t, 1, first.DayNumber)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, "08:00", first.StartTime)
	assert.Equal(t, "16:00", first.EndTime)
	assert.Equal(t, 480, first.DurationMinutes)
	assert.False(t, first.IsComplete)

	second := sched.Segments[1]
	assert.Equal(t, 2, second.DayNumber)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), second.Date)
	assert.Equal(t, "08:00", second.StartTime)
	assert.Equal(t, "08:20", second.EndTime)
	assert.Equal(t, 20, second.DurationMinutes)
	assert.True(t, second.IsComplete)
}

func TestSegmentDurationsSumToTotal(t *testing.T) {
	profile := weekdayOnlyProfile("07:00", "15:30")

	for _, total := range []int{1, 59, 510, 1275, 4000} {
		sched := Segment(monday, total, profile, Options{})
		require.False(t, sched.Truncated)

		sum := 0
		for _, seg := range sched.Segments {
			sum += seg.DurationMinutes
		}
		assert.Equal(t, total, sum, "total %d", total)
	}
}

func TestSegmentSkipsDisabledDays(t *testing.T) {
	profile := weekdayOnlyProfile("08:00", "16:00")

	// Friday start with two days of work must skip the weekend.
	friday := time.Date(2026, 3, 6, 8, 0, 0, 0, time.UTC)
	sched := Segment(friday, 960, profile, Options{})

	require.Len(t, sched.Segments, 2)
	assert.Equal(t, time.Friday, sched.Segments[0].Date.Weekday())
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), sched.Segments[1].Date)
	// day numbers stay contiguous across the skipped weekend
	assert.Equal(t, 1, sched.Segments[0].DayNumber)
	assert.Equal(t, 2, sched.Segments[1].DayNumber)
}

func TestSegmentStartOnDisabledDayMovesForward(t *testing.T) {
	profile := weekdayOnlyProfile("08:00", "16:00")

	saturday := time.Date(2026, 3, 7, 8, 0, 0, 0, time.UTC)
	sched := Segment(saturday, 120, profile, Options{})

	require.Len(t, sched.Segments, 1)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), sched.Segments[0].Date)
	assert.False(t, sched.IsMultiDay())
}

func TestSegmentClampsZeroDuration(t *testing.T) {
	sched := Segment(monday, 0, weekdayOnlyProfile("08:00", "16:00"), Options{})

	require.Len(t, sched.Segments, 1)
	assert.Equal(t, 1, sched.Segments[0].DurationMinutes)
	assert.True(t, sched.Segments[0].IsComplete)
}

func TestSegmentTruncatesAtWorkingDayCap(t *testing.T) {
	profile := weekdayOnlyProfile("08:00", "16:00")

	sched := Segment(monday, 3*480, profile, Options{MaxWorkingDays: 2})

	require.Len(t, sched.Segments, 2)
	assert.True(t, sched.Truncated)
	assert.False(t, sched.Segments[1].IsComplete)
}

func TestSegmentTruncatesWhenNoDayIsWorked(t *testing.T) {
	profile := domain.WorkingHoursProfile{}
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		profile[day] = domain.WorkingHoursEntry{Enabled: false}
	}

	sched := Segment(monday, 60, profile, Options{})

	assert.Empty(t, sched.Segments)
	assert.True(t, sched.Truncated)
}

func TestSegmentDefaultsForMissingWeekdays(t *testing.T) {
	// empty profile: every day is a default 480-minute day starting at 08:00
	sched := Segment(monday, 600, domain.WorkingHoursProfile{}, Options{})

	require.Len(t, sched.Segments, 2)
	assert.Equal(t, "08:00", sched.Segments[0].StartTime)
	assert.Equal(t, 480, sched.Segments[0].DurationMinutes)
	assert.Equal(t, 120, sched.Segments[1].DurationMinutes)
}

func TestSegmentFallsBackOnUnusableBounds(t *testing.T) {
	profile := domain.WorkingHoursProfile{
		"monday": {Enabled: true, Start: "bogus", End: "16:00"},
	}

	sched := Segment(monday, 60, profile, Options{})

	require.Len(t, sched.Segments, 1)
	assert.Equal(t, "08:00", sched.Segments[0].StartTime)
	assert.Equal(t, "09:00", sched.Segments[0].EndTime)
}
