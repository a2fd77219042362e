package schedule

import (
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/utils"
)

// Options tune the segmenter. Zero values fall back to the product defaults.
type Options struct {
	DefaultDayMinutes int // minutes assumed for a weekday with no profile entry
	MaxWorkingDays    int // safety cap on the number of produced segments
}

const (
	defaultDayMinutes = 480
	defaultMaxDays    = 30

	// A profile can explicitly disable every weekday, in which case the
	// working-day cap never advances. This caps the calendar scan itself.
	maxCalendarDays = 366

	defaultWindowStart = 8 * 60  // 08:00
	defaultWindowEnd   = 17 * 60 // 17:00
)

// Segment breaks a job's total duration into day-by-day work segments bounded
// by the technician's working-hours profile, starting at the given date.
// Disabled weekdays contribute no segment and do not advance the day counter.
// The returned segments sum exactly to the duration (clamped to a minimum of
// one minute) unless Truncated is set by the safety limit.
func Segment(start time.Time, totalMinutes int, profile domain.WorkingHoursProfile, opts Options) *domain.MultiDaySchedule {
	if opts.DefaultDayMinutes <= 0 {
		opts.DefaultDayMinutes = defaultDayMinutes
	}
	if opts.MaxWorkingDays <= 0 {
		opts.MaxWorkingDays = defaultMaxDays
	}

	remaining := totalMinutes
	if remaining < 1 {
		remaining = 1
	}

	sched := &domain.MultiDaySchedule{Segments: []domain.DaySegment{}}
	date := domain.DateOnly(start)
	dayNumber := 0

	for scanned := 0; remaining > 0; scanned++ {
		if scanned >= maxCalendarDays {
			sched.Truncated = true
			break
		}

		windowStart, available, works := dayWindow(profile, date.Weekday(), opts.DefaultDayMinutes)
		if !works {
			date = date.AddDate(0, 0, 1)
			continue
		}

		dayNumber++
		if dayNumber > opts.MaxWorkingDays {
			sched.Truncated = true
			break
		}

		alloc := remaining
		if alloc > available {
			alloc = available
		}

		sched.Segments = append(sched.Segments, domain.DaySegment{
			Date:            date,
			DayNumber:       dayNumber,
			StartTime:       utils.FormatClock(windowStart),
			EndTime:         utils.FormatClock(windowStart + alloc),
			DurationMinutes: alloc,
			IsComplete:      remaining <= available,
		})

		remaining -= alloc
		date = date.AddDate(0, 0, 1)
	}

	sched.TotalDays = len(sched.Segments)
	return sched
}

// dayWindow resolves the working window for a weekday: start minute, length in
// minutes, and whether the day is worked at all. A weekday missing from the
// profile counts as a default working day; an entry without usable bounds gets
// the 08:00-17:00 default window.
func dayWindow(profile domain.WorkingHoursProfile, weekday time.Weekday, fallbackMinutes int) (int, int, bool) {
	entry, ok := profile.Entry(weekday)
	if !ok {
		return defaultWindowStart, fallbackMinutes, true
	}
	if !entry.Enabled {
		return 0, 0, false
	}

	start, err1 := utils.ParseClock(entry.Start)
	end, err2 := utils.ParseClock(entry.End)
	if err1 != nil || err2 != nil || end <= start {
		return defaultWindowStart, defaultWindowEnd - defaultWindowStart, true
	}
	return start, end - start, true
}
