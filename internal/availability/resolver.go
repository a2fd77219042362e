package availability

import (
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/utils"
)

const (
	ReasonDayOff  = "day_off"
	ReasonTimeOff = "time_off"
)

// Window is a requested time window on a day. Nil bounds mean all day.
type Window struct {
	Start *string // "HH:MM"
	End   *string // "HH:MM"
}

// Verdict is the availability decision for one member on one calendar day.
// OverlappingBlocks are soft warnings that did not block the day;
// OverlappingJobs are capacity concerns, not correctness ones.
type Verdict struct {
	Available         bool                        `json:"available"`
	BlockingReason    string                      `json:"blockingReason,omitempty"`
	OverlappingBlocks []*domain.AvailabilityBlock `json:"overlappingBlocks,omitempty"`
	OverlappingJobs   []*domain.Job               `json:"overlappingJobs,omitempty"`
}

// ResolveDay evaluates the availability checks in priority order, short-circuiting
// at the first hard block: day-off, time-off, all-day block, recurring block,
// time-window overlap, then existing-job overlap.
func ResolveDay(member *domain.CrewMember, date time.Time, window *Window, blocks []*domain.AvailabilityBlock, jobs []*domain.Job) Verdict {
	day := domain.DateOnly(date)

	if !member.WorkingHoursProfile.WorksOn(day.Weekday()) {
		return Verdict{BlockingReason: ReasonDayOff}
	}

	if member.OnTimeOff(day) {
		return Verdict{BlockingReason: ReasonTimeOff}
	}

	verdict := Verdict{Available: true}

	for _, block := range blocks {
		if block.TechID != member.ID || !block.AppliesOn(day) {
			continue
		}

		if block.IsAllDay() {
			return Verdict{BlockingReason: blockReason(block)}
		}

		if block.IsRecurring {
			return Verdict{BlockingReason: blockReason(block)}
		}

		if window != nil {
			if windowsOverlap(block.StartTime, block.EndTime, window.Start, window.End) {
				return Verdict{BlockingReason: blockReason(block)}
			}
			// disjoint from the requested window: irrelevant, not overlapping
			continue
		}

		// No window requested: every timed block on the day is an annotation.
		verdict.OverlappingBlocks = append(verdict.OverlappingBlocks, block)
	}

	for _, job := range jobs {
		if !jobAssignedTo(job, member.ID) || !job.OccupiesDate(day) {
			continue
		}
		jobStart, jobEnd := jobWindowOn(job, day)
		if window == nil || windowsOverlap(jobStart, jobEnd, window.Start, window.End) {
			verdict.OverlappingJobs = append(verdict.OverlappingJobs, job)
		}
	}

	return verdict
}

func blockReason(b *domain.AvailabilityBlock) string {
	if b.Title != "" {
		return b.Title
	}
	return string(b.Type)
}

// windowsOverlap applies the product's overlap rule: two ranges overlap unless
// one ends at or before the other starts; a nil time on either side means all
// day and always overlaps.
func windowsOverlap(aStart, aEnd, bStart, bEnd *string) bool {
	as, ok1 := clock(aStart)
	ae, ok2 := clock(aEnd)
	bs, ok3 := clock(bStart)
	be, ok4 := clock(bEnd)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return true
	}
	return !(ae <= bs || be <= as)
}

func clock(s *string) (int, bool) {
	if s == nil {
		return 0, false
	}
	m, err := utils.ParseClock(*s)
	if err != nil {
		return 0, false
	}
	return m, true
}

func jobAssignedTo(job *domain.Job, techID int64) bool {
	for _, a := range job.Crew() {
		if a.TechID == techID {
			return true
		}
	}
	return false
}

// jobWindowOn derives the time window a job occupies on one calendar day. A
// multi-day job contributes its segment for that day; otherwise the window is
// the scheduled start clock time plus the estimated duration.
func jobWindowOn(job *domain.Job, day time.Time) (*string, *string) {
	if job.MultiDaySchedule != nil {
		for _, seg := range job.MultiDaySchedule.Segments {
			if domain.DateOnly(seg.Date).Equal(day) {
				start, end := seg.StartTime, seg.EndTime
				return &start, &end
			}
		}
		return nil, nil
	}

	if job.ScheduledStart == nil {
		return nil, nil
	}
	startMinutes := job.ScheduledStart.Hour()*60 + job.ScheduledStart.Minute()
	start := utils.FormatClock(startMinutes)
	end := utils.FormatClock(startMinutes + job.EstimatedDurationMinutes)
	return &start, &end
}
