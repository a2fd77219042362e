package crew

import (
	"fmt"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/availability"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

type Severity string

const (
	SeverityError   Severity = "error"   // hard conflict, blocks commit
	SeverityWarning Severity = "warning" // soft conflict, surfaced alongside success
)

const (
	CodeDayOff       = "day_off"
	CodeCapacity     = "capacity"
	CodeCrewShortage = "crew_shortage"
	CodeUnknownTech  = "unknown_tech"
)

type Finding struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	TechID   int64    `json:"techID,omitempty"`
	Date     string   `json:"date,omitempty"` // YYYY-MM-DD
	Message  string   `json:"message"`
	Deficit  int      `json:"deficit,omitempty"`
}

type Report struct {
	Findings []Finding `json:"findings"`
}

// HasBlocking reports whether any finding blocks the commit.
func (r *Report) HasBlocking() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns the soft findings for surfacing next to a successful commit.
func (r *Report) Warnings() []Finding {
	warnings := make([]Finding, 0)
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			warnings = append(warnings, f)
		}
	}
	return warnings
}

// DetectConflicts cross-checks a proposed crew and segment set against the
// directory, availability blocks, and already-committed jobs. existingJobs
// must not include the job being committed. requiredCrewSize below 1 falls
// back to the job sizing's suggested count.
func DetectConflicts(proposed []domain.CrewAssignment, segments []domain.DaySegment, directory []*domain.CrewMember, blocks []*domain.AvailabilityBlock, existingJobs []*domain.Job, requiredCrewSize int) *Report {
	report := &Report{Findings: []Finding{}}

	byID := make(map[int64]*domain.CrewMember, len(directory))
	for _, m := range directory {
		byID[m.ID] = m
	}

	// blockedOn[date] tracks proposed members unusable that day, whether hard
	// blocked or double-booked by an existing job, feeding the per-segment
	// shortage report.
	blockedOn := make(map[string]map[int64]bool, len(segments))
	for _, seg := range segments {
		blockedOn[seg.Date.Format("2006-01-02")] = make(map[int64]bool)
	}

	for _, assignment := range proposed {
		member, ok := byID[assignment.TechID]
		if !ok {
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityError,
				Code:     CodeUnknownTech,
				TechID:   assignment.TechID,
				Message:  fmt.Sprintf("technician %d is not in the crew directory", assignment.TechID),
			})
			for day := range blockedOn {
				blockedOn[day][assignment.TechID] = true
			}
			continue
		}

		for _, seg := range segments {
			day := seg.Date.Format("2006-01-02")
			start, end := seg.StartTime, seg.EndTime
			window := &availability.Window{Start: &start, End: &end}

			verdict := availability.ResolveDay(member, seg.Date, window, blocks, existingJobs)
			if !verdict.Available {
				code := verdict.BlockingReason
				if code == availability.ReasonDayOff {
					code = CodeDayOff
				}
				report.Findings = append(report.Findings, Finding{
					Severity: SeverityError,
					Code:     code,
					TechID:   member.ID,
					Date:     day,
					Message:  fmt.Sprintf("%s is unavailable on %s (%s)", member.FullName, day, verdict.BlockingReason),
				})
				blockedOn[day][member.ID] = true
				continue
			}

			// a member double-booked by an existing job in this window cannot
			// count toward this day's crew either
			if len(verdict.OverlappingJobs) > 0 {
				blockedOn[day][member.ID] = true
			}

			maxJobs := member.MaxJobsPerDay
			if maxJobs <= 0 {
				maxJobs = defaultMaxJobsPerDay
			}
			if jobsToday := countJobsOn(existingJobs, member.ID, seg.Date); jobsToday >= maxJobs {
				report.Findings = append(report.Findings, Finding{
					Severity: SeverityWarning,
					Code:     CodeCapacity,
					TechID:   member.ID,
					Date:     day,
					Message:  fmt.Sprintf("%s already has %d job(s) on %s (max %d)", member.FullName, jobsToday, day, maxJobs),
				})
			}
		}
	}

	if requiredCrewSize < 1 {
		requiredCrewSize = 1
	}

	// Day-by-day shortage report for multi-day proposals.
	for _, seg := range segments {
		day := seg.Date.Format("2006-01-02")
		usable := 0
		for _, assignment := range proposed {
			if !blockedOn[day][assignment.TechID] {
				usable++
			}
		}
		if usable < requiredCrewSize {
			report.Findings = append(report.Findings, Finding{
				Severity: SeverityWarning,
				Code:     CodeCrewShortage,
				Date:     day,
				Deficit:  requiredCrewSize - usable,
				Message:  fmt.Sprintf("only %d of %d required crew members are available on %s", usable, requiredCrewSize, day),
			})
		}
	}

	return report
}
