package availability

import (
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

// DayConflict records an existing-job overlap for a member on one segment day.
type DayConflict struct {
	Date   string  `json:"date"` // YYYY-MM-DD
	JobIDs []int64 `json:"jobIDs"`
}

// MemberSummary is the per-member result of resolving every segment of a
// multi-day job, consumed by both the suggestion scorer and the conflict detector.
type MemberSummary struct {
	TechID            int64         `json:"techID"`
	UnavailableDays   []string      `json:"unavailableDays"` // YYYY-MM-DD, with reasons in Reasons
	Reasons           []string      `json:"reasons"`
	Conflicts         []DayConflict `json:"conflicts"`
	AvailableDayCount int           `json:"availableDayCount"`
}

// ResolveCrew runs the day resolver across every segment for every candidate
// member. The returned slice preserves the input member order.
func ResolveCrew(members []*domain.CrewMember, segments []domain.DaySegment, blocks []*domain.AvailabilityBlock, jobs []*domain.Job) []*MemberSummary {
	summaries := make([]*MemberSummary, 0, len(members))

	for _, member := range members {
		summary := &MemberSummary{TechID: member.ID}

		for _, seg := range segments {
			start, end := seg.StartTime, seg.EndTime
			window := &Window{Start: &start, End: &end}

			verdict := ResolveDay(member, seg.Date, window, blocks, jobs)
			day := seg.Date.Format("2006-01-02")

			if !verdict.Available {
				summary.UnavailableDays = append(summary.UnavailableDays, day)
				summary.Reasons = append(summary.Reasons, verdict.BlockingReason)
				continue
			}

			summary.AvailableDayCount++

			if len(verdict.OverlappingJobs) > 0 {
				conflict := DayConflict{Date: day}
				for _, job := range verdict.OverlappingJobs {
					conflict.JobIDs = append(conflict.JobIDs, job.ID)
				}
				summary.Conflicts = append(summary.Conflicts, conflict)
			}
		}

		summaries = append(summaries, summary)
	}

	return summaries
}
