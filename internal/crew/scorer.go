package crew

import (
	"fmt"
	"sort"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

const (
	skillBonus     = 50.0
	seniorityBonus = 20.0
	loadWeight     = 30.0
	preferredBonus = 40.0

	// fallback when a directory record carries no daily cap
	defaultMaxJobsPerDay = 3
)

// Candidate is a scored crew member.
type Candidate struct {
	Member    *domain.CrewMember `json:"member"`
	Score     float64            `json:"score"`
	JobsToday int                `json:"jobsToday"`
}

// Suggestion is a proposed crew for a job. An empty candidate pool yields an
// empty suggestion with Reason set; suggesting never errors.
type Suggestion struct {
	Crew         []domain.CrewAssignment `json:"crew"`
	Selected     []Candidate             `json:"selected"`
	Alternatives []Candidate             `json:"alternatives"`
	Sizing       Sizing                  `json:"sizing"`
	Reason       string                  `json:"reason,omitempty"`
}

// Scorer ranks available crew members for a job.
type Scorer struct {
	matrix           SkillMatrix
	alternativeCount int
}

func NewScorer(matrix SkillMatrix, alternativeCount int) *Scorer {
	if matrix == nil {
		matrix = DefaultSkillMatrix()
	}
	if alternativeCount <= 0 {
		alternativeCount = 3
	}
	return &Scorer{matrix: matrix, alternativeCount: alternativeCount}
}

// Suggest filters the directory to members who work the target weekday with
// remaining daily capacity, scores them, and proposes a lead plus helpers.
// existingJobs must not include the job being staffed.
func (s *Scorer) Suggest(job *domain.Job, date time.Time, directory []*domain.CrewMember, existingJobs []*domain.Job) *Suggestion {
	sizing := JobSizing(job)
	suggestion := &Suggestion{Sizing: sizing}

	day := domain.DateOnly(date)
	required := s.matrix[job.Category]

	candidates := make([]Candidate, 0, len(directory))
	for _, member := range directory {
		if !member.WorkingHoursProfile.WorksOn(day.Weekday()) {
			continue
		}

		maxJobs := member.MaxJobsPerDay
		if maxJobs <= 0 {
			maxJobs = defaultMaxJobsPerDay
		}

		jobsToday := countJobsOn(existingJobs, member.ID, day)
		if jobsToday >= maxJobs {
			continue
		}

		score := 0.0
		if len(required) == 0 || member.HasSkill(required) {
			score += skillBonus
		}
		if member.SeniorityLevel.IsSeniorOrAbove() {
			score += seniorityBonus
		}
		score += loadWeight * (1 - float64(jobsToday)/float64(maxJobs))
		if job.PreferredTechnicianID != nil && *job.PreferredTechnicianID == member.ID {
			score += preferredBonus
		}

		candidates = append(candidates, Candidate{Member: member, Score: score, JobsToday: jobsToday})
	}

	if len(candidates) == 0 {
		suggestion.Reason = fmt.Sprintf("no crew members are available on %s with remaining capacity", day.Format("2006-01-02"))
		return suggestion
	}

	// Equal scores keep directory order; no secondary tie-break is defined.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	take := sizing.Suggested
	if take > len(candidates) {
		take = len(candidates)
	}
	suggestion.Selected = candidates[:take]

	for i, c := range suggestion.Selected {
		role := domain.RoleHelper
		if i == 0 {
			role = domain.RoleLead
		}
		suggestion.Crew = append(suggestion.Crew, domain.CrewAssignment{TechID: c.Member.ID, Role: role})
	}

	rest := candidates[take:]
	if len(rest) > s.alternativeCount {
		rest = rest[:s.alternativeCount]
	}
	suggestion.Alternatives = rest

	return suggestion
}

// countJobsOn counts the jobs a member is already assigned on a calendar day.
func countJobsOn(jobs []*domain.Job, techID int64, day time.Time) int {
	count := 0
	for _, job := range jobs {
		if job.FieldStatus == domain.StatusCancelled {
			continue
		}
		for _, a := range job.Crew() {
			if a.TechID == techID && job.OccupiesDate(day) {
				count++
				break
			}
		}
	}
	return count
}
