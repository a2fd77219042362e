package crew

import "github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"

// Sizing is the crew-size recommendation derived from job complexity.
type Sizing struct {
	Complexity domain.JobComplexity `json:"complexity"`
	Suggested  int                  `json:"suggested"`
	Max        int                  `json:"max"`
}

// ClassifyComplexity derives a complexity label from the estimated duration.
func ClassifyComplexity(durationMinutes int) domain.JobComplexity {
	switch {
	case durationMinutes < 2*60:
		return domain.ComplexitySimple
	case durationMinutes < 4*60:
		return domain.ComplexityModerate
	case durationMinutes < 8*60:
		return domain.ComplexityComplex
	default:
		return domain.ComplexityMajor
	}
}

var sizings = map[domain.JobComplexity]Sizing{
	domain.ComplexitySimple:   {Complexity: domain.ComplexitySimple, Suggested: 1, Max: 2},
	domain.ComplexityModerate: {Complexity: domain.ComplexityModerate, Suggested: 1, Max: 3},
	domain.ComplexityComplex:  {Complexity: domain.ComplexityComplex, Suggested: 2, Max: 4},
	domain.ComplexityMajor:    {Complexity: domain.ComplexityMajor, Suggested: 3, Max: 6},
}

// JobSizing returns the sizing for a job. An explicit complexity label on the
// job overrides the duration-derived value.
func JobSizing(job *domain.Job) Sizing {
	complexity := job.Complexity
	if _, ok := sizings[complexity]; !ok {
		complexity = ClassifyComplexity(job.EstimatedDurationMinutes)
	}
	return sizings[complexity]
}

// SkillMatrix maps a job category to the skills it requires. Categories with
// no entry require no skills. Loaded once at startup and injected.
type SkillMatrix map[string][]string

// DefaultSkillMatrix covers the stock service categories.
func DefaultSkillMatrix() SkillMatrix {
	return SkillMatrix{
		"hvac":       {"hvac", "refrigerant-handling"},
		"plumbing":   {"plumbing", "pipefitting"},
		"electrical": {"electrical", "wiring"},
		"roofing":    {"roofing", "fall-protection"},
		"landscaping": {"landscaping"},
		"appliance":  {"appliance-repair"},
	}
}
