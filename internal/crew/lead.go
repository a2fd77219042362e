package crew

import "github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"

// NormalizeLead enforces the exactly-one-lead invariant as a deterministic,
// order-stable repair rather than a rejection: with no lead the first member is
// promoted; with several, the first stays lead and the rest become helpers.
func NormalizeLead(crew []domain.CrewAssignment) []domain.CrewAssignment {
	if len(crew) == 0 {
		return crew
	}

	normalized := make([]domain.CrewAssignment, len(crew))
	copy(normalized, crew)

	leadSeen := false
	for i := range normalized {
		if normalized[i].Role != domain.RoleLead {
			continue
		}
		if leadSeen {
			normalized[i].Role = domain.RoleHelper
			continue
		}
		leadSeen = true
	}

	if !leadSeen {
		normalized[0].Role = domain.RoleLead
	}

	return normalized
}
