package tracking

import (
	"fmt"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/geo"
)

// Transition is an explicit operator action on the field lifecycle.
type Transition string

const (
	TransitionStartEnRoute Transition = "startEnRoute"
	TransitionMarkArrived  Transition = "markArrived"
	TransitionStartWorking Transition = "startWorking"
	TransitionPauseWork    Transition = "pauseWork"
	TransitionResumeWork   Transition = "resumeWork"
	TransitionWrapUp       Transition = "wrapUp"
	TransitionCompleteJob  Transition = "completeJob"
	TransitionCancelJob    Transition = "cancelJob"
)

var transitionTargets = map[Transition]domain.FieldStatus{
	TransitionStartEnRoute: domain.StatusEnRoute,
	TransitionMarkArrived:  domain.StatusArrived,
	TransitionStartWorking: domain.StatusWorking,
	TransitionPauseWork:    domain.StatusPaused,
	TransitionResumeWork:   domain.StatusWorking,
	TransitionWrapUp:       domain.StatusWrappingUp,
	TransitionCompleteJob:  domain.StatusCompleted,
	TransitionCancelJob:    domain.StatusCancelled,
}

// ApplyTransition resolves an explicit transition against the current status.
// Callers are expected to drive the intended sequence; the engine does not
// forbid skipping states or reopening finished jobs, it simply overwrites the
// value. The one guard is that CANCELLED is only reachable from a non-terminal
// status.
func ApplyTransition(current domain.FieldStatus, t Transition) (domain.FieldStatus, error) {
	target, ok := transitionTargets[t]
	if !ok {
		return current, fmt.Errorf("unknown transition %q", t)
	}
	if t == TransitionCancelJob && current.IsTerminal() {
		return current, fmt.Errorf("job is already %s", current)
	}
	return target, nil
}

const (
	AdvisoryAlmostThere = "almost there"
	AdvisoryLeftSite    = "left site"
)

// GeofenceAction is the outcome of evaluating one location sample against the
// geofence. AutoStatus is set only for the auto-applied arrival transition;
// advisories never change state on their own.
type GeofenceAction struct {
	AutoStatus *domain.FieldStatus `json:"autoStatus,omitempty"`
	Advisory   string              `json:"advisory,omitempty"`
}

// EvaluateGeofence classifies a distance-to-site for the current status.
// Arrival is the only auto-applied transition; departure is advisory only.
func EvaluateGeofence(current domain.FieldStatus, distanceMeters float64, radii geo.Radii) GeofenceAction {
	if current == domain.StatusEnRoute {
		switch radii.Classify(distanceMeters) {
		case geo.ZoneArrival:
			arrived := domain.StatusArrived
			return GeofenceAction{AutoStatus: &arrived}
		case geo.ZoneNearby:
			return GeofenceAction{Advisory: AdvisoryAlmostThere}
		}
		return GeofenceAction{}
	}

	if current.IsOnSite() && radii.HasLeftSite(distanceMeters) {
		return GeofenceAction{Advisory: AdvisoryLeftSite}
	}

	return GeofenceAction{}
}
