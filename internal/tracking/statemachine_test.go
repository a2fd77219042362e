package tracking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/geo"
)

var testRadii = geo.Radii{ArrivalMeters: 100, DepartureMeters: 200, NearbyMeters: 500}

func TestApplyTransition(t *testing.T) {
	tests := []struct {
		name       string
		current    domain.FieldStatus
		transition Transition
		want       domain.FieldStatus
		wantErr    bool
	}{
		{"scheduled to en route", domain.StatusScheduled, TransitionStartEnRoute, domain.StatusEnRoute, false},
		{"en route to arrived", domain.StatusEnRoute, TransitionMarkArrived, domain.StatusArrived, false},
		{"arrived to working", domain.StatusArrived, TransitionStartWorking, domain.StatusWorking, false},
		{"working to paused", domain.StatusWorking, TransitionPauseWork, domain.StatusPaused, false},
		{"paused to working", domain.StatusPaused, TransitionResumeWork, domain.StatusWorking, false},
		{"working to wrapping up", domain.StatusWorking, TransitionWrapUp, domain.StatusWrappingUp, false},
		{"wrapping up to completed", domain.StatusWrappingUp, TransitionCompleteJob, domain.StatusCompleted, false},
		// skipping states is allowed; the operator's action wins
		{"scheduled straight to working", domain.StatusScheduled, TransitionStartWorking, domain.StatusWorking, false},
		// so is reopening a finished job
		{"reopen a completed job", domain.StatusCompleted, TransitionStartWorking, domain.StatusWorking, false},
		{"restart a cancelled job", domain.StatusCancelled, TransitionStartEnRoute, domain.StatusEnRoute, false},
		{"cancel while working", domain.StatusWorking, TransitionCancelJob, domain.StatusCancelled, false},
		{"cancel a completed job", domain.StatusCompleted, TransitionCancelJob, domain.StatusCompleted, true},
		{"cancel a cancelled job", domain.StatusCancelled, TransitionCancelJob, domain.StatusCancelled, true},
		{"unknown transition", domain.StatusScheduled, Transition("teleport"), domain.StatusScheduled, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyTransition(tt.current, tt.transition)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateGeofenceAutoArrival(t *testing.T) {
	action := EvaluateGeofence(domain.StatusEnRoute, 90, testRadii)

	require.NotNil(t, action.AutoStatus)
	assert.Equal(t, domain.StatusArrived, *action.AutoStatus)
	assert.Empty(t, action.Advisory)
}

func TestEvaluateGeofenceAlmostThere(t *testing.T) {
	action := EvaluateGeofence(domain.StatusEnRoute, 300, testRadii)

	assert.Nil(t, action.AutoStatus)
	assert.Equal(t, AdvisoryAlmostThere, action.Advisory)
}

func TestEvaluateGeofenceFarAwayEnRoute(t *testing.T) {
	action := EvaluateGeofence(domain.StatusEnRoute, 5000, testRadii)

	assert.Nil(t, action.AutoStatus)
	assert.Empty(t, action.Advisory)
}

func TestEvaluateGeofenceLeftSite(t *testing.T) {
	for _, status := range []domain.FieldStatus{domain.StatusArrived, domain.StatusWorking, domain.StatusPaused} {
		action := EvaluateGeofence(status, 250, testRadii)
		assert.Equal(t, AdvisoryLeftSite, action.Advisory, "status %s", status)
		assert.Nil(t, action.AutoStatus)
	}

	// still within the departure radius
	action := EvaluateGeofence(domain.StatusWorking, 150, testRadii)
	assert.Empty(t, action.Advisory)
}

func TestEvaluateGeofenceOffSiteStatusesStaySilent(t *testing.T) {
	for _, status := range []domain.FieldStatus{domain.StatusScheduled, domain.StatusWrappingUp, domain.StatusCompleted} {
		action := EvaluateGeofence(status, 50, testRadii)
		assert.Nil(t, action.AutoStatus, "status %s", status)
		assert.Empty(t, action.Advisory, "status %s", status)
	}
}
