package tracking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/geo"
)

type fakeStore struct {
	job            *domain.Job
	updates        []*domain.Job
	conflictsLeft  int
}

func (s *fakeStore) GetJobByID(id int64) (*domain.Job, error) {
	copied := *s.job
	return &copied, nil
}

func (s *fakeStore) UpdateJobTracking(job *domain.Job) error {
	if s.conflictsLeft > 0 {
		s.conflictsLeft--
		return sql.ErrNoRows
	}
	s.job = job
	s.updates = append(s.updates, job)
	return nil
}

type fakePublisher struct {
	events []*domain.TrackingEvent
}

func (p *fakePublisher) PublishEvent(ctx context.Context, event *domain.TrackingEvent) error {
	p.events = append(p.events, event)
	return nil
}

type fakeCache struct {
	samples []*domain.LocationSample
}

func (c *fakeCache) SetLatest(ctx context.Context, sample *domain.LocationSample) error {
	c.samples = append(c.samples, sample)
	return nil
}

func siteJob(status domain.FieldStatus) *domain.Job {
	lat, lng := 30.2672, -97.7431
	return &domain.Job{
		ID:            1,
		ContractorID:  "ctr-1",
		SiteLatitude:  &lat,
		SiteLongitude: &lng,
		FieldStatus:   status,
	}
}

func sampleAt(lat, lng float64, ts int64) *domain.LocationSample {
	return &domain.LocationSample{
		TechID:       5,
		ContractorID: "ctr-1",
		JobID:        1,
		Latitude:     lat,
		Longitude:    lng,
		Timestamp:    ts,
	}
}

func newTestTracker(store *fakeStore, publisher *fakePublisher, cache *fakeCache) *Tracker {
	radii := geo.Radii{ArrivalMeters: 100, DepartureMeters: 200, NearbyMeters: 500}
	tracker := NewTracker(radii, 25, store, publisher, cache)
	tracker.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }
	return tracker
}

func eventsOfType(events []*domain.TrackingEvent, t domain.TrackingEventType) []*domain.TrackingEvent {
	filtered := []*domain.TrackingEvent{}
	for _, e := range events {
		if e.Type == t {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func TestProcessAutoArrivesFromEnRoute(t *testing.T) {
	store := &fakeStore{job: siteJob(domain.StatusEnRoute)}
	publisher := &fakePublisher{}
	cache := &fakeCache{}
	tracker := newTestTracker(store, publisher, cache)

	// a sample at the site itself
	err := tracker.process(context.Background(), sampleAt(30.2672, -97.7431, 1000))
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	assert.Equal(t, domain.StatusArrived, store.updates[0].FieldStatus)

	require.Len(t, cache.samples, 1)
	assert.Len(t, eventsOfType(publisher.events, domain.EventLocationUpdate), 1)

	changes := eventsOfType(publisher.events, domain.EventStatusChange)
	require.Len(t, changes, 1)
	assert.Equal(t, domain.StatusEnRoute, changes[0].FromStatus)
	assert.Equal(t, domain.StatusArrived, changes[0].ToStatus)
}

func TestProcessPublishesETAWhileEnRoute(t *testing.T) {
	store := &fakeStore{job: siteJob(domain.StatusEnRoute)}
	publisher := &fakePublisher{}
	tracker := newTestTracker(store, publisher, &fakeCache{})

	// roughly 11 km out, well beyond every radius
	err := tracker.process(context.Background(), sampleAt(30.3672, -97.7431, 1000))
	require.NoError(t, err)

	require.Len(t, store.updates, 1)
	assert.Equal(t, domain.StatusEnRoute, store.updates[0].FieldStatus)
	require.NotNil(t, store.updates[0].LiveETA)

	etas := eventsOfType(publisher.events, domain.EventETAUpdate)
	require.Len(t, etas, 1)
	require.NotNil(t, etas[0].ETAMinutes)
	assert.Greater(t, *etas[0].ETAMinutes, 0.0)
}

func TestProcessLeftSiteAdvisoryDoesNotChangeStatus(t *testing.T) {
	store := &fakeStore{job: siteJob(domain.StatusWorking)}
	publisher := &fakePublisher{}
	tracker := newTestTracker(store, publisher, &fakeCache{})

	// about 300 m north of the site
	err := tracker.process(context.Background(), sampleAt(30.2699, -97.7431, 1000))
	require.NoError(t, err)

	// advisory only, nothing persisted
	assert.Empty(t, store.updates)
	advisories := eventsOfType(publisher.events, domain.EventAdvisory)
	require.Len(t, advisories, 1)
	assert.Equal(t, AdvisoryLeftSite, advisories[0].Advisory)
}

func TestProcessSkipsTerminalJobs(t *testing.T) {
	store := &fakeStore{job: siteJob(domain.StatusCompleted)}
	publisher := &fakePublisher{}
	tracker := newTestTracker(store, publisher, &fakeCache{})

	err := tracker.process(context.Background(), sampleAt(30.2672, -97.7431, 1000))
	require.NoError(t, err)

	assert.Empty(t, store.updates)
	// the raw location update is still published for history
	assert.Len(t, eventsOfType(publisher.events, domain.EventLocationUpdate), 1)
}

func TestProcessRetriesOnVersionConflict(t *testing.T) {
	store := &fakeStore{job: siteJob(domain.StatusEnRoute), conflictsLeft: 2}
	publisher := &fakePublisher{}
	tracker := newTestTracker(store, publisher, &fakeCache{})

	err := tracker.process(context.Background(), sampleAt(30.2672, -97.7431, 1000))
	require.NoError(t, err)
	require.Len(t, store.updates, 1)

	// failed attempts publish nothing; the landed write publishes exactly once
	assert.Len(t, eventsOfType(publisher.events, domain.EventStatusChange), 1)
}

func TestProcessGivesUpAfterRepeatedConflicts(t *testing.T) {
	store := &fakeStore{job: siteJob(domain.StatusEnRoute), conflictsLeft: 10}
	publisher := &fakePublisher{}
	tracker := newTestTracker(store, publisher, &fakeCache{})

	err := tracker.process(context.Background(), sampleAt(30.2672, -97.7431, 1000))
	require.Error(t, err)
	assert.Empty(t, store.updates)
	// nothing derived from the sample was announced either
	assert.Empty(t, eventsOfType(publisher.events, domain.EventStatusChange))
	assert.Empty(t, eventsOfType(publisher.events, domain.EventAdvisory))
}
