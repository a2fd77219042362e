package tracking

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/geo"
)

// JobStore is the slice of the repository the tracker needs: read a job and
// write its tracking fields under the per-job optimistic-concurrency contract.
type JobStore interface {
	GetJobByID(id int64) (*domain.Job, error)
	UpdateJobTracking(job *domain.Job) error
}

// EventPublisher delivers tracking events to dispatcher-facing views.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event *domain.TrackingEvent) error
}

// SampleCache stores the latest sample per tech. Older samples are history,
// not authoritative.
type SampleCache interface {
	SetLatest(ctx context.Context, sample *domain.LocationSample) error
}

const sessionBuffer = 32

// casAttempts bounds the read-modify-write retries when a concurrent dispatcher
// mutation bumps the job version under us.
const casAttempts = 3

// Tracker owns one processing session per actively tracked tech. Samples for
// the same tech are applied in arrival order by the session goroutine; there
// is no ordering requirement between techs.
type Tracker struct {
	radii       geo.Radii
	speedMph    float64
	store       JobStore
	events      EventPublisher
	cache       SampleCache
	now         func() time.Time

	mu       sync.Mutex
	sessions map[int64]*session
	wg       sync.WaitGroup
	closed   bool
}

type session struct {
	techID int64
	ch     chan *domain.LocationMessage
	cancel context.CancelFunc
}

func NewTracker(radii geo.Radii, speedMph float64, store JobStore, events EventPublisher, cache SampleCache) *Tracker {
	return &Tracker{
		radii:    radii,
		speedMph: speedMph,
		store:    store,
		events:   events,
		cache:    cache,
		now:      time.Now,
		sessions: make(map[int64]*session),
	}
}

// Dispatch routes a location message to its tech's session, starting one if
// needed. A full session buffer drops the message: a newer sample supersedes
// it anyway.
func (t *Tracker) Dispatch(ctx context.Context, msg *domain.LocationMessage) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	s, ok := t.sessions[msg.TechID]
	if !ok {
		sessionCtx, cancel := context.WithCancel(ctx)
		s = &session{
			techID: msg.TechID,
			ch:     make(chan *domain.LocationMessage, sessionBuffer),
			cancel: cancel,
		}
		t.sessions[msg.TechID] = s
		t.wg.Add(1)
		go t.run(sessionCtx, s)
	}
	t.mu.Unlock()

	select {
	case s.ch <- msg:
	default:
		slog.Warn("session buffer full, dropping sample", "techID", msg.TechID)
	}
}

// Stop ends tracking for one tech. In-flight work completes; no new samples
// are processed.
func (t *Tracker) Stop(techID int64) {
	t.mu.Lock()
	s, ok := t.sessions[techID]
	if ok {
		delete(t.sessions, techID)
	}
	t.mu.Unlock()

	if ok {
		s.cancel()
	}
}

// Shutdown stops every session and waits for them to drain.
func (t *Tracker) Shutdown() {
	t.mu.Lock()
	t.closed = true
	sessions := make([]*session, 0, len(t.sessions))
	for _, s := range t.sessions {
		sessions = append(sessions, s)
	}
	t.sessions = make(map[int64]*session)
	t.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
	}
	t.wg.Wait()
}

func (t *Tracker) run(ctx context.Context, s *session) {
	defer t.wg.Done()

	// last applied client timestamp; stale samples are discarded so a newer
	// reading is never overwritten by an out-of-order one
	var lastTimestamp int64

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.ch:
			if msg.ErrorCode != "" {
				// geolocation failures pause the session implicitly; the next
				// good sample resumes it
				slog.Warn("geolocation unavailable", "techID", s.techID, "jobID", msg.JobID, "code", msg.ErrorCode)
				continue
			}
			if msg.Sample == nil {
				continue
			}
			if msg.Sample.Timestamp <= lastTimestamp {
				slog.Debug("discarding stale sample", "techID", s.techID, "timestamp", msg.Sample.Timestamp)
				continue
			}
			lastTimestamp = msg.Sample.Timestamp

			if err := t.process(ctx, msg.Sample); err != nil {
				slog.Error("failed to process location sample", "techID", s.techID, "jobID", msg.Sample.JobID, "error", err)
			}
		}
	}
}

// process applies one sample: cache it, publish the raw update, then evaluate
// the geofence and ETA against the job and persist any resulting change.
func (t *Tracker) process(ctx context.Context, sample *domain.LocationSample) error {
	if err := t.cache.SetLatest(ctx, sample); err != nil {
		slog.Error("failed to cache latest sample", "techID", sample.TechID, "error", err)
	}

	if err := t.events.PublishEvent(ctx, &domain.TrackingEvent{
		Type:         domain.EventLocationUpdate,
		ContractorID: sample.ContractorID,
		JobID:        sample.JobID,
		TechID:       sample.TechID,
		Sample:       sample,
	}); err != nil {
		slog.Error("failed to publish location update", "techID", sample.TechID, "error", err)
	}

	for attempt := 0; attempt < casAttempts; attempt++ {
		job, err := t.store.GetJobByID(sample.JobID)
		if err != nil {
			return err
		}
		if job.FieldStatus.IsTerminal() || job.SiteLatitude == nil || job.SiteLongitude == nil {
			return nil
		}

		distance := geo.DistanceMeters(sample.Latitude, sample.Longitude, *job.SiteLatitude, *job.SiteLongitude)
		changed := false

		action := EvaluateGeofence(job.FieldStatus, distance, t.radii)
		from := job.FieldStatus
		if action.AutoStatus != nil {
			job.FieldStatus = *action.AutoStatus
			changed = true
		}

		if job.FieldStatus == domain.StatusEnRoute {
			eta := geo.ETAAt(t.now(), distance, t.speedMph)
			job.LiveETA = &eta
			changed = true
		}

		if changed {
			err = t.store.UpdateJobTracking(job)
			if errors.Is(err, sql.ErrNoRows) {
				// version conflict: another dispatcher mutated the job; re-read
				// and reapply without having published anything for this attempt
				continue
			}
			if err != nil {
				return err
			}
		}

		// derived events go out exactly once, after the write (if any) landed
		if action.Advisory != "" {
			t.publishAdvisory(ctx, job, sample, action.Advisory, distance)
		}
		if action.AutoStatus != nil {
			t.publishStatusChange(ctx, job, sample, from, distance)
		}
		if job.FieldStatus == domain.StatusEnRoute {
			t.publishETA(ctx, job, sample, distance)
		}

		return nil
	}

	return errors.New("gave up applying tracking update after repeated version conflicts")
}

func (t *Tracker) publishAdvisory(ctx context.Context, job *domain.Job, sample *domain.LocationSample, advisory string, distance float64) {
	if err := t.events.PublishEvent(ctx, &domain.TrackingEvent{
		Type:           domain.EventAdvisory,
		ContractorID:   job.ContractorID,
		JobID:          job.ID,
		TechID:         sample.TechID,
		Advisory:       advisory,
		DistanceMeters: &distance,
	}); err != nil {
		slog.Error("failed to publish advisory", "jobID", job.ID, "error", err)
	}
}

func (t *Tracker) publishStatusChange(ctx context.Context, job *domain.Job, sample *domain.LocationSample, from domain.FieldStatus, distance float64) {
	if err := t.events.PublishEvent(ctx, &domain.TrackingEvent{
		Type:           domain.EventStatusChange,
		ContractorID:   job.ContractorID,
		JobID:          job.ID,
		TechID:         sample.TechID,
		FromStatus:     from,
		ToStatus:       job.FieldStatus,
		DistanceMeters: &distance,
	}); err != nil {
		slog.Error("failed to publish status change", "jobID", job.ID, "error", err)
	}
}

func (t *Tracker) publishETA(ctx context.Context, job *domain.Job, sample *domain.LocationSample, distance float64) {
	minutes := geo.ETAMinutes(distance, t.speedMph)
	if err := t.events.PublishEvent(ctx, &domain.TrackingEvent{
		Type:           domain.EventETAUpdate,
		ContractorID:   job.ContractorID,
		JobID:          job.ID,
		TechID:         sample.TechID,
		DistanceMeters: &distance,
		ETAMinutes:     &minutes,
	}); err != nil {
		slog.Error("failed to publish eta update", "jobID", job.ID, "error", err)
	}
}
