package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/availability"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/crew"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/schedule"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/tracking"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/utils"
)

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ContractorID             string     `json:"contractorID" validate:"required"`
		Title                    string     `json:"title" validate:"required"`
		Category                 string     `json:"category"`
		EstimatedDurationMinutes int        `json:"estimatedDurationMinutes" validate:"min=0"`
		Complexity               string     `json:"complexity" validate:"omitempty,oneof=simple moderate complex major"`
		ScheduledStart           *time.Time `json:"scheduledStart"`
		RequiredCrewSize         int        `json:"requiredCrewSize" validate:"min=0"`
		PreferredTechnicianID    *int64     `json:"preferredTechnicianID"`
		SiteLatitude             *float64   `json:"siteLatitude"`
		SiteLongitude            *float64   `json:"siteLongitude"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	job := &domain.Job{
		ContractorID:             req.ContractorID,
		Title:                    req.Title,
		Category:                 req.Category,
		EstimatedDurationMinutes: req.EstimatedDurationMinutes,
		Complexity:               domain.JobComplexity(req.Complexity),
		ScheduledStart:           req.ScheduledStart,
		RequiredCrewSize:         req.RequiredCrewSize,
		PreferredTechnicianID:    req.PreferredTechnicianID,
		SiteLatitude:             req.SiteLatitude,
		SiteLongitude:            req.SiteLongitude,
		FieldStatus:              domain.StatusScheduled,
	}

	if err := h.repository.CreateJob(job); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch pgErr.ConstraintName {
			case "jobs_preferred_technician_id_fkey":
				h.errorResponse(w, r, "preferred technician does not exist")
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job created", job)
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	h.successResponse(w, r, "job fetched", job)
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	contractorID := r.URL.Query().Get("contractorID")
	if contractorID == "" {
		h.errorResponse(w, r, "contractorID query parameter is required")
		return
	}

	jobs, err := h.repository.GetJobsByContractor(contractorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "jobs fetched", jobs)
}

// ScheduleJob runs the day segmenter against the lead's working-hours profile
// (or an explicitly named tech's) and stores the derived multi-day schedule on
// the job. Recomputed on every call, so duration or start-date changes just
// need a re-schedule.
func (h *Handler) ScheduleJob(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	var req struct {
		TechID *int64 `json:"techID"`
	}
	if r.ContentLength > 0 {
		if err := h.readJSON(r, &req); err != nil {
			h.badRequest(w, r, err)
			return
		}
	}

	if job.ScheduledStart == nil {
		h.errorResponse(w, r, "job has no scheduled start date")
		return
	}

	profile := domain.WorkingHoursProfile{}
	techID := req.TechID
	if techID == nil {
		for _, a := range job.Crew() {
			if a.Role == domain.RoleLead {
				id := a.TechID
				techID = &id
				break
			}
		}
	}
	if techID != nil {
		member, err := h.repository.GetCrewMemberByID(*techID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, "technician not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}
		profile = member.WorkingHoursProfile
	}

	sched := schedule.Segment(*job.ScheduledStart, job.EstimatedDurationMinutes, profile, h.segmentOpts)
	job.MultiDaySchedule = sched

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "job was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	msg := "job scheduled"
	if sched.Truncated {
		msg = "job scheduled, but the duration exceeds the working-day limit and was truncated"
	}
	h.successResponse(w, r, msg, sched)
}

// SuggestCrew ranks the directory for this job over a snapshot of current
// data. The output can be stale by commit time, which is why CommitCrew
// re-validates.
func (h *Handler) SuggestCrew(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	if job.ScheduledStart == nil {
		h.errorResponse(w, r, "job has no scheduled start date")
		return
	}

	directory, err := h.repository.ListCrewMembers(job.ContractorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	existingJobs, err := h.otherJobs(job)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	suggestion := h.scorer.Suggest(job, *job.ScheduledStart, directory, existingJobs)

	// For multi-day jobs, attach the per-member availability breakdown so the
	// dispatcher sees which days would be short-handed before committing.
	var summaries []*availability.MemberSummary
	if job.MultiDaySchedule.IsMultiDay() {
		blocks, err := h.repository.ListActiveAvailabilityBlocks(job.ContractorID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		summaries = availability.ResolveCrew(directory, job.MultiDaySchedule.Segments, blocks, existingJobs)
	}

	h.successResponse(w, r, "crew suggestion computed", map[string]any{
		"suggestion":   suggestion,
		"availability": summaries,
	})
}

// CommitCrew validates a proposed crew against a fresh snapshot, repairs the
// lead invariant, and writes the assignment under the job's version guard.
// Hard conflicts reject the commit; soft conflicts ride along with success.
func (h *Handler) CommitCrew(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	var req struct {
		Crew []struct {
			TechID    int64   `json:"techID" validate:"required"`
			Role      string  `json:"role" validate:"required,oneof=lead helper apprentice specialist"`
			VehicleID *string `json:"vehicleID"`
		} `json:"crew" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	proposed := make([]domain.CrewAssignment, len(req.Crew))
	for i, a := range req.Crew {
		proposed[i] = domain.CrewAssignment{
			TechID:    a.TechID,
			Role:      domain.CrewRole(a.Role),
			VehicleID: a.VehicleID,
		}
	}

	directory, err := h.repository.ListCrewMembers(job.ContractorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	blocks, err := h.repository.ListActiveAvailabilityBlocks(job.ContractorID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	existingJobs, err := h.otherJobs(job)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	requiredSize := job.RequiredCrewSize
	if requiredSize < 1 {
		requiredSize = crew.JobSizing(job).Suggested
	}

	report := crew.DetectConflicts(proposed, h.jobSegments(job), directory, blocks, existingJobs, requiredSize)
	if report.HasBlocking() {
		h.errorResponseWithData(w, r, "crew assignment has blocking conflicts", report.Findings)
		return
	}

	job.AssignedCrew = crew.NormalizeLead(proposed)
	// the legacy single-technician field is superseded by the crew list
	job.AssignedTechnicianID = nil

	if err := h.repository.UpdateJob(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "job was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "crew committed", map[string]any{
		"job":      job,
		"warnings": report.Warnings(),
	})
}

func (h *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	job := r.Context().Value(JobCtx).(*domain.Job)

	var req struct {
		Transition string `json:"transition" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	next, err := tracking.ApplyTransition(job.FieldStatus, tracking.Transition(req.Transition))
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	job.FieldStatus = next
	if next.IsTerminal() {
		job.LiveETA = nil
	}

	if err := h.repository.UpdateJobTracking(job); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "job was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job status updated", map[string]any{
		"fieldStatus": job.FieldStatus,
		"meta":        job.FieldStatus.Meta(),
	})
}

// otherJobs returns the contractor's jobs excluding the one being operated on
// and anything cancelled, which is the snapshot conflict checks run against.
func (h *Handler) otherJobs(job *domain.Job) ([]*domain.Job, error) {
	all, err := h.repository.GetJobsByContractor(job.ContractorID)
	if err != nil {
		return nil, err
	}

	others := make([]*domain.Job, 0, len(all))
	for _, j := range all {
		if j.ID == job.ID || j.FieldStatus == domain.StatusCancelled {
			continue
		}
		others = append(others, j)
	}

	return others, nil
}

// jobSegments returns the job's stored segments, or a single synthesized
// segment from the scheduled start when the job was never run through the
// segmenter.
func (h *Handler) jobSegments(job *domain.Job) []domain.DaySegment {
	if job.MultiDaySchedule != nil && len(job.MultiDaySchedule.Segments) > 0 {
		return job.MultiDaySchedule.Segments
	}
	if job.ScheduledStart == nil {
		return nil
	}

	startMinutes := job.ScheduledStart.Hour()*60 + job.ScheduledStart.Minute()
	return []domain.DaySegment{{
		Date:            domain.DateOnly(*job.ScheduledStart),
		DayNumber:       1,
		StartTime:       utils.FormatClock(startMinutes),
		EndTime:         utils.FormatClock(startMinutes + job.EstimatedDurationMinutes),
		DurationMinutes: job.EstimatedDurationMinutes,
		IsComplete:      true,
	}}
}
