package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

func (r *Repository) CreateJob(job *domain.Job) error {
	query := `
		INSERT INTO jobs (
			contractor_id,
			title,
			category,
			estimated_duration_minutes,
			complexity,
			scheduled_start,
			assigned_crew,
			required_crew_size,
			preferred_technician_id,
			site_latitude,
			site_longitude,
			field_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	crewJSON, err := json.Marshal(job.AssignedCrew)
	if err != nil {
		return err
	}

	if job.FieldStatus == "" {
		job.FieldStatus = domain.StatusScheduled
	}

	args := []any{
		job.ContractorID,
		job.Title,
		job.Category,
		job.EstimatedDurationMinutes,
		nullString(string(job.Complexity)),
		job.ScheduledStart,
		crewJSON,
		job.RequiredCrewSize,
		job.PreferredTechnicianID,
		job.SiteLatitude,
		job.SiteLongitude,
		job.FieldStatus,
	}
	dst := []any{&job.ID, &job.CreatedAt, &job.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

const jobColumns = `
	contractor_id,
	title,
	category,
	estimated_duration_minutes,
	complexity,
	scheduled_start,
	multi_day_schedule,
	assigned_crew,
	assigned_technician_id,
	required_crew_size,
	preferred_technician_id,
	site_latitude,
	site_longitude,
	field_status,
	live_eta,
	created_at,
	version
`

func scanJob(job *domain.Job, scan func(dst ...any) error) error {
	var complexity sql.NullString
	var scheduleJSON, crewJSON []byte

	dst := []any{
		&job.ContractorID,
		&job.Title,
		&job.Category,
		&job.EstimatedDurationMinutes,
		&complexity,
		&job.ScheduledStart,
		&scheduleJSON,
		&crewJSON,
		&job.AssignedTechnicianID,
		&job.RequiredCrewSize,
		&job.PreferredTechnicianID,
		&job.SiteLatitude,
		&job.SiteLongitude,
		&job.FieldStatus,
		&job.LiveETA,
		&job.CreatedAt,
		&job.Version,
	}
	if err := scan(dst...); err != nil {
		return err
	}

	if complexity.Valid {
		job.Complexity = domain.JobComplexity(complexity.String)
	}
	if len(scheduleJSON) > 0 {
		job.MultiDaySchedule = &domain.MultiDaySchedule{}
		if err := json.Unmarshal(scheduleJSON, job.MultiDaySchedule); err != nil {
			return err
		}
	}
	if len(crewJSON) > 0 {
		if err := json.Unmarshal(crewJSON, &job.AssignedCrew); err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) GetJobByID(id int64) (*domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	job := &domain.Job{ID: id}
	row := r.dbpool.QueryRowContext(ctx, query, id)
	if err := scanJob(job, row.Scan); err != nil {
		return nil, err
	}

	return job, nil
}

func (r *Repository) GetJobsByContractor(contractorID string) ([]*domain.Job, error) {
	query := `SELECT id, ` + jobColumns + ` FROM jobs WHERE contractor_id = $1 ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]*domain.Job, 0)
	for rows.Next() {
		job := &domain.Job{}
		scan := func(dst ...any) error {
			return rows.Scan(append([]any{&job.ID}, dst...)...)
		}
		if err := scanJob(job, scan); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// UpdateJob writes the schedulable fields under the optimistic-concurrency
// contract: the write only lands if the caller's version is still current,
// otherwise sql.ErrNoRows surfaces and the caller must re-read and retry.
func (r *Repository) UpdateJob(job *domain.Job) error {
	query := `
		UPDATE jobs
		SET
			title = $1,
			category = $2,
			estimated_duration_minutes = $3,
			complexity = $4,
			scheduled_start = $5,
			multi_day_schedule = $6,
			assigned_crew = $7,
			assigned_technician_id = $8,
			required_crew_size = $9,
			preferred_technician_id = $10,
			field_status = $11,
			live_eta = $12,
			version = version + 1
		WHERE id = $13 AND version = $14
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var scheduleJSON []byte
	if job.MultiDaySchedule != nil {
		var err error
		scheduleJSON, err = json.Marshal(job.MultiDaySchedule)
		if err != nil {
			return err
		}
	}
	crewJSON, err := json.Marshal(job.AssignedCrew)
	if err != nil {
		return err
	}

	args := []any{
		job.Title,
		job.Category,
		job.EstimatedDurationMinutes,
		nullString(string(job.Complexity)),
		job.ScheduledStart,
		scheduleJSON,
		crewJSON,
		job.AssignedTechnicianID,
		job.RequiredCrewSize,
		job.PreferredTechnicianID,
		job.FieldStatus,
		job.LiveETA,
		job.ID,
		job.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.Version); err != nil {
		return err
	}

	return nil
}

// UpdateJobTracking writes only the live dispatch fields, same CAS contract.
func (r *Repository) UpdateJobTracking(job *domain.Job) error {
	query := `
		UPDATE jobs
		SET
			field_status = $1,
			live_eta = $2,
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{job.FieldStatus, job.LiveETA, job.ID, job.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&job.Version); err != nil {
		return err
	}

	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
