package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

func (r *Repository) CreateCrewMember(member *domain.CrewMember) error {
	query := `
		INSERT INTO crew_members (
			contractor_id,
			full_name,
			working_hours_profile,
			skills,
			max_jobs_per_day,
			seniority_level,
			time_off
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, is_active, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profileJSON, skillsJSON, timeOffJSON, err := marshalCrewMember(member)
	if err != nil {
		return err
	}

	args := []any{
		member.ContractorID,
		member.FullName,
		profileJSON,
		skillsJSON,
		member.MaxJobsPerDay,
		member.SeniorityLevel,
		timeOffJSON,
	}
	dst := []any{&member.ID, &member.IsActive, &member.CreatedAt, &member.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func marshalCrewMember(member *domain.CrewMember) ([]byte, []byte, []byte, error) {
	profileJSON, err := json.Marshal(member.WorkingHoursProfile)
	if err != nil {
		return nil, nil, nil, err
	}
	skillsJSON, err := json.Marshal(member.Skills)
	if err != nil {
		return nil, nil, nil, err
	}
	timeOffJSON, err := json.Marshal(member.TimeOff)
	if err != nil {
		return nil, nil, nil, err
	}
	return profileJSON, skillsJSON, timeOffJSON, nil
}

func scanCrewMember(member *domain.CrewMember, scan func(dst ...any) error) error {
	var profileJSON, skillsJSON, timeOffJSON []byte

	dst := []any{
		&member.ContractorID,
		&member.FullName,
		&profileJSON,
		&skillsJSON,
		&member.MaxJobsPerDay,
		&member.SeniorityLevel,
		&timeOffJSON,
		&member.IsActive,
		&member.CreatedAt,
		&member.Version,
	}
	if err := scan(dst...); err != nil {
		return err
	}

	if len(profileJSON) > 0 {
		if err := json.Unmarshal(profileJSON, &member.WorkingHoursProfile); err != nil {
			return err
		}
	}
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &member.Skills); err != nil {
			return err
		}
	}
	if len(timeOffJSON) > 0 {
		if err := json.Unmarshal(timeOffJSON, &member.TimeOff); err != nil {
			return err
		}
	}

	return nil
}

const crewMemberColumns = `
	contractor_id,
	full_name,
	working_hours_profile,
	skills,
	max_jobs_per_day,
	seniority_level,
	time_off,
	is_active,
	created_at,
	version
`

func (r *Repository) GetCrewMemberByID(id int64) (*domain.CrewMember, error) {
	query := `SELECT ` + crewMemberColumns + ` FROM crew_members WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	member := &domain.CrewMember{ID: id}
	row := r.dbpool.QueryRowContext(ctx, query, id)
	if err := scanCrewMember(member, row.Scan); err != nil {
		return nil, err
	}

	return member, nil
}

// ListCrewMembers returns the active crew directory for a contractor in
// insertion order, which the scorer relies on for stable tie-breaking.
func (r *Repository) ListCrewMembers(contractorID string) ([]*domain.CrewMember, error) {
	query := `SELECT id, ` + crewMemberColumns + ` FROM crew_members WHERE contractor_id = $1 AND is_active ORDER BY id`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := make([]*domain.CrewMember, 0)
	for rows.Next() {
		member := &domain.CrewMember{}
		scan := func(dst ...any) error {
			return rows.Scan(append([]any{&member.ID}, dst...)...)
		}
		if err := scanCrewMember(member, scan); err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return members, nil
}

func (r *Repository) UpdateCrewMember(member *domain.CrewMember) error {
	query := `
		UPDATE crew_members
		SET
			full_name = $1,
			working_hours_profile = $2,
			skills = $3,
			max_jobs_per_day = $4,
			seniority_level = $5,
			time_off = $6,
			is_active = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	profileJSON, skillsJSON, timeOffJSON, err := marshalCrewMember(member)
	if err != nil {
		return err
	}

	args := []any{
		member.FullName,
		profileJSON,
		skillsJSON,
		member.MaxJobsPerDay,
		member.SeniorityLevel,
		timeOffJSON,
		member.IsActive,
		member.ID,
		member.Version,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&member.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteCrewMember(id int64) error {
	query := `DELETE FROM crew_members WHERE id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}
