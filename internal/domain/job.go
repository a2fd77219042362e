package domain

import "time"

type CrewRole string

const (
	RoleLead       CrewRole = "lead"
	RoleHelper     CrewRole = "helper"
	RoleApprentice CrewRole = "apprentice"
	RoleSpecialist CrewRole = "specialist"
)

type JobComplexity string

const (
	ComplexitySimple   JobComplexity = "simple"
	ComplexityModerate JobComplexity = "moderate"
	ComplexityComplex  JobComplexity = "complex"
	ComplexityMajor    JobComplexity = "major"
)

type CrewAssignment struct {
	TechID    int64    `json:"techID"`
	Role      CrewRole `json:"role"`
	VehicleID *string  `json:"vehicleID,omitempty"`
}

type Job struct {
	ID                       int64            `json:"id"`
	ContractorID             string           `json:"contractorID"`
	Title                    string           `json:"title"`
	Category                 string           `json:"category"`
	EstimatedDurationMinutes int              `json:"estimatedDurationMinutes"`
	Complexity               JobComplexity    `json:"complexity,omitempty"` // optional explicit label, overrides duration
	ScheduledStart           *time.Time       `json:"scheduledStart"`
	MultiDaySchedule         *MultiDaySchedule `json:"multiDaySchedule,omitempty"`
	AssignedCrew             []CrewAssignment `json:"assignedCrew"`
	// AssignedTechnicianID is the legacy single-technician field still present on
	// older job records. Read it through Crew(), never directly.
	AssignedTechnicianID  *int64      `json:"assignedTechnicianID,omitempty"`
	RequiredCrewSize      int         `json:"requiredCrewSize"`
	PreferredTechnicianID *int64      `json:"preferredTechnicianID,omitempty"`
	SiteLatitude          *float64    `json:"siteLatitude,omitempty"`
	SiteLongitude         *float64    `json:"siteLongitude,omitempty"`
	FieldStatus           FieldStatus `json:"fieldStatus"`
	LiveETA               *time.Time  `json:"liveETA,omitempty"`
	CreatedAt             time.Time   `json:"createdAt"`
	Version               int32       `json:"-"`
}

// Crew adapts the legacy single-technician representation to the crew list, so
// every consumer sees exactly one shape. A legacy technician becomes a
// one-element crew with role lead.
func (j *Job) Crew() []CrewAssignment {
	if len(j.AssignedCrew) > 0 {
		return j.AssignedCrew
	}
	if j.AssignedTechnicianID != nil {
		return []CrewAssignment{{TechID: *j.AssignedTechnicianID, Role: RoleLead}}
	}
	return nil
}

// OccupiesDate reports whether any part of the job's schedule falls on the
// given calendar day. Jobs with a multi-day schedule occupy each segment day;
// otherwise the scheduled start day alone.
func (j *Job) OccupiesDate(date time.Time) bool {
	d := DateOnly(date)
	if j.MultiDaySchedule != nil {
		for _, seg := range j.MultiDaySchedule.Segments {
			if DateOnly(seg.Date).Equal(d) {
				return true
			}
		}
		return false
	}
	if j.ScheduledStart == nil {
		return false
	}
	return DateOnly(*j.ScheduledStart).Equal(d)
}
