package domain

import "time"

type SeniorityLevel string

const (
	SeniorityApprentice SeniorityLevel = "apprentice"
	SeniorityJunior     SeniorityLevel = "junior"
	SeniorityJourneyman SeniorityLevel = "journeyman"
	SenioritySenior     SeniorityLevel = "senior"
	SeniorityMaster     SeniorityLevel = "master"
)

// IsSeniorOrAbove reports whether the level counts for the seniority scoring bonus.
func (s SeniorityLevel) IsSeniorOrAbove() bool {
	return s == SenioritySenior || s == SeniorityMaster
}

// WorkingHoursEntry is one weekday of a technician's standing schedule.
// Start and End are "HH:MM" clock times.
type WorkingHoursEntry struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// WorkingHoursProfile maps lowercase weekday names ("monday", ...) to entries.
// A missing weekday is treated as a default working day, not a day off.
type WorkingHoursProfile map[string]WorkingHoursEntry

// WeekdayKey returns the profile key for a weekday.
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// Entry looks up the entry for a weekday. The second return value reports
// whether the profile actually contains that weekday.
func (p WorkingHoursProfile) Entry(d time.Weekday) (WorkingHoursEntry, bool) {
	if p == nil {
		return WorkingHoursEntry{}, false
	}
	e, ok := p[WeekdayKey(d)]
	return e, ok
}

// WorksOn reports whether the technician works on the given weekday.
// Missing entries count as working days; only an explicit enabled=false is a day off.
func (p WorkingHoursProfile) WorksOn(d time.Weekday) bool {
	e, ok := p.Entry(d)
	if !ok {
		return true
	}
	return e.Enabled
}

type DateRange struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Contains reports whether the date (compared by calendar day) falls in the range.
func (r DateRange) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(r.StartDate)) && !d.After(DateOnly(r.EndDate))
}

type CrewMember struct {
	ID                  int64               `json:"id"`
	ContractorID        string              `json:"contractorID"`
	FullName            string              `json:"fullName"`
	WorkingHoursProfile WorkingHoursProfile `json:"workingHoursProfile"`
	Skills              []string            `json:"skills"`
	MaxJobsPerDay       int                 `json:"maxJobsPerDay"`
	SeniorityLevel      SeniorityLevel      `json:"seniorityLevel"`
	TimeOff             []DateRange         `json:"timeOff"`
	IsActive            bool                `json:"isActive"`
	CreatedAt           time.Time           `json:"createdAt"`
	Version             int32               `json:"-"`
}

// HasSkill reports whether the member has any of the wanted skills.
func (m *CrewMember) HasSkill(wanted []string) bool {
	for _, w := range wanted {
		for _, s := range m.Skills {
			if s == w {
				return true
			}
		}
	}
	return false
}

// OnTimeOff reports whether the date falls inside any recorded time-off range.
func (m *CrewMember) OnTimeOff(date time.Time) bool {
	for _, r := range m.TimeOff {
		if r.Contains(date) {
			return true
		}
	}
	return false
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
