package domain

import "time"

// DaySegment is one calendar day's worth of scheduled work within a job.
// Start and End are "HH:MM" clock times on Date.
type DaySegment struct {
	Date            time.Time `json:"date"`
	DayNumber       int       `json:"dayNumber"` // 1-based within the job
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	IsComplete      bool      `json:"isComplete"` // true on the final segment
}

// MultiDaySchedule is the canonical derived schedule stored on the job.
// It is recomputed whenever the duration or start date changes.
type MultiDaySchedule struct {
	Segments  []DaySegment `json:"segments"`
	TotalDays int          `json:"totalDays"`
	// Truncated marks a schedule cut off by the working-day safety limit.
	// The remaining minutes were dropped and a warning surfaced, not an error.
	Truncated bool `json:"truncated,omitempty"`
}

// IsMultiDay reports whether the job spans more than one working day.
func (s *MultiDaySchedule) IsMultiDay() bool {
	return s != nil && len(s.Segments) > 1
}
