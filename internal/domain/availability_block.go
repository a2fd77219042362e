package domain

import "time"

type BlockType string

const (
	BlockPersonal       BlockType = "personal"
	BlockMedical        BlockType = "medical"
	BlockFamily         BlockType = "family"
	BlockTraining       BlockType = "training"
	BlockPartialDay     BlockType = "partial-day"
	BlockRecurring      BlockType = "recurring"
	BlockSick           BlockType = "sick"
	BlockEmergency      BlockType = "emergency"
	BlockCalendarSynced BlockType = "calendar-synced"
)

type BlockStatus string

const (
	BlockActive    BlockStatus = "active"
	BlockCancelled BlockStatus = "cancelled"
)

// AvailabilityBlock is a recorded interval during which a technician is not
// available, distinct from the standing working-hours profile. Cancellation is
// a soft delete via Status.
type AvailabilityBlock struct {
	ID           int64      `json:"id"`
	ContractorID string     `json:"contractorID"`
	TechID       int64      `json:"techID"`
	Type         BlockType  `json:"type"`
	Title        string     `json:"title"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	// StartTime/EndTime are "HH:MM" clock times; absence of both means all day.
	StartTime   *string     `json:"startTime,omitempty"`
	EndTime     *string     `json:"endTime,omitempty"`
	IsRecurring bool        `json:"isRecurring"`
	// RecurrenceRule is stored verbatim but only weekly-by-weekday recurrence is
	// interpreted (the weekday of StartDate). Known limitation.
	RecurrenceRule string      `json:"recurrenceRule,omitempty"`
	Status         BlockStatus `json:"status"`
	CreatedAt      time.Time   `json:"createdAt"`
	Version        int32       `json:"-"`
}

// IsAllDay reports whether the block covers whole days.
func (b *AvailabilityBlock) IsAllDay() bool {
	return b.StartTime == nil && b.EndTime == nil
}

// AppliesOn reports whether an active block covers the given calendar day,
// either directly by date range or through its weekly recurrence.
func (b *AvailabilityBlock) AppliesOn(date time.Time) bool {
	if b.Status != BlockActive {
		return false
	}
	d := DateOnly(date)
	if !d.Before(DateOnly(b.StartDate)) && !d.After(DateOnly(b.EndDate)) {
		return true
	}
	if b.IsRecurring && d.After(DateOnly(b.StartDate)) {
		return d.Weekday() == DateOnly(b.StartDate).Weekday()
	}
	return false
}
