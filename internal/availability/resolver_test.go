package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

// 2026-03-02 is a Monday.
var (
	monday   = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)
)

func weekdayMember(id int64) *domain.CrewMember {
	entry := domain.WorkingHoursEntry{Enabled: true, Start: "08:00", End: "17:00"}
	return &domain.CrewMember{
		ID:       id,
		FullName: "Test Tech",
		WorkingHoursProfile: domain.WorkingHoursProfile{
			"monday":    entry,
			"tuesday":   entry,
			"wednesday": entry,
			"thursday":  entry,
			"friday":    entry,
			"saturday":  {Enabled: false},
			"sunday":    {Enabled: false},
		},
		IsActive: true,
	}
}

func clockPtr(s string) *string { return &s }

func TestResolveDayBlocksOnDayOff(t *testing.T) {
	verdict := ResolveDay(weekdayMember(1), saturday, nil, nil, nil)

	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonDayOff, verdict.BlockingReason)
}

func TestResolveDayBlocksOnTimeOff(t *testing.T) {
	member := weekdayMember(1)
	member.TimeOff = []domain.DateRange{{StartDate: monday, EndDate: monday.AddDate(0, 0, 4)}}

	verdict := ResolveDay(member, monday.AddDate(0, 0, 2), nil, nil, nil)

	assert.False(t, verdict.Available)
	assert.Equal(t, ReasonTimeOff, verdict.BlockingReason)
}

func TestResolveDayBlocksOnAllDayBlock(t *testing.T) {
	member := weekdayMember(1)
	blocks := []*domain.AvailabilityBlock{{
		TechID:    1,
		Type:      domain.BlockMedical,
		Title:     "Surgery recovery",
		StartDate: monday,
		EndDate:   monday,
		Status:    domain.BlockActive,
	}}

	verdict := ResolveDay(member, monday, nil, blocks, nil)

	assert.False(t, verdict.Available)
	assert.Equal(t, "Surgery recovery", verdict.BlockingReason)
}

func TestResolveDayIgnoresOtherTechsBlocks(t *testing.T) {
	blocks := []*domain.AvailabilityBlock{{
		TechID:    99,
		StartDate: monday,
		EndDate:   monday,
		Status:    domain.BlockActive,
	}}

	verdict := ResolveDay(weekdayMember(1), monday, nil, blocks, nil)

	assert.True(t, verdict.Available)
}

func TestResolveDayIgnoresCancelledBlocks(t *testing.T) {
	blocks := []*domain.AvailabilityBlock{{
		TechID:    1,
		StartDate: monday,
		EndDate:   monday,
		Status:    domain.BlockCancelled,
	}}

	verdict := ResolveDay(weekdayMember(1), monday, nil, blocks, nil)

	assert.True(t, verdict.Available)
}

func TestResolveDayRecurringBlockCoversLaterWeeks(t *testing.T) {
	blocks := []*domain.AvailabilityBlock{{
		TechID:         1,
		Type:           domain.BlockRecurring,
		StartDate:      monday,
		EndDate:        monday,
		IsRecurring:    true,
		RecurrenceRule: "weekly",
		Status:         domain.BlockActive,
	}}

	threeWeeksOut := monday.AddDate(0, 0, 21)
	verdict := ResolveDay(weekdayMember(1), threeWeeksOut, nil, blocks, nil)

	assert.False(t, verdict.Available)

	// different weekday, not covered
	verdict = ResolveDay(weekdayMember(1), threeWeeksOut.AddDate(0, 0, 1), nil, blocks, nil)
	assert.True(t, verdict.Available)
}

func TestResolveDayTimedBlockAgainstWindow(t *testing.T) {
	blocks := []*domain.AvailabilityBlock{{
		TechID:    1,
		Type:      domain.BlockPartialDay,
		StartDate: monday,
		EndDate:   monday,
		StartTime: clockPtr("13:00"),
		EndTime:   clockPtr("15:00"),
		Status:    domain.BlockActive,
	}}

	// overlapping work window blocks the day
	verdict := ResolveDay(weekdayMember(1), monday, &Window{Start: clockPtr("14:00"), End: clockPtr("17:00")}, blocks, nil)
	assert.False(t, verdict.Available)

	// back-to-back windows do not overlap, and a disjoint block is not
	// reported as overlapping either
	verdict = ResolveDay(weekdayMember(1), monday, &Window{Start: clockPtr("15:00"), End: clockPtr("17:00")}, blocks, nil)
	assert.True(t, verdict.Available)
	assert.Empty(t, verdict.OverlappingBlocks)

	// no window requested: the timed block is annotated, not blocking
	verdict = ResolveDay(weekdayMember(1), monday, nil, blocks, nil)
	assert.True(t, verdict.Available)
	require.Len(t, verdict.OverlappingBlocks, 1)
}

func TestResolveDayReportsOverlappingJobs(t *testing.T) {
	techID := int64(1)
	start := monday.Add(9 * time.Hour)
	jobs := []*domain.Job{{
		ID:                       7,
		AssignedCrew:             []domain.CrewAssignment{{TechID: techID, Role: domain.RoleLead}},
		ScheduledStart:           &start,
		EstimatedDurationMinutes: 120, // 09:00-11:00
	}}

	verdict := ResolveDay(weekdayMember(techID), monday, &Window{Start: clockPtr("10:00"), End: clockPtr("12:00")}, nil, jobs)
	assert.True(t, verdict.Available)
	require.Len(t, verdict.OverlappingJobs, 1)
	assert.Equal(t, int64(7), verdict.OverlappingJobs[0].ID)

	// disjoint window on the same day
	verdict = ResolveDay(weekdayMember(techID), monday, &Window{Start: clockPtr("13:00"), End: clockPtr("15:00")}, nil, jobs)
	assert.Empty(t, verdict.OverlappingJobs)
}

func TestResolveDaySeesLegacySingleTechnician(t *testing.T) {
	techID := int64(4)
	start := monday.Add(9 * time.Hour)
	jobs := []*domain.Job{{
		ID:                       11,
		AssignedTechnicianID:     &techID,
		ScheduledStart:           &start,
		EstimatedDurationMinutes: 60,
	}}

	verdict := ResolveDay(weekdayMember(techID), monday, nil, nil, jobs)
	require.Len(t, verdict.OverlappingJobs, 1)
}

func TestResolveCrewSummaries(t *testing.T) {
	available := weekdayMember(1)
	offOnDayTwo := weekdayMember(2)
	offOnDayTwo.TimeOff = []domain.DateRange{{StartDate: monday.AddDate(0, 0, 1), EndDate: monday.AddDate(0, 0, 1)}}

	segments := []domain.DaySegment{
		{Date: monday, DayNumber: 1, StartTime: "08:00", EndTime: "16:00", DurationMinutes: 480},
		{Date: monday.AddDate(0, 0, 1), DayNumber: 2, StartTime: "08:00", EndTime: "10:00", DurationMinutes: 120, IsComplete: true},
	}

	summaries := ResolveCrew([]*domain.CrewMember{available, offOnDayTwo}, segments, nil, nil)

	require.Len(t, summaries, 2)
	assert.Equal(t, int64(1), summaries[0].TechID)
	assert.Equal(t, 2, summaries[0].AvailableDayCount)
	assert.Empty(t, summaries[0].UnavailableDays)

	assert.Equal(t, int64(2), summaries[1].TechID)
	assert.Equal(t, 1, summaries[1].AvailableDayCount)
	require.Len(t, summaries[1].UnavailableDays, 1)
	assert.Equal(t, monday.AddDate(0, 0, 1).Format("2006-01-02"), summaries[1].UnavailableDays[0])
	assert.Equal(t, ReasonTimeOff, summaries[1].Reasons[0])
}
