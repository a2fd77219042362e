package crew

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

// 2026-03-02 is a Monday.
var monday = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

func member(id int64, name string, skills []string, seniority domain.SeniorityLevel) *domain.CrewMember {
	return &domain.CrewMember{
		ID:             id,
		FullName:       name,
		Skills:         skills,
		MaxJobsPerDay:  3,
		SeniorityLevel: seniority,
		IsActive:       true,
	}
}

func TestSuggestPicksLeadAndHelperForComplexJob(t *testing.T) {
	job := &domain.Job{
		Category:                 "hvac",
		EstimatedDurationMinutes: 300, // 5 hours, complex, suggested crew of 2
		ScheduledStart:           &monday,
	}

	directory := []*domain.CrewMember{
		member(1, "No Skill", []string{"landscaping"}, domain.SeniorityJunior),
		member(2, "Master Fit", []string{"hvac"}, domain.SeniorityMaster),
		member(3, "Junior Fit", []string{"hvac"}, domain.SeniorityJunior),
	}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, directory, nil)

	require.Len(t, suggestion.Crew, 2)
	assert.Equal(t, domain.ComplexityComplex, suggestion.Sizing.Complexity)
	assert.Equal(t, int64(2), suggestion.Crew[0].TechID)
	assert.Equal(t, domain.RoleLead, suggestion.Crew[0].Role)
	assert.Equal(t, int64(3), suggestion.Crew[1].TechID)
	assert.Equal(t, domain.RoleHelper, suggestion.Crew[1].Role)

	require.Len(t, suggestion.Alternatives, 1)
	assert.Equal(t, int64(1), suggestion.Alternatives[0].Member.ID)
}

func TestSuggestScoringComponents(t *testing.T) {
	preferredID := int64(2)
	job := &domain.Job{
		Category:                 "plumbing",
		EstimatedDurationMinutes: 60,
		ScheduledStart:           &monday,
		PreferredTechnicianID:    &preferredID,
	}

	directory := []*domain.CrewMember{
		member(1, "Skilled Senior", []string{"plumbing"}, domain.SenioritySenior),
		member(2, "Preferred Unskilled", []string{"roofing"}, domain.SeniorityJunior),
	}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, directory, nil)

	require.Len(t, suggestion.Selected, 1)
	// skill 50 + seniority 20 + load 30 = 100 beats preferred 40 + load 30 = 70
	assert.Equal(t, int64(1), suggestion.Selected[0].Member.ID)
	assert.InDelta(t, 100.0, suggestion.Selected[0].Score, 0.001)
	require.Len(t, suggestion.Alternatives, 1)
	assert.InDelta(t, 70.0, suggestion.Alternatives[0].Score, 0.001)
}

func TestSuggestUnmappedCategoryGrantsSkillBonus(t *testing.T) {
	job := &domain.Job{
		Category:                 "chimney-sweeping",
		EstimatedDurationMinutes: 60,
		ScheduledStart:           &monday,
	}

	directory := []*domain.CrewMember{member(1, "Anyone", nil, domain.SeniorityJunior)}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, directory, nil)

	require.Len(t, suggestion.Selected, 1)
	assert.InDelta(t, 80.0, suggestion.Selected[0].Score, 0.001) // 50 skill + 30 load
}

func TestSuggestSkipsMembersAtCapacity(t *testing.T) {
	job := &domain.Job{
		Category:                 "hvac",
		EstimatedDurationMinutes: 60,
		ScheduledStart:           &monday,
	}

	busy := member(1, "Busy", []string{"hvac"}, domain.SeniorityMaster)
	busy.MaxJobsPerDay = 1
	free := member(2, "Free", []string{"hvac"}, domain.SeniorityJunior)

	existing := []*domain.Job{{
		ID:             9,
		AssignedCrew:   []domain.CrewAssignment{{TechID: 1, Role: domain.RoleLead}},
		ScheduledStart: &monday,
	}}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, []*domain.CrewMember{busy, free}, existing)

	require.Len(t, suggestion.Selected, 1)
	assert.Equal(t, int64(2), suggestion.Selected[0].Member.ID)
}

func TestSuggestIgnoresCancelledJobsForLoad(t *testing.T) {
	job := &domain.Job{
		Category:                 "hvac",
		EstimatedDurationMinutes: 60,
		ScheduledStart:           &monday,
	}

	busy := member(1, "Busy", []string{"hvac"}, domain.SeniorityMaster)
	busy.MaxJobsPerDay = 1

	cancelled := []*domain.Job{{
		ID:             9,
		AssignedCrew:   []domain.CrewAssignment{{TechID: 1, Role: domain.RoleLead}},
		ScheduledStart: &monday,
		FieldStatus:    domain.StatusCancelled,
	}}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, []*domain.CrewMember{busy}, cancelled)

	require.Len(t, suggestion.Selected, 1)
	assert.Equal(t, 0, suggestion.Selected[0].JobsToday)
}

func TestSuggestTieKeepsDirectoryOrder(t *testing.T) {
	job := &domain.Job{
		Category:                 "hvac",
		EstimatedDurationMinutes: 60,
		ScheduledStart:           &monday,
	}

	directory := []*domain.CrewMember{
		member(10, "First Twin", []string{"hvac"}, domain.SeniorityJunior),
		member(20, "Second Twin", []string{"hvac"}, domain.SeniorityJunior),
	}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, directory, nil)

	require.Len(t, suggestion.Selected, 1)
	assert.Equal(t, int64(10), suggestion.Selected[0].Member.ID)
}

func TestSuggestEmptyPoolSetsReason(t *testing.T) {
	job := &domain.Job{
		Category:                 "hvac",
		EstimatedDurationMinutes: 60,
		ScheduledStart:           &monday,
	}

	offMonday := member(1, "Weekender", []string{"hvac"}, domain.SeniorityMaster)
	offMonday.WorkingHoursProfile = domain.WorkingHoursProfile{"monday": {Enabled: false}}

	suggestion := NewScorer(DefaultSkillMatrix(), 3).Suggest(job, monday, []*domain.CrewMember{offMonday}, nil)

	assert.Empty(t, suggestion.Crew)
	assert.NotEmpty(t, suggestion.Reason)
}

func TestClassifyComplexity(t *testing.T) {
	assert.Equal(t, domain.ComplexitySimple, ClassifyComplexity(90))
	assert.Equal(t, domain.ComplexityModerate, ClassifyComplexity(120))
	assert.Equal(t, domain.ComplexityComplex, ClassifyComplexity(300))
	assert.Equal(t, domain.ComplexityMajor, ClassifyComplexity(480))
}

func TestJobSizingExplicitLabelOverridesDuration(t *testing.T) {
	job := &domain.Job{
		EstimatedDurationMinutes: 60, // would classify simple
		Complexity:               domain.ComplexityMajor,
	}

	sizing := JobSizing(job)
	assert.Equal(t, domain.ComplexityMajor, sizing.Complexity)
	assert.Equal(t, 3, sizing.Suggested)
	assert.Equal(t, 6, sizing.Max)
}

func TestNormalizeLead(t *testing.T) {
	t.Run("promotes first member when no lead", func(t *testing.T) {
		crew := NormalizeLead([]domain.CrewAssignment{
			{TechID: 1, Role: domain.RoleHelper},
			{TechID: 2, Role: domain.RoleApprentice},
		})
		assert.Equal(t, domain.RoleLead, crew[0].Role)
		assert.Equal(t, domain.RoleApprentice, crew[1].Role)
	})

	t.Run("demotes extra leads to helper", func(t *testing.T) {
		crew := NormalizeLead([]domain.CrewAssignment{
			{TechID: 1, Role: domain.RoleHelper},
			{TechID: 2, Role: domain.RoleLead},
			{TechID: 3, Role: domain.RoleLead},
		})
		assert.Equal(t, domain.RoleHelper, crew[0].Role)
		assert.Equal(t, domain.RoleLead, crew[1].Role)
		assert.Equal(t, domain.RoleHelper, crew[2].Role)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		original := []domain.CrewAssignment{{TechID: 1, Role: domain.RoleHelper}}
		NormalizeLead(original)
		assert.Equal(t, domain.RoleHelper, original[0].Role)
	})

	t.Run("empty crew stays empty", func(t *testing.T) {
		assert.Empty(t, NormalizeLead(nil))
	})
}
