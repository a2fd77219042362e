package seed

import (
	"log/slog"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/repository"
)

var weekdayShift = domain.WorkingHoursEntry{Enabled: true, Start: "08:00", End: "17:00"}
var earlyShift = domain.WorkingHoursEntry{Enabled: true, Start: "06:00", End: "14:00"}

func weekdayProfile(shift domain.WorkingHoursEntry) domain.WorkingHoursProfile {
	return domain.WorkingHoursProfile{
		"monday":    shift,
		"tuesday":   shift,
		"wednesday": shift,
		"thursday":  shift,
		"friday":    shift,
		"saturday":  {Enabled: false},
		"sunday":    {Enabled: false},
	}
}

// SeedDemoData inserts a known roster, a handful of jobs, and some
// availability blocks so the suggestion and conflict endpoints have something
// to chew on straight after a fresh migration.
func SeedDemoData(r *repository.Repository, contractorID string) {
	roster := []*domain.CrewMember{
		{
			ContractorID:        contractorID,
			FullName:            "Frank Delgado",
			WorkingHoursProfile: weekdayProfile(weekdayShift),
			Skills:              []string{"hvac", "refrigeration"},
			MaxJobsPerDay:       3,
			SeniorityLevel:      domain.SeniorityMaster,
			IsActive:            true,
		},
		{
			ContractorID:        contractorID,
			FullName:            "Denise Walker",
			WorkingHoursProfile: weekdayProfile(weekdayShift),
			Skills:              []string{"plumbing", "pipefitting"},
			MaxJobsPerDay:       4,
			SeniorityLevel:      domain.SenioritySenior,
			IsActive:            true,
		},
		{
			ContractorID:        contractorID,
			FullName:            "Marcus Reed",
			WorkingHoursProfile: weekdayProfile(earlyShift),
			Skills:              []string{"electrical", "wiring"},
			MaxJobsPerDay:       3,
			SeniorityLevel:      domain.SeniorityJourneyman,
			IsActive:            true,
		},
		{
			ContractorID:        contractorID,
			FullName:            "Priya Natarajan",
			WorkingHoursProfile: weekdayProfile(weekdayShift),
			Skills:              []string{"hvac", "appliance-repair"},
			MaxJobsPerDay:       5,
			SeniorityLevel:      domain.SeniorityJunior,
			IsActive:            true,
		},
		{
			ContractorID:        contractorID,
			FullName:            "Tom Kowalski",
			WorkingHoursProfile: weekdayProfile(weekdayShift),
			Skills:              []string{"roofing", "carpentry"},
			MaxJobsPerDay:       2,
			SeniorityLevel:      domain.SeniorityApprentice,
			IsActive:            true,
		},
	}

	for _, member := range roster {
		if err := r.CreateCrewMember(member); err != nil {
			slog.Error("failed to insert crew member", "name", member.FullName, "error", err)
			continue
		}
	}

	// next Monday at 08:00 UTC so the seeded jobs land on working days
	start := domain.DateOnly(time.Now())
	for start.Weekday() != time.Monday {
		start = start.AddDate(0, 0, 1)
	}
	start = start.Add(8 * time.Hour)

	lat, lng := 30.2672, -97.7431
	jobs := []*domain.Job{
		{
			ContractorID:             contractorID,
			Title:                    "Rooftop unit replacement",
			Category:                 "hvac",
			EstimatedDurationMinutes: 960, // two full days
			ScheduledStart:           &start,
			RequiredCrewSize:         2,
			SiteLatitude:             &lat,
			SiteLongitude:            &lng,
			FieldStatus:              domain.StatusScheduled,
		},
		{
			ContractorID:             contractorID,
			Title:                    "Tankless water heater install",
			Category:                 "plumbing",
			EstimatedDurationMinutes: 300,
			ScheduledStart:           &start,
			RequiredCrewSize:         2,
			FieldStatus:              domain.StatusScheduled,
		},
		{
			ContractorID:             contractorID,
			Title:                    "Ceiling fan and outlet repair",
			Category:                 "electrical",
			EstimatedDurationMinutes: 90,
			ScheduledStart:           &start,
			RequiredCrewSize:         1,
			FieldStatus:              domain.StatusScheduled,
		},
	}

	for _, job := range jobs {
		if err := r.CreateJob(job); err != nil {
			slog.Error("failed to insert job", "title", job.Title, "error", err)
			continue
		}
	}

	if len(roster) > 0 && roster[0].ID != 0 {
		block := &domain.AvailabilityBlock{
			ContractorID: contractorID,
			TechID:       roster[0].ID,
			Type:         domain.BlockTraining,
			Title:        "EPA recertification",
			StartDate:    start.AddDate(0, 0, 2),
			EndDate:      start.AddDate(0, 0, 2),
			Status:       domain.BlockActive,
		}
		if err := r.CreateAvailabilityBlock(block); err != nil {
			slog.Error("failed to insert availability block", "error", err)
		}
	}

	slog.Info("demo data seeded", "crewMembers", len(roster), "jobs", len(jobs))
}
