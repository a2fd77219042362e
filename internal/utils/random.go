package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/fieldpulse-dev/crew-dispatch/backend/internal/domain"
)

var commonFirstNames = []string{
	"James", "Maria", "Robert", "Linda", "Michael", "Sarah", "David", "Karen",
	"Carlos", "Nancy", "Kevin", "Lisa", "Brian", "Sandra", "Jason", "Ashley",
	"Eric", "Emily", "Tyler", "Monica", "Derek", "Angela", "Luis", "Rachel",
}
var commonLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

var seniorityLevels = []domain.SeniorityLevel{
	domain.SeniorityApprentice,
	domain.SeniorityJunior,
	domain.SeniorityJourneyman,
	domain.SenioritySenior,
	domain.SeniorityMaster,
}

func GenerateRandomSeniority() domain.SeniorityLevel {
	return seniorityLevels[rand.Intn(len(seniorityLevels))]
}

var tradeSkills = []string{
	"hvac", "refrigeration", "plumbing", "pipefitting", "electrical",
	"wiring", "roofing", "carpentry", "landscaping", "appliance-repair",
}

// GenerateRandomSkills draws a random subset via Fisher-Yates so every
// technician carries at least one trade.
func GenerateRandomSkills() []string {
	skills := append([]string{}, tradeSkills...)
	for i := len(skills) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		skills[i], skills[j] = skills[j], skills[i]
	}

	n := rand.Intn(3) + 1
	return skills[:n]
}

// GenerateRandomWorkingHours builds a Monday-through-Friday profile with a
// random shift start, plus a coin flip for Saturday coverage.
func GenerateRandomWorkingHours() domain.WorkingHoursProfile {
	startHour := rand.Intn(3) + 6 // 06:00 to 08:00
	endHour := startHour + 8 + rand.Intn(3)

	entry := domain.WorkingHoursEntry{
		Enabled: true,
		Start:   fmt.Sprintf("%02d:00", startHour),
		End:     fmt.Sprintf("%02d:00", endHour),
	}

	profile := domain.WorkingHoursProfile{
		"monday":    entry,
		"tuesday":   entry,
		"wednesday": entry,
		"thursday":  entry,
		"friday":    entry,
		"saturday":  {Enabled: false},
		"sunday":    {Enabled: false},
	}
	if rand.Intn(2) == 0 {
		profile["saturday"] = domain.WorkingHoursEntry{Enabled: true, Start: "08:00", End: "14:00"}
	}

	return profile
}

func GenerateRandomCrewMember(contractorID string) *domain.CrewMember {
	return &domain.CrewMember{
		ContractorID:        contractorID,
		FullName:            GenerateRandomFullName(),
		WorkingHoursProfile: GenerateRandomWorkingHours(),
		Skills:              GenerateRandomSkills(),
		MaxJobsPerDay:       rand.Intn(3) + 2,
		SeniorityLevel:      GenerateRandomSeniority(),
		IsActive:            true,
	}
}

var jobTitles = []string{
	"Furnace replacement", "AC condenser install", "Water heater swap",
	"Panel upgrade", "Roof leak repair", "Sewer line replacement",
	"Ductwork rework", "Generator install", "Bathroom repipe",
	"Irrigation overhaul",
}
var jobCategories = []string{
	"hvac", "plumbing", "electrical", "roofing", "landscaping", "appliance",
}

func GenerateRandomJob(contractorID string) *domain.Job {
	start := time.Now().AddDate(0, 0, rand.Intn(14)+1)
	start = time.Date(start.Year(), start.Month(), start.Day(), 8, 0, 0, 0, time.UTC)

	return &domain.Job{
		ContractorID:             contractorID,
		Title:                    jobTitles[rand.Intn(len(jobTitles))],
		Category:                 jobCategories[rand.Intn(len(jobCategories))],
		EstimatedDurationMinutes: (rand.Intn(24) + 1) * 60,
		ScheduledStart:           &start,
		RequiredCrewSize:         rand.Intn(3) + 1,
		FieldStatus:              domain.StatusScheduled,
	}
}

var blockTypes = []domain.BlockType{
	domain.BlockPersonal,
	domain.BlockMedical,
	domain.BlockFamily,
	domain.BlockTraining,
}

func GenerateRandomAvailabilityBlock(contractorID string, techID int64) *domain.AvailabilityBlock {
	start := time.Now().AddDate(0, 0, rand.Intn(21)+1)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, rand.Intn(3))

	return &domain.AvailabilityBlock{
		ContractorID: contractorID,
		TechID:       techID,
		Type:         blockTypes[rand.Intn(len(blockTypes))],
		Title:        "Seeded time off",
		StartDate:    start,
		EndDate:      end,
		Status:       domain.BlockActive,
	}
}
