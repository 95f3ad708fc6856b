// Package bootstrap seeds the store with the initial catalog, specialty
// list, match timeline, and (in development) an administrator account.
package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/store"
)

// Specialties is the fixed GME specialty list shown to applicants.
var Specialties = []string{
	"Anesthesiology",
	"Child Neurology",
	"Emergency Medicine",
	"Family Medicine",
	"General Surgery",
	"GS Urology",
	"Internal Medicine",
	"Internal Medicine/Psychiatry",
	"Neurology",
	"Neurosurgery",
	"OB-GYN",
	"Orthopaedics",
	"Otolaryngology",
	"Pathology",
	"Pediatrics",
	"Plastic Surgery",
	"Prelim Aerospace Medicine",
	"Prelim Dermatology",
	"Prelim Interventional Radiology",
	"Prelim Occupational Medicine",
	"Prelim Ophthalmology",
	"Prelim Physical Medicine",
	"Prelim Preventive Medicine",
	"Prelim Radiation Oncology",
	"Prelim Radiology(DIAG)",
	"Psychiatry",
	"Transitional",
	"Vascular Surgery",
}

// InitialDefaultImage is the placeholder cover shown until an administrator
// regenerates it.
const InitialDefaultImage = "https://images.unsplash.com/photo-1508674861872-a51e06c50c9b?auto=format&fit=crop&q=80&w=1200"

type seedProgram struct {
	name              string
	location          string
	specialty         string
	residentsPerClass int
}

var seedPrograms = []seedProgram{
	{"SAUSHEC", "San Antonio, TX", "Anesthesiology", 12},
	{"SAUSHEC", "San Antonio, TX", "Emergency Medicine", 14},
	{"SAUSHEC", "San Antonio, TX", "General Surgery", 10},
	{"SAUSHEC", "San Antonio, TX", "Internal Medicine", 25},
	{"SAUSHEC", "San Antonio, TX", "OB-GYN", 8},
	{"SAUSHEC", "San Antonio, TX", "Orthopaedics", 8},
	{"SAUSHEC", "San Antonio, TX", "Psychiatry", 10},
	{"SAUSHEC", "San Antonio, TX", "Transitional", 15},
	{"NCC WRNMMC", "Bethesda, MD", "Anesthesiology", 10},
	{"NCC WRNMMC", "Bethesda, MD", "Emergency Medicine", 12},
	{"NCC WRNMMC", "Bethesda, MD", "Internal Medicine", 22},
	{"NCC WRNMMC", "Bethesda, MD", "General Surgery", 8},
	{"NCC WRNMMC", "Bethesda, MD", "Pathology", 4},
	{"NCC WRNMMC", "Bethesda, MD", "Pediatrics", 12},
	{"Madigan Army Medical Center", "JBLM, WA", "Emergency Medicine", 12},
	{"Madigan Army Medical Center", "JBLM, WA", "Family Medicine", 10},
	{"Madigan Army Medical Center", "JBLM, WA", "Child Neurology", 2},
	{"Madigan Army Medical Center", "JBLM, WA", "Vascular Surgery", 2},
	{"Eisenhower Army Medical Center", "Fort Eisenhower, GA", "Family Medicine", 8},
	{"Eisenhower Army Medical Center", "Fort Eisenhower, GA", "Internal Medicine", 12},
	{"Tripler Army Medical Center", "Honolulu, HI", "GS Urology", 2},
	{"Tripler Army Medical Center", "Honolulu, HI", "Psychiatry", 6},
	{"William Beaumont Army Medical Center", "El Paso, TX", "Orthopaedics", 6},
	{"William Beaumont Army Medical Center", "El Paso, TX", "Transitional", 8},
	{"Womack Army Medical Center", "Fort Liberty, NC", "Emergency Medicine", 8},
	{"Womack Army Medical Center", "Fort Liberty, NC", "Pediatrics", 6},
	{"Carl R. Darnall Army Medical Center", "Fort Cavazos, TX", "Emergency Medicine", 8},
	{"Carl R. Darnall Army Medical Center", "Fort Cavazos, TX", "Family Medicine", 10},
	{"Martin Army Community Hospital", "Fort Moore, GA", "Family Medicine", 10},
}

func seedContact(role, loc string) model.ProgramContact {
	email := strings.ToLower(strings.ReplaceAll(role, " ", ".")) + "." + strings.ToLower(strings.Fields(loc)[0])
	return model.ProgramContact{
		Name:  "COL " + role + " Director",
		Email: email + "@health.mil",
		Phone: "(555) 555-0199",
	}
}

// SeedPrograms loads the Army GME catalog.
func SeedPrograms(s *store.Store) error {
	for _, sp := range seedPrograms {
		p := model.ResidencyProgram{
			ID:                model.ProgramID(sp.name, sp.specialty),
			Name:              sp.name,
			Branch:            model.BranchArmy,
			Specialty:         sp.specialty,
			Location:          sp.location,
			ResidentsPerClass: sp.residentsPerClass,
			ProgramDirector:   seedContact(sp.specialty, sp.name),
			Secretary:         seedContact("Admin", sp.name),
			Strengths:         []string{"Academic Excellence", "Clinical Volume", "Military Integration"},
			Videos:            []model.ProgramVideo{},
			Residents:         []model.ResidentProfile{},
		}
		if err := s.AppendProgram(p); err != nil {
			return fmt.Errorf("seed program %q: %w", p.ID, err)
		}
	}
	s.SetDefaultImage(InitialDefaultImage)
	return nil
}

// SeedDeadlines loads the initial MODS cycle timeline.
func SeedDeadlines(s *store.Store) {
	s.ReplaceDeadlines([]model.MatchDeadline{
		{ID: "1", Event: "MODS Applications Open", Date: "2026-07-01", Description: "GME application system (MODS) opens for new cycles."},
		{ID: "2", Event: "Personal Statements Due", Date: "2026-08-31", Description: "Internal recommendation for final draft submission."},
		{ID: "3", Event: "Official GME Application Deadline", Date: "2026-10-15", Description: "Final date to submit all materials in MODS."},
		{ID: "4", Event: "Joint GME Selection Board", Date: "2026-11-15", Description: "Military selection boards convene to review candidates."},
		{ID: "5", Event: "Military Match Results Released", Date: "2026-12-18", Description: "Match results are distributed to all services."},
	})
}

// SeedAdminUser creates a development administrator account when none
// exists yet.
func SeedAdminUser(s *store.Store, logger *slog.Logger) error {
	if _, err := s.FindUserByUsername("admin"); err == nil {
		logger.Info("admin user already exists, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.User{
		ID:            uuid.New(),
		Username:      "admin",
		FirstName:     "System",
		LastName:      "Administrator",
		Email:         "admin@milmedmatch.mil",
		PasswordHash:  string(hash),
		Branch:        model.BranchArmy,
		Role:          model.RoleAdministrator,
		Notifications: []model.Notification{},
	}
	if err := s.AppendUser(admin); err != nil {
		return err
	}
	logger.Info("seeded development admin user", "username", "admin")
	return nil
}
