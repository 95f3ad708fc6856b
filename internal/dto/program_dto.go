package dto

import "github.com/bframe197/MilMedMatch/internal/model"

type ContactInput struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone" binding:"max=30"`
}

type CreateProgramInput struct {
	Name              string       `json:"name" binding:"required,max=150"`
	Branch            string       `json:"branch" binding:"required"`
	Specialty         string       `json:"specialty" binding:"required,max=100"`
	Location          string       `json:"location" binding:"required,max=150"`
	ResidentsPerClass int          `json:"residents_per_class" binding:"min=0"`
	ProgramDirector   ContactInput `json:"program_director" binding:"required"`
	Secretary         ContactInput `json:"secretary" binding:"required"`
	Strengths         []string     `json:"strengths"`
}

// UpdateProgramInput carries the full draft copy; the stored entry is
// replaced wholesale on save.
type UpdateProgramInput struct {
	Name              string                  `json:"name" binding:"required,max=150"`
	Location          string                  `json:"location" binding:"required,max=150"`
	ResidentsPerClass int                     `json:"residents_per_class" binding:"min=0"`
	ProgramDirector   ContactInput            `json:"program_director" binding:"required"`
	Secretary         ContactInput            `json:"secretary" binding:"required"`
	Strengths         []string                `json:"strengths"`
	Videos            []model.ProgramVideo    `json:"videos"`
	Residents         []model.ResidentProfile `json:"residents"`
}

type ResidentProfileInput struct {
	Name      string `json:"name" binding:"required,max=100"`
	School    string `json:"school" binding:"max=150"`
	Interests string `json:"interests" binding:"max=500"`
	ImageURL  string `json:"image_url"`
	PGYYear   int    `json:"pgy_year" binding:"min=1,max=10"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type ProgramSearchHit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Branch    string `json:"branch"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
}
