package dto

import (
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignupInput struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=6,max=72"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Branch    string `json:"branch" binding:"required"`
	Role      string `json:"role" binding:"required"`

	// AccessCode is required for every role except Pre-med.
	AccessCode string `json:"access_code"`

	Specialty        string `json:"specialty"`
	City             string `json:"city"`
	State            string `json:"state"`
	MedicalSchool    string `json:"medical_school"`
	ResidencyProgram string `json:"residency_program"`
	UndergradSchool  string `json:"undergrad_school"`
}

type AuthResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int64      `json:"expires_in"`
	User        model.User `json:"user"`
	LandingView rbac.View  `json:"landing_view"`
}
