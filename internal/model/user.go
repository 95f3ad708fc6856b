package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the display name of a user role. The display string is load-bearing:
// the monthly access code is seeded from it, so values must not be renamed.
type Role string

const (
	RolePreMed         Role = "Pre-med"
	RoleMedicalStudent Role = "Medical Student"
	RoleResident       Role = "Resident"
	RoleFaculty        Role = "Faculty"
	RoleAdministrator  Role = "Administrator"
	RoleRecruiter      Role = "Recruiter"
)

// AllRoles lists every role in portal display order.
var AllRoles = []Role{
	RolePreMed,
	RoleMedicalStudent,
	RoleResident,
	RoleFaculty,
	RoleAdministrator,
	RoleRecruiter,
}

func (r Role) Valid() bool {
	switch r {
	case RolePreMed, RoleMedicalStudent, RoleResident, RoleFaculty, RoleAdministrator, RoleRecruiter:
		return true
	}
	return false
}

type Branch string

const (
	BranchArmy      Branch = "Army"
	BranchNavy      Branch = "Navy"
	BranchAirForce  Branch = "Air Force"
	BranchUndecided Branch = "Undecided"
)

func (b Branch) Valid() bool {
	switch b {
	case BranchArmy, BranchNavy, BranchAirForce, BranchUndecided:
		return true
	}
	return false
}

// Normalized resolves Undecided to Army, the display default for every role
// past the Pre-med stage.
func (b Branch) Normalized() Branch {
	if b == BranchUndecided {
		return BranchArmy
	}
	return b
}

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Notification belongs to exactly one user's list, newest first.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	CreatedAt time.Time        `json:"created_at"`
	Read      bool             `json:"read"`
}

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Branch       Branch    `json:"branch"`
	Role         Role      `json:"role"`
	Specialty    string    `json:"specialty,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
	// Exactly one of the three school fields is relevant per role; the
	// profile service blanks the others on edit.
	MedicalSchool    string         `json:"medical_school,omitempty"`
	ResidencyProgram string         `json:"residency_program,omitempty"`
	UndergradSchool  string         `json:"undergrad_school,omitempty"`
	ProfileImageURL  string         `json:"profile_image_url,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	Notifications    []Notification `json:"notifications"`
}

// Clone returns a deep copy so callers can mutate drafts without touching
// the stored snapshot.
func (u User) Clone() User {
	out := u
	out.Notifications = make([]Notification, len(u.Notifications))
	copy(out.Notifications, u.Notifications)
	return out
}

// MatchDeadline is one entry of the administrator-curated match timeline.
type MatchDeadline struct {
	ID          string `json:"id"`
	Event       string `json:"event"`
	Date        string `json:"date"`
	Description string `json:"description"`
}
