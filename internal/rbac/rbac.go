// Package rbac holds the single capability table that maps a role to what
// it may see and do. Handlers and services consult this table instead of
// re-deriving role conditionals inline.
package rbac

import "github.com/bframe197/MilMedMatch/internal/model"

// View names the top-level landing surface a role is routed to after login.
type View string

const (
	ViewHome               View = "home"
	ViewFacultyDashboard   View = "faculty-dashboard"
	ViewAdminDashboard     View = "admin-dashboard"
	ViewRecruiterDashboard View = "recruiter-dashboard"
)

// Capabilities describes everything role-dependent in one place.
type Capabilities struct {
	LandingView View

	// RequiresAccessCode gates signup on the monthly access code.
	RequiresAccessCode bool

	// BranchLocked pins catalog browsing to the user's own branch
	// (Undecided normalized to Army). Unlocked roles may preview any branch.
	BranchLocked bool

	// ManagePrograms allows catalog create/delete and deadline edits.
	ManagePrograms bool

	// EditMatchingProgram allows wholesale edits to programs whose branch
	// and specialty match the user's own.
	EditMatchingProgram bool

	// EditResidentProfiles allows appending/removing resident profiles on
	// any program.
	EditResidentProfiles bool

	// ViewResidentProfiles controls whether program detail includes the
	// resident roster.
	ViewResidentProfiles bool

	// SubmitADT allows filing training requests.
	SubmitADT bool

	// ReviewADT allows approving/denying training requests.
	ReviewADT bool

	// ViewProspects exposes the recruiter prospect listing (every user who
	// is neither an administrator nor a recruiter).
	ViewProspects bool
}

var table = map[model.Role]Capabilities{
	model.RolePreMed: {
		LandingView:  ViewHome,
		BranchLocked: false,
		// Pre-med applicants browse the catalog but never see resident
		// rosters.
		ViewResidentProfiles: false,
	},
	model.RoleMedicalStudent: {
		LandingView:          ViewHome,
		RequiresAccessCode:   true,
		BranchLocked:         true,
		ViewResidentProfiles: true,
		SubmitADT:            true,
	},
	model.RoleResident: {
		LandingView:          ViewHome,
		RequiresAccessCode:   true,
		BranchLocked:         true,
		ViewResidentProfiles: true,
		EditResidentProfiles: true,
	},
	model.RoleFaculty: {
		LandingView:          ViewFacultyDashboard,
		RequiresAccessCode:   true,
		EditMatchingProgram:  true,
		EditResidentProfiles: true,
		ViewResidentProfiles: true,
	},
	model.RoleAdministrator: {
		LandingView:          ViewAdminDashboard,
		RequiresAccessCode:   true,
		ManagePrograms:       true,
		EditMatchingProgram:  true,
		EditResidentProfiles: true,
		ViewResidentProfiles: true,
		ReviewADT:            true,
	},
	model.RoleRecruiter: {
		LandingView:          ViewRecruiterDashboard,
		RequiresAccessCode:   true,
		ViewResidentProfiles: true,
		ViewProspects:        true,
	},
}

// ForRole returns the capability set for a role. Unknown roles get the
// zero value, which permits nothing.
func ForRole(r model.Role) Capabilities {
	return table[r]
}

// CanEditProgram reports whether a user may commit a wholesale edit to the
// given program.
func CanEditProgram(u model.User, p model.ResidencyProgram) bool {
	caps := ForRole(u.Role)
	if caps.ManagePrograms {
		return true
	}
	return caps.EditMatchingProgram &&
		u.Branch.Normalized() == p.Branch &&
		u.Specialty == p.Specialty
}

// VisibleToRecruiter reports whether a user shows up in the recruiter
// prospect listing.
func VisibleToRecruiter(u model.User) bool {
	return u.Role != model.RoleAdministrator && u.Role != model.RoleRecruiter
}

// EffectiveBranch resolves which branch's catalog a user is looking at.
// Branch-locked roles always see their own branch; other roles follow the
// requested branch, defaulting to the user's own when none is requested.
func EffectiveBranch(u model.User, requested model.Branch) model.Branch {
	if ForRole(u.Role).BranchLocked {
		return u.Branch.Normalized()
	}
	if requested == "" {
		return u.Branch.Normalized()
	}
	return requested.Normalized()
}
