package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

func newUser(username string, role model.Role) model.User {
	return model.User{
		ID:       uuid.New(),
		Username: username,
		Role:     role,
		Branch:   model.BranchArmy,
	}
}

func TestAppendUserRejectsDuplicates(t *testing.T) {
	s := New()
	u := newUser("doc", model.RoleMedicalStudent)
	if err := s.AppendUser(u); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	if err := s.AppendUser(u); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate id: got %v, want ErrConflict", err)
	}
	other := newUser("doc", model.RolePreMed)
	if err := s.AppendUser(other); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate username: got %v, want ErrConflict", err)
	}
	if got := len(s.Users()); got != 1 {
		t.Errorf("user count = %d, want 1", got)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	s := New()
	u := newUser("doc", model.RoleMedicalStudent)
	u.Notifications = []model.Notification{{ID: uuid.New(), Message: "hello"}}
	if err := s.AppendUser(u); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}

	snap := s.Users()
	snap[0].Username = "mutated"
	snap[0].Notifications[0].Message = "mutated"

	stored, err := s.FindUserByID(u.ID)
	if err != nil {
		t.Fatalf("FindUserByID: %v", err)
	}
	if stored.Username != "doc" || stored.Notifications[0].Message != "hello" {
		t.Error("mutating a snapshot leaked into the store")
	}
}

func TestReplaceUserIsWholesale(t *testing.T) {
	s := New()
	u := newUser("doc", model.RoleMedicalStudent)
	if err := s.AppendUser(u); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	edited := u.Clone()
	edited.MedicalSchool = "USUHS"
	if err := s.ReplaceUser(edited); err != nil {
		t.Fatalf("ReplaceUser: %v", err)
	}
	stored, _ := s.FindUserByID(u.ID)
	if stored.MedicalSchool != "USUHS" {
		t.Errorf("MedicalSchool = %q, want USUHS", stored.MedicalSchool)
	}

	missing := newUser("ghost", model.RolePreMed)
	if err := s.ReplaceUser(missing); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ReplaceUser missing: got %v, want ErrNotFound", err)
	}
}

func TestRemoveUser(t *testing.T) {
	s := New()
	u := newUser("doc", model.RoleMedicalStudent)
	if err := s.AppendUser(u); err != nil {
		t.Fatalf("AppendUser: %v", err)
	}
	if err := s.RemoveUser(u.ID); err != nil {
		t.Fatalf("RemoveUser: %v", err)
	}
	if err := s.RemoveUser(u.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second RemoveUser: got %v, want ErrNotFound", err)
	}
}

func TestNotifyUsersPrependsNewestFirst(t *testing.T) {
	s := New()
	admin := newUser("admin", model.RoleAdministrator)
	admin.Notifications = []model.Notification{{ID: uuid.New(), Message: "old"}}
	student := newUser("student", model.RoleMedicalStudent)
	for _, u := range []model.User{admin, student} {
		if err := s.AppendUser(u); err != nil {
			t.Fatalf("AppendUser: %v", err)
		}
	}

	n := model.Notification{ID: uuid.New(), Message: "new", Type: model.NotificationInfo}
	count := s.NotifyUsers(func(u model.User) bool { return u.Role == model.RoleAdministrator }, n)
	if count != 1 {
		t.Errorf("notified %d users, want 1", count)
	}

	got, _ := s.FindUserByID(admin.ID)
	if len(got.Notifications) != 2 || got.Notifications[0].Message != "new" {
		t.Errorf("admin notifications = %+v, want newest first", got.Notifications)
	}
	untouched, _ := s.FindUserByID(student.ID)
	if len(untouched.Notifications) != 0 {
		t.Error("non-matching user received a notification")
	}
}

func TestProgramIDCollisionRejected(t *testing.T) {
	s := New()
	p := model.ResidencyProgram{ID: model.ProgramID("SAUSHEC", "General Surgery"), Name: "SAUSHEC", Specialty: "General Surgery"}
	if err := s.PrependProgram(p); err != nil {
		t.Fatalf("PrependProgram: %v", err)
	}
	if err := s.PrependProgram(p); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate program id: got %v, want ErrConflict", err)
	}
	if err := s.AppendProgram(p); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("AppendProgram duplicate: got %v, want ErrConflict", err)
	}
}

func TestPrependProgramOrdersNewestFirst(t *testing.T) {
	s := New()
	first := model.ResidencyProgram{ID: "a-x", Name: "A", Specialty: "X"}
	second := model.ResidencyProgram{ID: "b-x", Name: "B", Specialty: "X"}
	if err := s.PrependProgram(first); err != nil {
		t.Fatal(err)
	}
	if err := s.PrependProgram(second); err != nil {
		t.Fatal(err)
	}
	programs := s.Programs()
	if programs[0].ID != "b-x" || programs[1].ID != "a-x" {
		t.Errorf("catalog order = %s,%s; want b-x,a-x", programs[0].ID, programs[1].ID)
	}
}

func TestRequestLifecycleStorage(t *testing.T) {
	s := New()
	r := model.ADTRequest{ID: uuid.New(), Status: model.ADTPending}
	if err := s.AppendRequest(r); err != nil {
		t.Fatalf("AppendRequest: %v", err)
	}
	r.Status = model.ADTApproved
	if err := s.ReplaceRequest(r); err != nil {
		t.Fatalf("ReplaceRequest: %v", err)
	}
	stored, err := s.FindRequest(r.ID)
	if err != nil {
		t.Fatalf("FindRequest: %v", err)
	}
	if stored.Status != model.ADTApproved {
		t.Errorf("status = %q, want approved", stored.Status)
	}
	if _, err := s.FindRequest(uuid.New()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("unknown request: got %v, want ErrNotFound", err)
	}
}

func TestReplaceDeadlinesIsIsolated(t *testing.T) {
	s := New()
	in := []model.MatchDeadline{{ID: "1", Event: "Applications Open"}}
	s.ReplaceDeadlines(in)
	in[0].Event = "mutated"
	if got := s.Deadlines(); got[0].Event != "Applications Open" {
		t.Errorf("deadline event = %q, caller mutation leaked", got[0].Event)
	}
}
