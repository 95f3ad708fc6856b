package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/ai"
	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
	"github.com/bframe197/MilMedMatch/pkg/storage"
)

type ProgramService interface {
	// List returns the catalog subset for the viewer's effective branch and
	// the given specialty, in catalog order. Resident rosters are redacted
	// for roles that may not see them.
	List(viewer model.User, requestedBranch model.Branch, specialty string) []model.ResidencyProgram

	// Get returns one catalog entry with the viewer's redaction applied.
	Get(viewer model.User, id string) (model.ResidencyProgram, error)

	Create(ctx context.Context, actor model.User, input dto.CreateProgramInput) (model.ResidencyProgram, error)
	Delete(ctx context.Context, actor model.User, id string) error

	// Update replaces the stored entry wholesale with the actor's draft.
	Update(ctx context.Context, actor model.User, id string, input dto.UpdateProgramInput) (model.ResidencyProgram, error)

	AddResident(ctx context.Context, actor model.User, programID string, input dto.ResidentProfileInput) (model.ResidencyProgram, error)
	RemoveResident(ctx context.Context, actor model.User, programID string, residentID uuid.UUID) (model.ResidencyProgram, error)

	// GenerateCoverImage asks the AI collaborator for program cover art and
	// stores the resulting URL on the program. On collaborator failure the
	// stored image is left unchanged and the empty URL is returned.
	GenerateCoverImage(ctx context.Context, actor model.User, programID string) (string, error)

	// RegenerateDefaultImage refreshes the catalog-wide fallback image. On
	// collaborator failure the existing image is unchanged.
	RegenerateDefaultImage(ctx context.Context, actor model.User) (string, error)

	DefaultImage() string
}

type programService struct {
	store     *store.Store
	search    ProgramSearchService
	aiClient  ai.Client
	images    storage.ImageStorage
	rdb       *redis.Client
	folder    string
	timeout   time.Duration
	sanitizer *bluemonday.Policy
}

func NewProgramService(s *store.Store, search ProgramSearchService, aiClient ai.Client, images storage.ImageStorage, rdb *redis.Client, uploadFolder string, aiTimeout time.Duration) ProgramService {
	return &programService{
		store:     s,
		search:    search,
		aiClient:  aiClient,
		images:    images,
		rdb:       rdb,
		folder:    uploadFolder,
		timeout:   aiTimeout,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *programService) List(viewer model.User, requestedBranch model.Branch, specialty string) []model.ResidencyProgram {
	branch := rbac.EffectiveBranch(viewer, requestedBranch)
	redact := !rbac.ForRole(viewer.Role).ViewResidentProfiles

	out := []model.ResidencyProgram{}
	for _, p := range s.store.Programs() {
		if p.Branch != branch || p.Specialty != specialty {
			continue
		}
		if redact {
			p.Residents = []model.ResidentProfile{}
		}
		out = append(out, p)
	}
	return out
}

func (s *programService) Get(viewer model.User, id string) (model.ResidencyProgram, error) {
	p, err := s.store.FindProgram(id)
	if err != nil {
		return model.ResidencyProgram{}, err
	}
	if !rbac.ForRole(viewer.Role).ViewResidentProfiles {
		p.Residents = []model.ResidentProfile{}
	}
	return p, nil
}

func (s *programService) Create(ctx context.Context, actor model.User, input dto.CreateProgramInput) (model.ResidencyProgram, error) {
	if !rbac.ForRole(actor.Role).ManagePrograms {
		return model.ResidencyProgram{}, apperror.ErrForbidden
	}
	branch := model.Branch(input.Branch)
	if !branch.Valid() || branch == model.BranchUndecided {
		return model.ResidencyProgram{}, apperror.Invalid(fmt.Sprintf("unknown branch %q", input.Branch))
	}

	p := model.ResidencyProgram{
		ID:                model.ProgramID(input.Name, input.Specialty),
		Name:              input.Name,
		Branch:            branch,
		Specialty:         input.Specialty,
		Location:          input.Location,
		ResidentsPerClass: input.ResidentsPerClass,
		ProgramDirector:   contactFromInput(input.ProgramDirector),
		Secretary:         contactFromInput(input.Secretary),
		Strengths:         s.sanitizeStrengths(input.Strengths),
		Videos:            []model.ProgramVideo{},
		Residents:         []model.ResidentProfile{},
	}
	if err := s.store.PrependProgram(p); err != nil {
		return model.ResidencyProgram{}, err
	}
	s.indexProgram(p)
	return p, nil
}

func (s *programService) Delete(ctx context.Context, actor model.User, id string) error {
	if !rbac.ForRole(actor.Role).ManagePrograms {
		return apperror.ErrForbidden
	}
	if err := s.store.RemoveProgram(id); err != nil {
		return err
	}
	if s.search != nil {
		if err := s.search.Delete(id); err != nil {
			slog.Warn("failed to delete program from search index", "program_id", id, "error", err)
		}
	}
	return nil
}

func (s *programService) Update(ctx context.Context, actor model.User, id string, input dto.UpdateProgramInput) (model.ResidencyProgram, error) {
	current, err := s.store.FindProgram(id)
	if err != nil {
		return model.ResidencyProgram{}, err
	}
	if !rbac.CanEditProgram(actor, current) {
		return model.ResidencyProgram{}, apperror.ErrForbidden
	}

	// Identity fields (id, branch, specialty) are fixed at creation; the
	// draft replaces everything else.
	updated := current
	updated.Name = input.Name
	updated.Location = input.Location
	updated.ResidentsPerClass = input.ResidentsPerClass
	updated.ProgramDirector = contactFromInput(input.ProgramDirector)
	updated.Secretary = contactFromInput(input.Secretary)
	updated.Strengths = s.sanitizeStrengths(input.Strengths)
	updated.Videos = withVideoIDs(input.Videos)
	updated.Residents = withResidentIDs(input.Residents)

	if err := s.store.ReplaceProgram(updated); err != nil {
		return model.ResidencyProgram{}, err
	}
	s.indexProgram(updated)
	return updated, nil
}

func (s *programService) AddResident(ctx context.Context, actor model.User, programID string, input dto.ResidentProfileInput) (model.ResidencyProgram, error) {
	if !rbac.ForRole(actor.Role).EditResidentProfiles {
		return model.ResidencyProgram{}, apperror.ErrForbidden
	}
	p, err := s.store.FindProgram(programID)
	if err != nil {
		return model.ResidencyProgram{}, err
	}

	p.Residents = append(p.Residents, model.ResidentProfile{
		ID:        uuid.New(),
		Name:      s.sanitizer.Sanitize(input.Name),
		School:    s.sanitizer.Sanitize(input.School),
		Interests: s.sanitizer.Sanitize(input.Interests),
		ImageURL:  input.ImageURL,
		PGYYear:   input.PGYYear,
		Email:     input.Email,
	})
	if err := s.store.ReplaceProgram(p); err != nil {
		return model.ResidencyProgram{}, err
	}
	return p, nil
}

func (s *programService) RemoveResident(ctx context.Context, actor model.User, programID string, residentID uuid.UUID) (model.ResidencyProgram, error) {
	if !rbac.ForRole(actor.Role).EditResidentProfiles {
		return model.ResidencyProgram{}, apperror.ErrForbidden
	}
	p, err := s.store.FindProgram(programID)
	if err != nil {
		return model.ResidencyProgram{}, err
	}

	kept := p.Residents[:0]
	found := false
	for _, r := range p.Residents {
		if r.ID == residentID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return model.ResidencyProgram{}, fmt.Errorf("resident %s: %w", residentID, apperror.ErrNotFound)
	}
	p.Residents = kept

	if err := s.store.ReplaceProgram(p); err != nil {
		return model.ResidencyProgram{}, err
	}
	return p, nil
}

func (s *programService) GenerateCoverImage(ctx context.Context, actor model.User, programID string) (string, error) {
	p, err := s.store.FindProgram(programID)
	if err != nil {
		return "", err
	}
	if !rbac.CanEditProgram(actor, p) {
		return "", apperror.ErrForbidden
	}

	prompt := fmt.Sprintf("A professional, cinematic, and clean photography style image for a medical residency program. "+
		"The program is %s for %s located in %s. "+
		"The image should feature modern hospital architecture or a high-tech medical simulation environment, "+
		"conveying excellence, leadership, and military medicine. Avoid text in the image.",
		p.Name, p.Specialty, p.Location)

	url, ok := s.generateAndStore(ctx, actor.ID, "cover_image", prompt, "cover-"+p.ID)
	if !ok {
		// Collaborator failure: leave the stored image untouched.
		return "", nil
	}

	old := p.ImageURL
	p.ImageURL = url
	if err := s.store.ReplaceProgram(p); err != nil {
		return "", err
	}
	s.cleanupImage(ctx, old)
	return url, nil
}

func (s *programService) RegenerateDefaultImage(ctx context.Context, actor model.User) (string, error) {
	if !rbac.ForRole(actor.Role).ManagePrograms {
		return "", apperror.ErrForbidden
	}

	prompt := "A high-quality, cinematic, professional photograph of the United States American Flag waving proudly " +
		"against a clear blue sky. Dramatic lighting, sharp details, patriotism."

	url, ok := s.generateAndStore(ctx, actor.ID, "flag_image", prompt, "default-cover")
	if !ok {
		return "", nil
	}

	old := s.store.DefaultImage()
	s.store.SetDefaultImage(url)
	s.cleanupImage(ctx, old)
	return url, nil
}

func (s *programService) DefaultImage() string {
	return s.store.DefaultImage()
}

// generateAndStore runs one guarded image round trip. The boolean is false
// on collaborator failure, which callers translate to "keep the old image".
func (s *programService) generateAndStore(ctx context.Context, userID uuid.UUID, action, prompt, name string) (string, bool) {
	if s.aiClient == nil {
		return "", false
	}

	acquired, err := AcquireInFlight(ctx, s.rdb, userID, action, s.timeout)
	if err != nil {
		slog.Warn("in-flight guard unavailable", "action", action, "error", err)
	} else if !acquired {
		return "", false
	}
	defer func() {
		if err := ReleaseInFlight(ctx, s.rdb, userID, action); err != nil {
			slog.Warn("failed to release in-flight guard", "action", action, "error", err)
		}
	}()

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.aiClient.GenerateImage(genCtx, prompt)
	if err != nil {
		slog.Error("image generation failed", "action", action, "error", err)
		return "", false
	}

	if s.images == nil {
		// No storage configured; serve the generated bytes inline.
		return dataURI(data), true
	}
	url, err := s.images.UploadPNG(ctx, data, s.folder, name)
	if err != nil {
		slog.Error("image upload failed", "action", action, "error", err)
		return "", false
	}
	return url, true
}

func (s *programService) cleanupImage(ctx context.Context, url string) {
	if s.images == nil || url == "" {
		return
	}
	if err := s.images.DeleteImage(ctx, url); err != nil {
		slog.Warn("failed to delete replaced image", "error", err)
	}
}

func (s *programService) sanitizeStrengths(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if clean := s.sanitizer.Sanitize(v); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func (s *programService) indexProgram(p model.ResidencyProgram) {
	if s.search == nil {
		return
	}
	if err := s.search.Index(p); err != nil {
		slog.Warn("failed to index program", "program_id", p.ID, "error", err)
	}
}

func contactFromInput(in dto.ContactInput) model.ProgramContact {
	return model.ProgramContact{Name: in.Name, Email: in.Email, Phone: in.Phone}
}

func withVideoIDs(videos []model.ProgramVideo) []model.ProgramVideo {
	out := make([]model.ProgramVideo, len(videos))
	copy(out, videos)
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i].ID = uuid.New()
		}
	}
	return out
}

func withResidentIDs(residents []model.ResidentProfile) []model.ResidentProfile {
	out := make([]model.ResidentProfile, len(residents))
	copy(out, residents)
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i].ID = uuid.New()
		}
	}
	return out
}

func dataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
