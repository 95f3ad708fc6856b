package model

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

type ProgramContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ProgramVideo struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Thumbnail string    `json:"thumbnail"`
	Author    string    `json:"author"`
}

type ResidentProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	School    string    `json:"school"`
	Interests string    `json:"interests"`
	ImageURL  string    `json:"image_url"`
	PGYYear   int       `json:"pgy_year"`
	Email     string    `json:"email,omitempty"`
}

// ResidencyProgram is one catalog entry. The id is derived from
// (name, specialty) at creation time; see ProgramID.
type ResidencyProgram struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Branch            Branch            `json:"branch"`
	Specialty         string            `json:"specialty"`
	Location          string            `json:"location"`
	ProgramDirector   ProgramContact    `json:"program_director"`
	Secretary         ProgramContact    `json:"secretary"`
	ResidentsPerClass int               `json:"residents_per_class"`
	Strengths         []string          `json:"strengths"`
	Videos            []ProgramVideo    `json:"videos"`
	Residents         []ResidentProfile `json:"residents"`
	ImageURL          string            `json:"image_url"`
}

func (p ResidencyProgram) Clone() ResidencyProgram {
	out := p
	out.Strengths = append([]string(nil), p.Strengths...)
	out.Videos = append([]ProgramVideo(nil), p.Videos...)
	out.Residents = append([]ResidentProfile(nil), p.Residents...)
	return out
}

var programIDSpaces = regexp.MustCompile(`\s+`)

// ProgramID derives the catalog id from program name and specialty, e.g.
// ("SAUSHEC", "Emergency Medicine") -> "saushec-emergency-medicine".
func ProgramID(name, specialty string) string {
	slug := strings.ToLower(name) + "-" + strings.ToLower(specialty)
	return programIDSpaces.ReplaceAllString(slug, "-")
}
