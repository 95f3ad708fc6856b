package dto

type UpdateProfileInput struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Branch    string `json:"branch" binding:"required"`

	Specialty       string `json:"specialty"`
	City            string `json:"city"`
	State           string `json:"state"`
	ProfileImageURL string `json:"profile_image_url"`

	// Only the school field matching the user's role is kept; the service
	// blanks the other two.
	MedicalSchool    string `json:"medical_school"`
	ResidencyProgram string `json:"residency_program"`
	UndergradSchool  string `json:"undergrad_school"`
}
