package dto

type AdviceInput struct {
	Specialty string `json:"specialty" binding:"required,max=100"`
	Question  string `json:"question" binding:"required,max=2000"`
}

type AdviceResponse struct {
	Answer string `json:"answer"`
}

type RecruiterSearchInput struct {
	ZipCode string `json:"zip_code" binding:"required,len=5,numeric"`
}

// Recruiter is one synthetic recruiter listing returned by the advisor.
// Distance is a numeric string in miles, per the upstream contract.
type Recruiter struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Office   string `json:"office"`
	Phone    string `json:"phone"`
	Distance string `json:"distance"`
}
