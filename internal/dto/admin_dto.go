package dto

type DeadlineInput struct {
	ID          string `json:"id"`
	Event       string `json:"event" binding:"required,max=150"`
	Date        string `json:"date" binding:"required"`
	Description string `json:"description" binding:"max=500"`
}

type UpdateDeadlinesInput struct {
	Deadlines []DeadlineInput `json:"deadlines" binding:"required,dive"`
}

type PortalInput struct {
	Username   string `json:"username" binding:"required"`
	AccessCode string `json:"access_code" binding:"required"`
}

type PortalCode struct {
	Role string `json:"role"`
	Code string `json:"code"`
}
