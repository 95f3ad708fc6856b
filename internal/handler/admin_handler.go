package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bframe197/MilMedMatch/internal/accesscode"
	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/middleware"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/pkg/response"
	"github.com/bframe197/MilMedMatch/pkg/validator"
)

// AdminHandler covers the administrator surfaces that do not belong to a
// single domain service: match deadlines, the recruitment flag image, and
// the operator code portal.
type AdminHandler struct {
	deadlineService  service.DeadlineService
	programService   service.ProgramService
	portalUsername   string
	portalAccessCode string
}

func NewAdminHandler(deadlineService service.DeadlineService, programService service.ProgramService, portalUsername, portalAccessCode string) *AdminHandler {
	return &AdminHandler{
		deadlineService:  deadlineService,
		programService:   programService,
		portalUsername:   portalUsername,
		portalAccessCode: portalAccessCode,
	}
}

func (h *AdminHandler) ListDeadlines(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.deadlineService.List()})
}

func (h *AdminHandler) UpdateDeadlines(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input dto.UpdateDeadlinesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	deadlines, err := h.deadlineService.Replace(user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": deadlines})
}

func (h *AdminHandler) RegenerateFlagImage(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	imageURL, err := h.programService.RegenerateDefaultImage(c.Request.Context(), user)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"image_url": imageURL}})
}

// PortalCodes is the out-of-band operator lookup for the current month's
// access codes. It is gated by static operator credentials, not by a user
// session.
func (h *AdminHandler) PortalCodes(c *gin.Context) {
	var input dto.PortalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.portalUsername)) == 1
	codeOK := subtle.ConstantTimeCompare([]byte(input.AccessCode), []byte(h.portalAccessCode)) == 1
	if !usernameOK || !codeOK {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid portal credentials"})
		return
	}

	now := time.Now()
	codes := make([]dto.PortalCode, 0, len(model.AllRoles))
	for _, role := range model.AllRoles {
		codes = append(codes, dto.PortalCode{
			Role: string(role),
			Code: accesscode.For(role, now),
		})
	}

	c.JSON(http.StatusOK, gin.H{"data": codes})
}
