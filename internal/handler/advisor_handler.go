package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/middleware"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/pkg/response"
	"github.com/bframe197/MilMedMatch/pkg/validator"
)

type AdvisorHandler struct {
	advisorService service.AdvisorService
}

func NewAdvisorHandler(advisorService service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{advisorService: advisorService}
}

func (h *AdvisorHandler) Advice(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input dto.AdviceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	answer, err := h.advisorService.GetAdvice(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.AdviceResponse{Answer: answer}})
}

func (h *AdvisorHandler) Recruiters(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input dto.RecruiterSearchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	recruiters, err := h.advisorService.FindRecruiters(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": recruiters})
}
