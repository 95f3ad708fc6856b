package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/middleware"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/pkg/response"
	"github.com/bframe197/MilMedMatch/pkg/validator"
)

type ADTHandler struct {
	adtService service.ADTService
}

func NewADTHandler(adtService service.ADTService) *ADTHandler {
	return &ADTHandler{adtService: adtService}
}

func (h *ADTHandler) Submit(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var input dto.SubmitADTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.adtService.Submit(c.Request.Context(), user, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": request})
}

func (h *ADTHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.adtService.ListFor(user)})
}

func (h *ADTHandler) Review(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request ID"})
		return
	}

	var input dto.ReviewADTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	request, err := h.adtService.Review(c.Request.Context(), user, id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": request})
}
