package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/middleware"
	"github.com/bframe197/MilMedMatch/internal/service"
	"github.com/bframe197/MilMedMatch/pkg/response"
	"github.com/bframe197/MilMedMatch/pkg/validator"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": res})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var input dto.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	res, err := h.authService.Signup(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": res})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	tokenID := c.GetString(middleware.CtxTokenID)
	expiresAt, _ := c.Get(middleware.CtxTokenExpiresAt)
	exp, _ := expiresAt.(time.Time)

	if err := h.authService.Logout(c.Request.Context(), tokenID, exp); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
