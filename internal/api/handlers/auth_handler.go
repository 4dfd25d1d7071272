package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/services"
	"github.com/vsit/placement-hub/internal/utils"
	"github.com/vsit/placement-hub/internal/validation"
)

type AuthHandler struct {
	svc services.AuthService
}

func NewAuthHandler(svc services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req validation.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.SignUp", "invalid request body", err))
		return
	}

	if violations := validation.Check(req); len(violations) > 0 {
		writeViolations(c, violations)
		return
	}

	user, err := h.svc.SignUp(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req validation.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AuthHandler.Login", "invalid request body", err))
		return
	}

	if violations := validation.Check(req); len(violations) > 0 {
		writeViolations(c, violations)
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}
