package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/services"
)

type RoleHandler struct {
	svc services.RoleService
}

func NewRoleHandler(svc services.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// Resolve reports the caller's role, creating the default student
// profile on first visit. When creation fails the client shows its
// "setting up your account" state and the user retries.
func (h *RoleHandler) Resolve(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	role, err := h.svc.Resolve(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"role": role})
}
