package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/services"
	"github.com/vsit/placement-hub/internal/utils"
)

type DirectoryHandler struct {
	svc services.DirectoryService
}

func NewDirectoryHandler(svc services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// List returns the faculty-visible student directory, optionally
// narrowed by ?search=, ?stream= and ?year= ("all" disables a
// constraint). Stats always describe the unfiltered list.
func (h *DirectoryHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var filter services.FilterState
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "DirectoryHandler.List", "invalid filter parameters", err))
		return
	}

	records, stats, err := h.svc.List(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"students": services.FilterStudents(records, filter),
		"stats":    stats,
	})
}

func (h *DirectoryHandler) Export(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	export, err := h.svc.Export(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.Name+`_profile.json"`)
	c.JSON(http.StatusOK, export)
}
