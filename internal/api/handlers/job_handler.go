package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vsit/placement-hub/internal/services"
	"github.com/vsit/placement-hub/internal/utils"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.NewJobPosting
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "JobHandler.Create", "invalid request body", err))
		return
	}

	posting, err := h.svc.CreatePosting(c.Request.Context(), userID, req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, posting)
}

func (h *JobHandler) ListActive(c *gin.Context) {
	postings, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, postings)
}

func (h *JobHandler) Apply(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	application, err := h.svc.Apply(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, application)
}

func (h *JobHandler) MyApplications(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	applications, err := h.svc.ListApplications(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, applications)
}
