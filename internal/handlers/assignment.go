package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/logger"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// AssignProject hands a project to a chosen intern
func (h *AssignmentHandler) AssignProject(c *gin.Context) {
	var req struct {
		InternID  uint64 `json:"intern_id" binding:"required"`
		ProjectID uint64 `json:"project_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	assignment, err := h.assignmentService.Assign(c.Request.Context(), req.InternID, req.ProjectID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInternNotFound),
			errors.Is(err, services.ErrProjectNotFound):
			apierrors.NotFound(c, err.Error())
		case errors.Is(err, services.ErrNotAnIntern):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCapacityExceeded):
			apierrors.UnprocessableEntity(c, apierrors.ErrCodeCapacityExceeded, err.Error())
		case errors.Is(err, services.ErrProjectAlreadyAssigned):
			apierrors.ConflictWithCode(c, apierrors.ErrCodeAlreadyAssigned, err.Error())
		default:
			logger.Log.WithError(err).Error("Manual assignment failed")
			apierrors.InternalError(c, "Failed to assign project")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToAssignmentDTO(*assignment))
}
