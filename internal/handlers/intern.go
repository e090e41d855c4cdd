package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/middleware"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

// InternHandler serves the signed-in intern's own resources
type InternHandler struct {
	internService *services.InternService
}

func NewInternHandler(internService *services.InternService) *InternHandler {
	return &InternHandler{internService: internService}
}

// GetProfile returns goal hours and ratings
func (h *InternHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	profile, err := h.internService.GetProfile(userID)
	if err != nil {
		respondInternError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// UpdateProfile sets goal hours and upserts ratings
func (h *InternHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var req struct {
		GoalHours *float64 `json:"goal_hours"`
		// keyed by skill ID
		Ratings map[string]int `json:"ratings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	ratings := make(map[uint64]int, len(req.Ratings))
	for key, rating := range req.Ratings {
		skillID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			apierrors.BadRequestWithDetails(c, "Invalid skill ID in ratings", gin.H{"skill_id": key})
			return
		}
		ratings[skillID] = rating
	}

	profile, err := h.internService.UpdateProfile(userID, services.UpdateProfileInput{
		GoalHours: req.GoalHours,
		Ratings:   ratings,
	})
	if err != nil {
		respondInternError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileDTO(*profile))
}

// ListAssignments returns live assignments
func (h *InternHandler) ListAssignments(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	assignments, err := h.internService.ListAssignments(userID)
	if err != nil {
		respondInternError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assignments": lo.Map(assignments, func(a models.InternProject, _ int) dto.AssignmentDTO {
			return dto.ToAssignmentDTO(a)
		}),
	})
}

// ListCompleted returns the completion history
func (h *InternHandler) ListCompleted(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	completed, err := h.internService.ListCompleted(userID)
	if err != nil {
		respondInternError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"completed": lo.Map(completed, func(cp models.CompletedProject, _ int) dto.CompletedProjectDTO {
			return dto.ToCompletedProjectDTO(cp)
		}),
	})
}

// CompleteProject marks one of the intern's assignments as done
func (h *InternHandler) CompleteProject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Param("project_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project ID")
		return
	}

	record, err := h.internService.CompleteProject(userID, projectID)
	if err != nil {
		respondInternError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"project_id":   record.ProjectID,
		"completed_at": record.CompletedAt,
	})
}

func respondInternError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidGoalHours),
		errors.Is(err, services.ErrInvalidRating),
		errors.Is(err, services.ErrUnknownSkill):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrAssignmentNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
