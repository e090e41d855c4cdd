package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/logger"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
	"github.com/yukikurage/intern-allocation-api/internal/utils"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// CreateProject stores a new unassigned project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req struct {
		Name           string   `json:"name" binding:"required,max=255"`
		Description    string   `json:"description"`
		EstimatedHours float64  `json:"estimated_hours"`
		SkillIDs       []uint64 `json:"skill_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:           req.Name,
		Description:    req.Description,
		EstimatedHours: req.EstimatedHours,
		SkillIDs:       req.SkillIDs,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// ListProjects returns unassigned projects
// Can filter by skill_id and max_hours
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	input := services.ListProjectsInput{}

	if raw := c.Query("skill_id"); raw != "" {
		skillID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid skill_id")
			return
		}
		input.SkillID = &skillID
	}
	if raw := c.Query("max_hours"); raw != "" {
		maxHours, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxHours < 0 {
			apierrors.BadRequest(c, "Invalid max_hours")
			return
		}
		input.MaxHours = &maxHours
	}

	params := utils.GetPaginationParams(c)
	input.Pagination = &params

	projects, total, err := h.projectService.ListProjects(input)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	totalPages := int((total + int64(params.Limit) - 1) / int64(params.Limit))

	c.JSON(http.StatusOK, dto.ProjectListResponse{
		Projects: lo.Map(projects, func(p models.Project, _ int) dto.ProjectDTO {
			return dto.ToProjectDTO(p)
		}),
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: totalPages,
	})
}

// GenerateProjects drafts projects from free text with AI
func (h *ProjectHandler) GenerateProjects(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	drafts, err := h.projectService.GenerateProjects(c.Request.Context(), req.Text)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": lo.Map(drafts, func(d services.ProjectDraft, _ int) dto.ProjectDraftDTO {
			return dto.ToProjectDraftDTO(d)
		}),
	})
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNameRequired),
		errors.Is(err, services.ErrInvalidEstimatedHours),
		errors.Is(err, services.ErrUnknownSkill):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAIServiceNotConfigured):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrAINoProjectsGenerated),
		errors.Is(err, services.ErrAINoValidProjects):
		apierrors.UnprocessableEntity(c, apierrors.ErrCodeOperationFailed, err.Error())
	default:
		logger.Log.WithError(err).Error("Project request failed")
		apierrors.InternalError(c, "Failed to process project request")
	}
}
