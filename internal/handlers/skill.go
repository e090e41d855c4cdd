package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/dto"
	apierrors "github.com/yukikurage/intern-allocation-api/internal/errors"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

type SkillHandler struct {
	skillService *services.SkillService
}

func NewSkillHandler(skillService *services.SkillService) *SkillHandler {
	return &SkillHandler{skillService: skillService}
}

// ListSkills returns the skill catalogue
func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.skillService.ListSkills()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch skills")
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": lo.Map(skills, func(s models.Skill, _ int) dto.SkillDTO {
		return dto.ToSkillDTO(s)
	})})
}

// CreateSkill adds a skill to the catalogue
func (h *SkillHandler) CreateSkill(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	skill, err := h.skillService.CreateSkill(req.Name)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSkillNameRequired):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrSkillExists):
			apierrors.RespondWithError(c, http.StatusConflict, apierrors.NewAPIError(apierrors.ErrCodeAlreadyExists, err.Error()))
		default:
			apierrors.InternalError(c, "Failed to create skill")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToSkillDTO(*skill))
}
