package dto

import (
	"time"

	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

// SkillDTO represents a skill in API responses
type SkillDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID             uint64     `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	EstimatedHours float64    `json:"estimated_hours"`
	Assigned       bool       `json:"assigned"`
	RequiredSkills []SkillDTO `json:"required_skills"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ProjectListResponse represents a paginated list of unassigned projects
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalCount int64        `json:"total_count"`
	TotalPages int          `json:"total_pages"`
}

// ProjectDraftDTO is an AI drafted project that has not been saved
type ProjectDraftDTO struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	EstimatedHours float64  `json:"estimated_hours"`
	SkillIDs       []uint64 `json:"skill_ids"`
	UnknownSkills  []string `json:"unknown_skills,omitempty"`
}

func ToSkillDTO(skill models.Skill) SkillDTO {
	return SkillDTO{ID: skill.ID, Name: skill.Name}
}

// ToProjectDTO converts a project; required skills must be preloaded with
// their Skill to carry names
func ToProjectDTO(project models.Project) ProjectDTO {
	skills := make([]SkillDTO, len(project.RequiredSkills))
	for i, ps := range project.RequiredSkills {
		skills[i] = SkillDTO{ID: ps.SkillID, Name: ps.Skill.Name}
	}

	return ProjectDTO{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		EstimatedHours: project.EstimatedHours,
		Assigned:       project.IsAssigned(),
		RequiredSkills: skills,
		CreatedAt:      project.CreatedAt,
	}
}

func ToProjectDraftDTO(draft services.ProjectDraft) ProjectDraftDTO {
	return ProjectDraftDTO{
		Name:           draft.Name,
		Description:    draft.Description,
		EstimatedHours: draft.EstimatedHours,
		SkillIDs:       draft.SkillIDs,
		UnknownSkills:  draft.UnknownSkills,
	}
}
