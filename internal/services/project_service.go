package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/constants"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/repository"
	"github.com/yukikurage/intern-allocation-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound        = errors.New("project not found")
	ErrProjectNameRequired    = errors.New("project name is required")
	ErrInvalidEstimatedHours  = errors.New("estimated hours must not be negative")
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrAINoProjectsGenerated  = errors.New("AI did not generate any projects")
	ErrAINoValidProjects      = errors.New("no valid projects could be created from AI output")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	skillRepo   repository.SkillRepository
	aiService   *AIService
}

// NewProjectService creates a new ProjectService. aiService may be nil.
func NewProjectService(projectRepo repository.ProjectRepository, skillRepo repository.SkillRepository, aiService *AIService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		skillRepo:   skillRepo,
		aiService:   aiService,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name           string
	Description    string
	EstimatedHours float64
	SkillIDs       []uint64
}

// ListProjectsInput represents filters for listing unassigned projects
type ListProjectsInput struct {
	SkillID    *uint64
	MaxHours   *float64
	Pagination *utils.PaginationParams
}

// CreateProject validates and stores a new unassigned project
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrProjectNameRequired
	}
	if input.EstimatedHours < 0 {
		return nil, ErrInvalidEstimatedHours
	}

	skillIDs, err := ensureSkillsExist(s.skillRepo, input.SkillIDs)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:           name,
		Description:    input.Description,
		EstimatedHours: input.EstimatedHours,
	}
	if err := s.projectRepo.CreateWithSkills(project, skillIDs); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return s.GetProject(project.ID)
}

// GetProject returns a project with its required skills
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id, "RequiredSkills.Skill")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// ListProjects returns unassigned projects matching the filters
func (s *ProjectService) ListProjects(input ListProjectsInput) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListUnassigned(repository.ProjectFilter{
		SkillID:    input.SkillID,
		MaxHours:   input.MaxHours,
		Pagination: input.Pagination,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, total, nil
}

// ProjectDraft is an AI generated project resolved against the skill
// catalogue. Drafts are not persisted.
type ProjectDraft struct {
	Name           string
	Description    string
	EstimatedHours float64
	SkillIDs       []uint64
	// UnknownSkills lists names the catalogue doesn't contain
	UnknownSkills []string
}

// GenerateProjects uses AI to draft projects from text
func (s *ProjectService) GenerateProjects(ctx context.Context, text string) ([]ProjectDraft, error) {
	if s.aiService == nil {
		return nil, ErrAIServiceNotConfigured
	}

	skills, err := s.skillRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	byName := lo.SliceToMap(skills, func(skill models.Skill) (string, uint64) {
		return strings.ToLower(skill.Name), skill.ID
	})

	generated, err := s.aiService.GenerateProjectsFromText(ctx, text, lo.Map(skills, func(skill models.Skill, _ int) string {
		return skill.Name
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to generate projects: %w", err)
	}

	if len(generated) == 0 {
		return nil, ErrAINoProjectsGenerated
	}
	if len(generated) > constants.MaxAIGeneratedProjects {
		return nil, fmt.Errorf("AI generated too many projects (max %d)", constants.MaxAIGeneratedProjects)
	}

	drafts := make([]ProjectDraft, 0, len(generated))
	for _, g := range generated {
		name := strings.TrimSpace(g.Name)
		if name == "" || g.EstimatedHours < 0 {
			continue
		}

		draft := ProjectDraft{
			Name:           name,
			Description:    g.Description,
			EstimatedHours: g.EstimatedHours,
			SkillIDs:       []uint64{},
		}
		for _, skillName := range lo.Uniq(g.Skills) {
			if id, ok := byName[strings.ToLower(strings.TrimSpace(skillName))]; ok {
				draft.SkillIDs = append(draft.SkillIDs, id)
			} else {
				draft.UnknownSkills = append(draft.UnknownSkills, skillName)
			}
		}
		draft.SkillIDs = lo.Uniq(draft.SkillIDs)
		drafts = append(drafts, draft)
	}

	if len(drafts) == 0 {
		return nil, ErrAINoValidProjects
	}

	return drafts, nil
}
