package repository

import (
	"github.com/yukikurage/intern-allocation-api/internal/database"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// CreateWithSkills creates a project and links its required skills
func (r *GormProjectRepository) CreateWithSkills(project *models.Project, skillIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("RequiredSkills").Create(project).Error; err != nil {
			return err
		}

		if len(skillIDs) == 0 {
			return nil
		}

		links := make([]models.ProjectSkill, len(skillIDs))
		for i, skillID := range skillIDs {
			links[i] = models.ProjectSkill{ProjectID: project.ID, SkillID: skillID}
		}
		return tx.Create(&links).Error
	})
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListUnassigned retrieves unassigned projects with filtering and pagination
func (r *GormProjectRepository) ListUnassigned(filter ProjectFilter) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{}).Scopes(Unassigned)

	if filter.SkillID != nil {
		skillSubQuery := r.db.Model(&models.ProjectSkill{}).
			Select("1").
			Where("project_skills.project_id = projects.id").
			Where("project_skills.skill_id = ?", *filter.SkillID)
		query = query.Where("EXISTS (?)", skillSubQuery)
	}
	if filter.MaxHours != nil {
		query = query.Where("projects.estimated_hours <= ?", *filter.MaxHours)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("projects.id ASC")
	if filter.Pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*filter.Pagination))
	}

	if err := listQuery.Preload("RequiredSkills.Skill").Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Unassigned restricts a project query to projects nobody holds
func Unassigned(db *gorm.DB) *gorm.DB {
	return db.Where("projects.assigned IS NULL OR projects.assigned = ?", false)
}
