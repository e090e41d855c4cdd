package repository

import (
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/gorm"
)

// GormSkillRepository is a GORM implementation of SkillRepository
type GormSkillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new SkillRepository
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &GormSkillRepository{db: db}
}

// Create creates a new skill
func (r *GormSkillRepository) Create(skill *models.Skill) error {
	return r.db.Create(skill).Error
}

// List returns all skills
func (r *GormSkillRepository) List() ([]models.Skill, error) {
	var skills []models.Skill
	if err := r.db.Order("name ASC").Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// CountByIDs counts how many of the given skill IDs exist
func (r *GormSkillRepository) CountByIDs(ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&models.Skill{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}
