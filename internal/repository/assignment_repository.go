package repository

import (
	"time"

	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/gorm"
)

// GormAssignmentRepository is a GORM implementation of AssignmentRepository
type GormAssignmentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &GormAssignmentRepository{db: db, now: time.Now}
}

// ListActiveByIntern lists an intern's live assignments
func (r *GormAssignmentRepository) ListActiveByIntern(internID uint64) ([]models.InternProject, error) {
	var assignments []models.InternProject
	if err := r.db.Preload("Project").
		Where("intern_id = ?", internID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListCompletedByIntern lists an intern's completion records
func (r *GormAssignmentRepository) ListCompletedByIntern(internID uint64) ([]models.CompletedProject, error) {
	var completed []models.CompletedProject
	if err := r.db.Preload("Project").
		Where("intern_id = ?", internID).
		Order("completed_at DESC").
		Find(&completed).Error; err != nil {
		return nil, err
	}
	return completed, nil
}

// ListCompleted lists all completion records
func (r *GormAssignmentRepository) ListCompleted() ([]models.CompletedProject, error) {
	var completed []models.CompletedProject
	if err := r.db.Preload("Intern").
		Preload("Project").
		Order("completed_at DESC").
		Find(&completed).Error; err != nil {
		return nil, err
	}
	return completed, nil
}

// Complete records the completion and removes the live assignment
func (r *GormAssignmentRepository) Complete(internID, projectID uint64) (*models.CompletedProject, error) {
	var record *models.CompletedProject
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var assignment models.InternProject
		if err := tx.Where("intern_id = ? AND project_id = ?", internID, projectID).
			First(&assignment).Error; err != nil {
			return err
		}

		record = &models.CompletedProject{
			InternID:    internID,
			ProjectID:   projectID,
			CompletedAt: r.now(),
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		return tx.Delete(&assignment).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

type internCount struct {
	InternID uint64
	Total    int64
}

// CountActiveByIntern returns live assignment counts keyed by intern
func (r *GormAssignmentRepository) CountActiveByIntern() (map[uint64]int64, error) {
	return r.countByIntern(&models.InternProject{})
}

// CountCompletedByIntern returns completion counts keyed by intern
func (r *GormAssignmentRepository) CountCompletedByIntern() (map[uint64]int64, error) {
	return r.countByIntern(&models.CompletedProject{})
}

func (r *GormAssignmentRepository) countByIntern(model interface{}) (map[uint64]int64, error) {
	var rows []internCount
	if err := r.db.Model(model).
		Select("intern_id, COUNT(*) AS total").
		Group("intern_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		counts[row.InternID] = row.Total
	}
	return counts, nil
}
