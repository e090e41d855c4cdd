package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInternNotFound         = errors.New("intern not found")
	ErrNotAnIntern            = errors.New("user is not an intern")
	ErrCapacityExceeded       = errors.New("intern's goal hours do not cover the project estimate")
	ErrProjectAlreadyAssigned = allocation.ErrProjectAlreadyAssigned
)

// AssignmentService hands a project to a chosen intern, applying the same
// capacity rule and conditional writes as an allocation run
type AssignmentService struct {
	db    *gorm.DB
	store *repository.GormAllocationStore
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{
		db:    db,
		store: repository.NewAllocationStore(db),
	}
}

// Assign creates the assignment and flags the project in one transaction
func (s *AssignmentService) Assign(ctx context.Context, internID, projectID uint64) (*models.InternProject, error) {
	var assignment models.InternProject

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var intern models.User
		if err := tx.First(&intern, internID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInternNotFound
			}
			return fmt.Errorf("failed to find intern: %w", err)
		}
		if intern.Role != models.RoleIntern {
			return ErrNotAnIntern
		}

		var project models.Project
		if err := tx.First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return fmt.Errorf("failed to find project: %w", err)
		}
		if project.IsAssigned() {
			return ErrProjectAlreadyAssigned
		}
		if !allocation.Eligible(intern.GoalHours, project.EstimatedHours) {
			return ErrCapacityExceeded
		}

		store := s.store.WithTx(tx)
		if err := store.CreateAssignment(ctx, intern.ID, project.ID); err != nil {
			return mapStoreError(err)
		}
		if err := store.MarkProjectAssigned(ctx, project.ID); err != nil {
			return mapStoreError(err)
		}

		return tx.Preload("Intern").Preload("Project").
			Where("project_id = ?", project.ID).
			First(&assignment).Error
	})
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProjectNotFound):
		return ErrProjectNotFound
	case errors.Is(err, allocation.ErrProjectAlreadyAssigned):
		return ErrProjectAlreadyAssigned
	default:
		return fmt.Errorf("failed to assign project: %w", err)
	}
}
