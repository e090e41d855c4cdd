package repository

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/allocation"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrProjectNotFound is returned when a write targets a missing project
var ErrProjectNotFound = errors.New("project not found")

// GormAllocationStore implements allocation.Store on GORM
type GormAllocationStore struct {
	db *gorm.DB
}

// NewAllocationStore creates a new GormAllocationStore
func NewAllocationStore(db *gorm.DB) *GormAllocationStore {
	return &GormAllocationStore{db: db}
}

// WithTx returns a store bound to the given transaction
func (s *GormAllocationStore) WithTx(tx *gorm.DB) *GormAllocationStore {
	return &GormAllocationStore{db: tx}
}

// ListUnassignedProjects lists unassigned projects in ID order. Projects that
// already have a live assignment carry its holder.
func (s *GormAllocationStore) ListUnassignedProjects(ctx context.Context) ([]allocation.Project, error) {
	db := s.db.WithContext(ctx)

	var projects []models.Project
	if err := db.Scopes(Unassigned).
		Order("projects.id ASC").
		Find(&projects).Error; err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return []allocation.Project{}, nil
	}

	var held []models.InternProject
	if err := db.Select("project_id", "intern_id").
		Where("project_id IN ?", lo.Map(projects, func(p models.Project, _ int) uint64 { return p.ID })).
		Find(&held).Error; err != nil {
		return nil, err
	}
	holders := lo.SliceToMap(held, func(ip models.InternProject) (uint64, uint64) {
		return ip.ProjectID, ip.InternID
	})

	return lo.Map(projects, func(p models.Project, _ int) allocation.Project {
		project := allocation.Project{ID: p.ID, Name: p.Name, EstimatedHours: p.EstimatedHours}
		if holder, ok := holders[p.ID]; ok {
			project.HolderID = &holder
		}
		return project
	}), nil
}

// ListWorkers lists users with the given role in ID order
func (s *GormAllocationStore) ListWorkers(ctx context.Context, role string) ([]allocation.Worker, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).
		Select("id", "goal_hours").
		Where("role = ?", role).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}

	return lo.Map(users, func(u models.User, _ int) allocation.Worker {
		return allocation.Worker{ID: u.ID, GoalHours: u.GoalHours}
	}), nil
}

// ListRequiredSkills lists the skill IDs a project requires
func (s *GormAllocationStore) ListRequiredSkills(ctx context.Context, projectID uint64) ([]uint64, error) {
	var skillIDs []uint64
	if err := s.db.WithContext(ctx).
		Model(&models.ProjectSkill{}).
		Where("project_id = ?", projectID).
		Order("skill_id ASC").
		Pluck("skill_id", &skillIDs).Error; err != nil {
		return nil, err
	}
	return skillIDs, nil
}

// ListRatings lists an intern's skill ratings
func (s *GormAllocationStore) ListRatings(ctx context.Context, workerID uint64) ([]allocation.Rating, error) {
	var ratings []models.InternSkill
	if err := s.db.WithContext(ctx).
		Where("intern_id = ?", workerID).
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	return lo.Map(ratings, func(r models.InternSkill, _ int) allocation.Rating {
		return allocation.Rating{SkillID: r.SkillID, Rating: r.Rating}
	}), nil
}

// CreateAssignment inserts the live assignment for a project. The unique
// index on project_id makes the insert a no-op when a row exists; repeating
// the call for the holder succeeds, any other worker gets
// allocation.ErrProjectAlreadyAssigned.
func (s *GormAllocationStore) CreateAssignment(ctx context.Context, workerID, projectID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id", "assigned").First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProjectNotFound
			}
			return err
		}

		var existing models.InternProject
		if err := tx.Where("project_id = ?", projectID).Limit(1).Find(&existing).Error; err != nil {
			return err
		}
		if existing.ID != 0 {
			if existing.InternID == workerID {
				return nil
			}
			return allocation.ErrProjectAlreadyAssigned
		}
		if project.IsAssigned() {
			return allocation.ErrProjectAlreadyAssigned
		}

		assignment := models.InternProject{
			InternID:  workerID,
			ProjectID: projectID,
			Completed: false,
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "project_id"}},
			DoNothing: true,
		}).Create(&assignment)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return allocation.ErrProjectAlreadyAssigned
		}
		return nil
	})
}

// MarkProjectAssigned flips the assigned flag only while it is unset
func (s *GormAllocationStore) MarkProjectAssigned(ctx context.Context, projectID uint64) error {
	db := s.db.WithContext(ctx)

	result := db.Model(&models.Project{}).
		Where("id = ?", projectID).
		Scopes(Unassigned).
		Update("assigned", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrProjectNotFound
	}
	return allocation.ErrProjectAlreadyAssigned
}

var _ allocation.Store = (*GormAllocationStore)(nil)
