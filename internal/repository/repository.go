package repository

import (
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/utils"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindProfile finds a user with skill ratings preloaded
	FindProfile(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByRole lists users with the given role ordered by ID, with ratings preloaded
	ListByRole(role models.UserRole) ([]models.User, error)

	// UpdateProfile stores goal hours and upserts skill ratings atomically
	UpdateProfile(userID uint64, goalHours *float64, ratings []models.InternSkill) error
}

// SkillRepository defines the interface for skill data access
type SkillRepository interface {
	// Create creates a new skill
	Create(skill *models.Skill) error

	// List returns all skills ordered by name
	List() ([]models.Skill, error)

	// CountByIDs counts how many of the given skill IDs exist
	CountByIDs(ids []uint64) (int64, error)
}

// ProjectFilter holds filtering options for listing unassigned projects
type ProjectFilter struct {
	SkillID  *uint64
	MaxHours *float64
	// nil returns every match
	Pagination *utils.PaginationParams
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// CreateWithSkills creates a project and its required skills in one transaction
	CreateWithSkills(project *models.Project, skillIDs []uint64) error

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// ListUnassigned retrieves unassigned projects with filtering and pagination
	ListUnassigned(filter ProjectFilter) ([]models.Project, int64, error)
}

// AssignmentRepository defines the interface for live assignments and
// completion records
type AssignmentRepository interface {
	// ListActiveByIntern lists an intern's live assignments with projects preloaded
	ListActiveByIntern(internID uint64) ([]models.InternProject, error)

	// ListCompletedByIntern lists an intern's completion records with projects preloaded
	ListCompletedByIntern(internID uint64) ([]models.CompletedProject, error)

	// ListCompleted lists every completion record with intern and project preloaded
	ListCompleted() ([]models.CompletedProject, error)

	// Complete replaces a live assignment by a completion record
	Complete(internID, projectID uint64) (*models.CompletedProject, error)

	// CountActiveByIntern returns the number of live assignments per intern
	CountActiveByIntern() (map[uint64]int64, error)

	// CountCompletedByIntern returns the number of completed projects per intern
	CountCompletedByIntern() (map[uint64]int64, error)
}
