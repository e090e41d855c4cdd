package services

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/constants"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRating      = errors.New("ratings must be between 1 and 5")
	ErrInvalidGoalHours   = errors.New("goal hours must not be negative")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// InternService handles an intern's own profile and assignments
type InternService struct {
	userRepo       repository.UserRepository
	skillRepo      repository.SkillRepository
	assignmentRepo repository.AssignmentRepository
}

func NewInternService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, assignmentRepo repository.AssignmentRepository) *InternService {
	return &InternService{
		userRepo:       userRepo,
		skillRepo:      skillRepo,
		assignmentRepo: assignmentRepo,
	}
}

// UpdateProfileInput carries the fields an intern may change. A nil
// GoalHours leaves the stored value untouched.
type UpdateProfileInput struct {
	GoalHours *float64
	Ratings   map[uint64]int
}

// UpdateProfile validates and stores goal hours and skill ratings
func (s *InternService) UpdateProfile(internID uint64, input UpdateProfileInput) (*models.User, error) {
	if input.GoalHours != nil && *input.GoalHours < 0 {
		return nil, ErrInvalidGoalHours
	}
	for _, rating := range input.Ratings {
		if rating < constants.MinSkillRating || rating > constants.MaxSkillRating {
			return nil, ErrInvalidRating
		}
	}
	if _, err := ensureSkillsExist(s.skillRepo, lo.Keys(input.Ratings)); err != nil {
		return nil, err
	}

	ratings := lo.MapToSlice(input.Ratings, func(skillID uint64, rating int) models.InternSkill {
		return models.InternSkill{SkillID: skillID, Rating: rating}
	})

	if err := s.userRepo.UpdateProfile(internID, input.GoalHours, ratings); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.GetProfile(internID)
}

// GetProfile returns the intern with their ratings
func (s *InternService) GetProfile(internID uint64) (*models.User, error) {
	user, err := s.userRepo.FindProfile(internID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return user, nil
}

func (s *InternService) ListAssignments(internID uint64) ([]models.InternProject, error) {
	assignments, err := s.assignmentRepo.ListActiveByIntern(internID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return assignments, nil
}

func (s *InternService) ListCompleted(internID uint64) ([]models.CompletedProject, error) {
	completed, err := s.assignmentRepo.ListCompletedByIntern(internID)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed projects: %w", err)
	}
	return completed, nil
}

// CompleteProject closes one of the intern's live assignments
func (s *InternService) CompleteProject(internID, projectID uint64) (*models.CompletedProject, error) {
	record, err := s.assignmentRepo.Complete(internID, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, fmt.Errorf("failed to complete project: %w", err)
	}
	return record, nil
}
