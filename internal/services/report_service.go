package services

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/repository"
)

// CompletedReportRow is one line of the completion report
type CompletedReportRow struct {
	InternID    uint64
	InternEmail string
	ProjectID   uint64
	ProjectName string
	Hours       float64
	CompletedAt time.Time
}

// InternReportRow is per-intern chart data
type InternReportRow struct {
	InternID       uint64
	Email          string
	GoalHours      *float64
	ActiveCount    int64
	CompletedCount int64
}

// ReportService builds admin reports
type ReportService struct {
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

func NewReportService(userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) *ReportService {
	return &ReportService{
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ListInterns returns every intern with ratings
func (s *ReportService) ListInterns() ([]models.User, error) {
	interns, err := s.userRepo.ListByRole(models.RoleIntern)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns: %w", err)
	}
	return interns, nil
}

// CompletedReport lists completions, newest first
func (s *ReportService) CompletedReport() ([]CompletedReportRow, error) {
	completed, err := s.assignmentRepo.ListCompleted()
	if err != nil {
		return nil, fmt.Errorf("failed to list completed projects: %w", err)
	}

	return lo.Map(completed, func(c models.CompletedProject, _ int) CompletedReportRow {
		return CompletedReportRow{
			InternID:    c.InternID,
			InternEmail: c.Intern.Email,
			ProjectID:   c.ProjectID,
			ProjectName: c.Project.Name,
			Hours:       c.Project.EstimatedHours,
			CompletedAt: c.CompletedAt,
		}
	}), nil
}

// InternReport returns goal hours and assignment counts for every intern
func (s *ReportService) InternReport() ([]InternReportRow, error) {
	interns, err := s.userRepo.ListByRole(models.RoleIntern)
	if err != nil {
		return nil, fmt.Errorf("failed to list interns: %w", err)
	}
	active, err := s.assignmentRepo.CountActiveByIntern()
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	completed, err := s.assignmentRepo.CountCompletedByIntern()
	if err != nil {
		return nil, fmt.Errorf("failed to count completed projects: %w", err)
	}

	return lo.Map(interns, func(u models.User, _ int) InternReportRow {
		return InternReportRow{
			InternID:       u.ID,
			Email:          u.Email,
			GoalHours:      u.GoalHours,
			ActiveCount:    active[u.ID],
			CompletedCount: completed[u.ID],
		}
	}), nil
}
