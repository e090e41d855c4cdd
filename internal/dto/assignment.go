package dto

import (
	"time"

	"github.com/yukikurage/intern-allocation-api/internal/models"
	"github.com/yukikurage/intern-allocation-api/internal/services"
)

// AssignmentDTO represents a live assignment
type AssignmentDTO struct {
	ID        uint64     `json:"id"`
	InternID  uint64     `json:"intern_id"`
	Project   ProjectDTO `json:"project"`
	Intern    *UserDTO   `json:"intern,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CompletedProjectDTO represents a completion record
type CompletedProjectDTO struct {
	ID          uint64     `json:"id"`
	InternID    uint64     `json:"intern_id"`
	Project     ProjectDTO `json:"project"`
	CompletedAt time.Time  `json:"completed_at"`
}

// CompletedReportDTO is one row of the completion report
type CompletedReportDTO struct {
	InternID    uint64    `json:"intern_id"`
	InternEmail string    `json:"intern_email"`
	ProjectID   uint64    `json:"project_id"`
	ProjectName string    `json:"project_name"`
	Hours       float64   `json:"hours"`
	CompletedAt time.Time `json:"completed_at"`
}

// InternReportDTO is per-intern chart data
type InternReportDTO struct {
	InternID       uint64   `json:"intern_id"`
	Email          string   `json:"email"`
	GoalHours      *float64 `json:"goal_hours"`
	ActiveCount    int64    `json:"active_count"`
	CompletedCount int64    `json:"completed_count"`
}

func ToAssignmentDTO(a models.InternProject) AssignmentDTO {
	out := AssignmentDTO{
		ID:        a.ID,
		InternID:  a.InternID,
		Project:   ToProjectDTO(a.Project),
		CreatedAt: a.CreatedAt,
	}
	if a.Intern.ID != 0 {
		intern := ToUserDTO(a.Intern)
		out.Intern = &intern
	}
	return out
}

func ToCompletedProjectDTO(c models.CompletedProject) CompletedProjectDTO {
	return CompletedProjectDTO{
		ID:          c.ID,
		InternID:    c.InternID,
		Project:     ToProjectDTO(c.Project),
		CompletedAt: c.CompletedAt,
	}
}

func ToCompletedReportDTO(row services.CompletedReportRow) CompletedReportDTO {
	return CompletedReportDTO(row)
}

func ToInternReportDTO(row services.InternReportRow) InternReportDTO {
	return InternReportDTO(row)
}
