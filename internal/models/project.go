package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID             uint64  `gorm:"primarykey" json:"id"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Description    string  `gorm:"type:text" json:"description"`
	EstimatedHours float64 `gorm:"not null;default:0" json:"estimated_hours"`
	// Assigned is NULL until a project is handed to an intern
	Assigned  *bool          `gorm:"index" json:"assigned"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	RequiredSkills []ProjectSkill `gorm:"foreignKey:ProjectID" json:"required_skills,omitempty"`
}

// IsAssigned reports whether the project has been handed out
func (p Project) IsAssigned() bool {
	return p.Assigned != nil && *p.Assigned
}
