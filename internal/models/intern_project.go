package models

import "time"

// InternProject is a live assignment of a project to an intern. A project has
// at most one row; the row is removed when the intern completes the project.
type InternProject struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	InternID  uint64    `gorm:"not null;index" json:"intern_id"`
	ProjectID uint64    `gorm:"not null;uniqueIndex" json:"project_id"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Intern  User    `gorm:"foreignKey:InternID" json:"intern,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
