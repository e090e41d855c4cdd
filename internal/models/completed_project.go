package models

import "time"

type CompletedProject struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	InternID    uint64    `gorm:"not null;index" json:"intern_id"`
	ProjectID   uint64    `gorm:"not null;index" json:"project_id"`
	CompletedAt time.Time `gorm:"not null" json:"completed_at"`

	// Relations
	Intern  User    `gorm:"foreignKey:InternID" json:"intern,omitempty"`
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}
