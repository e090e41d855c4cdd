package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleIntern UserRole = "intern"
	RoleAdmin  UserRole = "admin"
)

// Valid reports whether r is a known role
func (r UserRole) Valid() bool {
	return r == RoleIntern || r == RoleAdmin
}

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole       `gorm:"type:varchar(20);not null;default:'intern';index" json:"role"`
	GoalHours    *float64       `json:"goal_hours"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Skills      []InternSkill   `gorm:"foreignKey:InternID" json:"-"`
	Assignments []InternProject `gorm:"foreignKey:InternID" json:"-"`
}
