package models

import "time"

type Skill struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// InternSkill is an intern's self-assessed rating (1-5) for one skill
type InternSkill struct {
	InternID  uint64    `gorm:"primarykey" json:"intern_id"`
	SkillID   uint64    `gorm:"primarykey" json:"skill_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}

// ProjectSkill marks a skill as relevant to a project
type ProjectSkill struct {
	ProjectID uint64 `gorm:"primarykey" json:"project_id"`
	SkillID   uint64 `gorm:"primarykey" json:"skill_id"`

	// Relations
	Skill Skill `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}
