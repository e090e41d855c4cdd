package dto

import "github.com/yukikurage/intern-allocation-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64          `json:"id"`
	Email     string          `json:"email"`
	Role      models.UserRole `json:"role"`
	GoalHours *float64        `json:"goal_hours"`
}

// RatingDTO is a self-assessed skill rating
type RatingDTO struct {
	SkillID   uint64 `json:"skill_id"`
	SkillName string `json:"skill_name,omitempty"`
	Rating    int    `json:"rating"`
}

// ProfileDTO is a user with their skill ratings
type ProfileDTO struct {
	UserDTO
	Ratings []RatingDTO `json:"ratings"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		GoalHours: user.GoalHours,
	}
}

// ToProfileDTO converts a user with preloaded ratings to DTO
func ToProfileDTO(user models.User) ProfileDTO {
	ratings := make([]RatingDTO, len(user.Skills))
	for i, s := range user.Skills {
		ratings[i] = RatingDTO{
			SkillID:   s.SkillID,
			SkillName: s.Skill.Name,
			Rating:    s.Rating,
		}
	}
	return ProfileDTO{
		UserDTO: ToUserDTO(user),
		Ratings: ratings,
	}
}
