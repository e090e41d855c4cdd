package repository

import (
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindProfile finds a user with skill ratings preloaded
func (r *GormUserRepository) FindProfile(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.Scopes(withRatings).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ListByRole lists users with the given role
func (r *GormUserRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	if err := r.db.Scopes(withRatings).
		Where("role = ?", role).
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile stores goal hours and upserts skill ratings in a transaction
func (r *GormUserRepository) UpdateProfile(userID uint64, goalHours *float64, ratings []models.InternSkill) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(ratings) > 0 {
			for i := range ratings {
				ratings[i].InternID = userID
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "intern_id"}, {Name: "skill_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
			}).Create(&ratings).Error; err != nil {
				return err
			}
		}

		if goalHours != nil {
			result := tx.Model(&models.User{}).Where("id = ?", userID).Update("goal_hours", *goalHours)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		return nil
	})
}

func withRatings(db *gorm.DB) *gorm.DB {
	return db.Preload("Skills", func(db *gorm.DB) *gorm.DB {
		return db.Order("skill_id ASC")
	}).Preload("Skills.Skill")
}
