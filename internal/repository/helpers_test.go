package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection would otherwise get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func createIntern(t *testing.T, db *gorm.DB, email string, goal *float64) *models.User {
	t.Helper()
	user := &models.User{Email: email, PasswordHash: "hashedpassword", Role: models.RoleIntern, GoalHours: goal}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createSkill(t *testing.T, db *gorm.DB, name string) *models.Skill {
	t.Helper()
	skill := &models.Skill{Name: name}
	require.NoError(t, db.Create(skill).Error)
	return skill
}

func createProject(t *testing.T, db *gorm.DB, name string, hours float64, skills ...*models.Skill) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Description: "Test Description", EstimatedHours: hours}
	require.NoError(t, db.Create(project).Error)
	for _, s := range skills {
		require.NoError(t, db.Create(&models.ProjectSkill{ProjectID: project.ID, SkillID: s.ID}).Error)
	}
	return project
}

func rate(t *testing.T, db *gorm.DB, internID, skillID uint64, rating int) {
	t.Helper()
	require.NoError(t, db.Create(&models.InternSkill{InternID: internID, SkillID: skillID, Rating: rating}).Error)
}

func goal(h float64) *float64 { return &h }
