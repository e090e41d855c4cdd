package database

import (
	"fmt"

	applog "github.com/yukikurage/intern-allocation-api/internal/logger"
	"gorm.io/gorm"
)

type tableIndex struct {
	table   string
	name    string
	columns string
}

// Secondary indexes that the model tags don't declare
var lookupIndexes = []tableIndex{
	// reverse lookups on the join tables
	{"intern_skills", "idx_intern_skills_skill_id", "skill_id"},
	{"project_skills", "idx_project_skills_skill_id", "skill_id"},

	// completion history and reports
	{"completed_projects", "idx_completed_projects_completed_at", "completed_at"},
}

// AddIndexes adds the lookup indexes that are missing
func AddIndexes(db *gorm.DB) error {
	for _, idx := range lookupIndexes {
		if db.Migrator().HasIndex(idx.table, idx.name) {
			applog.Log.WithField("index", idx.name).Debug("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		applog.Log.WithField("index", idx.name).Infof("Created index on %s(%s)", idx.table, idx.columns)
	}

	return nil
}
