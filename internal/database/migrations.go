package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	applog "github.com/yukikurage/intern-allocation-api/internal/logger"
	"github.com/yukikurage/intern-allocation-api/internal/models"
	"gorm.io/gorm"
)

// Migrations returns the versioned schema history. New entries are appended,
// existing IDs never change.
func Migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202410010001_initial_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(models.All()...)
			},
			Rollback: func(tx *gorm.DB) error {
				tables := models.All()
				for i := len(tables) - 1; i >= 0; i-- {
					if err := tx.Migrator().DropTable(tables[i]); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			ID: "202410010002_lookup_indexes",
			Migrate: func(tx *gorm.DB) error {
				return AddIndexes(tx)
			},
			Rollback: func(tx *gorm.DB) error {
				for _, idx := range lookupIndexes {
					if tx.Migrator().HasIndex(idx.table, idx.name) {
						if err := tx.Migrator().DropIndex(idx.table, idx.name); err != nil {
							return err
						}
					}
				}
				return nil
			},
		},
	}
}

// Migrate applies every pending migration
func Migrate(db *gorm.DB) error {
	applog.Log.Info("Running database migrations...")

	m := gormigrate.New(db, gormigrate.DefaultOptions, Migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	applog.Log.Info("Database migrations completed")
	return nil
}
