package db

import (
	"log"

	"github.com/promptvault-dev/promptvault/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"
)

// Connect opens the SQLite database at path and returns the handle. Callers
// own the handle's lifecycle; there is no package-level connection state.
func Connect(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{})
}

func Migrate(database *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Team{},
		&models.Tag{},
		&models.Prompt{},
		&models.PromptVersion{},
		&models.PromptTag{},
		&models.Rating{},
		&models.Settings{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	ensureSearchIndex(database)

	return nil
}

// ensureSearchIndex creates the FTS5 virtual table mirroring prompt title and
// body, keyed by the prompt's stable id. FTS5 may be unavailable in some
// builds; search then degrades to the substring fallback, so a failure here
// is logged and not fatal.
func ensureSearchIndex(database *gorm.DB) {
	err := database.Exec(
		"CREATE VIRTUAL TABLE IF NOT EXISTS prompt_search USING fts5(pid UNINDEXED, title, body)",
	).Error
	if err != nil {
		log.Printf("Full-text index unavailable, search will use substring fallback: %v", err)
	}
}

func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
