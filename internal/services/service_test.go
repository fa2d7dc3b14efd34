package services

import (
	"path/filepath"
	"testing"

	"github.com/promptvault-dev/promptvault/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "promptvault_test.db")

	database, err := db.Connect(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.Migrate(database))

	t.Cleanup(func() {
		_ = db.Close(database)
	})

	return database
}

func registerTestUser(t *testing.T, database *gorm.DB, email string) uint {
	t.Helper()

	users := NewUserService(database)

	user, err := users.Register(t.Context(), email, "password123", "Test User")
	require.NoError(t, err)

	return user.ID
}
