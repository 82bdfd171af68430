// Package dbtest opens migrated in-memory databases for tests.
package dbtest

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a fresh, migrated SQLite database that lives for the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() { _ = database.Close(db) })
	return db
}
