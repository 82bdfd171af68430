package database

import (
	"testing"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(&config.Config{DBDriver: "sqlite", DBPath: "file:dbtest_open?mode=memory&cache=shared"})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, Migrate(db))
	assert.NoError(t, Ping(db))

	for _, table := range []string{"users", "tours", "reviews", "tour_guides", "system_logs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}
