package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/tours-backend/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// PurgeOlderThan deletes system logs older than retention and returns the
// number of rows removed.
func PurgeOlderThan(db *gorm.DB, retention time.Duration, now time.Time) (int64, error) {
	result := db.Where("timestamp < ?", now.Add(-retention)).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup schedules a daily purge of system logs older than
// retentionDays. Stop the returned cron on shutdown.
func StartCleanup(db *gorm.DB, retentionDays int) (*cron.Cron, error) {
	retention := time.Duration(retentionDays) * 24 * time.Hour

	c := cron.New()
	_, err := c.AddFunc("@daily", func() {
		deleted, err := PurgeOlderThan(db, retention, time.Now())
		if err != nil {
			slog.Error("log cleanup failed", "error", err)
		} else if deleted > 0 {
			slog.Info("log cleanup completed", "deleted", deleted)
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
