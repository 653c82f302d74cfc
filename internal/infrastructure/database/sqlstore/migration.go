// internal/infrastructure/database/sqlstore/migration.go
package sqlstore

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles session table migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the session models
func (m *Migration) RunAutoMigrations() error {
	models := []interface{}{
		&SessionEntry{},
	}

	for _, model := range models {
		m.logger.Debugf("migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}
	return nil
}

// CreateIndexes creates the indexes AutoMigrate does not derive from tags
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_session_entries_expires_at ON session_entries(expires_at)",
	}

	for _, stmt := range indexes {
		if err := m.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}

// PurgeExpired deletes entries whose expiry has passed
func (m *Migration) PurgeExpired(now time.Time) (int64, error) {
	res := m.db.Where("expires_at IS NOT NULL AND expires_at <= ?", now).Delete(&SessionEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge expired session entries: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		m.logger.WithField("count", res.RowsAffected).Info("purged expired session entries")
	}
	return res.RowsAffected, nil
}

// Run migrates the schema and purges expired entries
func (m *Migration) Run() error {
	if err := m.RunAutoMigrations(); err != nil {
		return err
	}
	if err := m.CreateIndexes(); err != nil {
		return err
	}
	_, err := m.PurgeExpired(time.Now())
	return err
}
