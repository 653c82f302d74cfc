// internal/infrastructure/database/sqlstore/connection.go
package sqlstore

import (
	"fmt"
	"io"
	"log"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the session database selected by SESSION_DB_DRIVER
func Open(cfg *config.Config, logger *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Session.DBDriver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.Session.DBDSN,
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.Session.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported session database driver %q", cfg.Session.DBDriver)
	}

	logLevel := gormlogger.Silent
	if cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(
			log.New(io.Discard, "", log.LstdFlags),
			gormlogger.Config{LogLevel: logLevel},
		),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session database: %w", err)
	}

	if logger != nil {
		logger.WithField("driver", cfg.Session.DBDriver).Info("session database connected")
	}
	return db, nil
}

// Close releases the pooled connections behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
