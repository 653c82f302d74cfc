// Package session builds the KeyValueStore the persisted session lives in.
package session

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/infrastructure/database/redis"
	"github.com/your-org/storefront/internal/infrastructure/database/sqlstore"
	"github.com/your-org/storefront/internal/pkg/auth"
)

// Store is a KeyValueStore that may hold a connection
type Store interface {
	auth.KeyValueStore
	Close() error
}

type nopCloser struct {
	auth.KeyValueStore
}

func (nopCloser) Close() error { return nil }

type closerFunc struct {
	auth.KeyValueStore
	close func() error
}

func (c closerFunc) Close() error { return c.close() }

// NewStore opens the store selected by SESSION_STORE
func NewStore(cfg *config.Config, logger *logrus.Logger) (Store, error) {
	switch cfg.Session.Store {
	case "file":
		var sealer *auth.Sealer
		if cfg.Session.Secret != "" {
			var err error
			sealer, err = auth.NewSealer(cfg.Session.Secret)
			if err != nil {
				return nil, err
			}
		}
		return nopCloser{NewFileStore(cfg.Session.File, sealer)}, nil

	case "redis":
		client, err := redis.NewConnection(cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil

	case "sql":
		db, err := sqlstore.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := sqlstore.NewMigration(db, logger).Run(); err != nil {
			_ = sqlstore.Close(db)
			return nil, err
		}
		return closerFunc{
			KeyValueStore: sqlstore.NewStore(db, cfg.Session.TTL),
			close:         func() error { return sqlstore.Close(db) },
		}, nil
	}
	return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
}
