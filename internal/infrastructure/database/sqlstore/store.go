// internal/infrastructure/database/sqlstore/store.go
package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront/internal/pkg/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionEntry is one persisted session value
type SessionEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:64"`
	Value     string `gorm:"type:text;not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a KeyValueStore backed by a SQL table
type Store struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewStore creates a store over db. A zero ttl keeps entries until deleted.
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl, now: time.Now}
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	entry := SessionEntry{Key: key, Value: value}
	if s.ttl > 0 {
		expires := s.now().Add(s.ttl)
		entry.ExpiresAt = &expires
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to store session value: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var entry SessionEntry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", auth.ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load session value: %w", err)
	}

	if entry.ExpiresAt != nil && !entry.ExpiresAt.After(s.now()) {
		if err := s.Del(ctx, key); err != nil {
			return "", err
		}
		return "", auth.ErrKeyNotFound
	}
	return entry.Value, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("entry_key IN ?", keys).Delete(&SessionEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete session values: %w", err)
	}
	return nil
}
