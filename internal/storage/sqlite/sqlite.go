// Package sqlite is a single-file implementation of storage.KV built on gorm.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/Decentr-net/blockconnect/internal/storage"
)

type slot struct {
	Key       string `gorm:"column:slot_key;primaryKey"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (slot) TableName() string {
	return "slots"
}

type lite struct {
	db   *gorm.DB
	mu   *sync.Mutex
	inTx bool
}

// New opens (or creates) the database at dsn and migrates the slots table.
// Use ":memory:" for a throwaway database.
func New(dsn string) (storage.KV, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	// sqlite has a single writer and :memory: databases live per connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&slot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return lite{db: db, mu: &sync.Mutex{}}, nil
}

func (s lite) Get(ctx context.Context, key string) ([]byte, error) {
	var v slot

	if err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return v.Value, nil
}

func (s lite) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}

	v := slot{Key: key, Value: value, UpdatedAt: time.Now().UTC()}

	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&v).Error; err != nil {
		return fmt.Errorf("failed to upsert: %w", err)
	}

	return nil
}

func (s lite) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("slot_key = ?", key).Delete(&slot{}).Error; err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}

	return nil
}

func (s lite) InTx(ctx context.Context, f func(kv storage.KV) error) error {
	if s.inTx {
		return f(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(lite{db: tx, mu: s.mu, inTx: true})
	})
}

func (s lite) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql db: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping: %w", err)
	}

	return nil
}
