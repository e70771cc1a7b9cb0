// Package storage is the storefront's on-device key/value storage, kept in
// the local sqlite database.
package storage

import (
	"context"
	"errors"
	"fmt"

	"foodie-storefront/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV reads and writes StorageEntry rows
type KV struct {
	db *gorm.DB
}

func NewKV(db *gorm.DB) *KV {
	return &KV{db: db}
}

// Get returns the value stored under key; ok is false when the key is absent
func (s *KV) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.StorageEntry
	err := s.db.WithContext(ctx).Where(&models.StorageEntry{Key: key}).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %q: %w", key, err)
	}
	return entry.Value, true, nil
}

// Set inserts or replaces the value under key
func (s *KV) Set(ctx context.Context, key, value string) error {
	entry := models.StorageEntry{Key: key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Delete removes key; deleting an absent key is not an error
func (s *KV) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&models.StorageEntry{Key: key}).Error; err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}
