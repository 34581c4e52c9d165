package db

import (
	"context"
	"errors"

	"github.com/NaufalHusnianto/Agnivolt/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore is a durable string key-value store on top of the kv_entries table.
type KVStore struct {
	db *DB
}

func (d *DB) KVStore() *KVStore {
	return &KVStore{db: d}
}

// Get returns the value under key; found is false when the key was never set.
func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.KVEntry
	err := s.db.Conn.WithContext(ctx).First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set overwrites the value under key.
func (s *KVStore) Set(ctx context.Context, key string, value string) error {
	entry := models.KVEntry{Key: key, Value: value}
	return s.db.Conn.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error
}
