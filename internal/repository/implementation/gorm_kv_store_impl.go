package implementation

import (
	"context"
	"errors"
	"time"

	"erp-agent-nexus/internal/model"
	"erp-agent-nexus/internal/repository/contract"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormKeyValueStore struct {
	db *gorm.DB
}

func NewGormKeyValueStore(db *gorm.DB) contract.KeyValueStore {
	return &GormKeyValueStore{db: db}
}

func (s *GormKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	var m model.KeyValueEntry
	if err := s.db.WithContext(ctx).Where("slot_key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(m.Value), true, nil
}

// Set upserts; the value must be JSON.
func (s *GormKeyValueStore) Set(ctx context.Context, key, value string) error {
	m := model.KeyValueEntry{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
}
