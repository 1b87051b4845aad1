package model

import (
	"time"

	"gorm.io/datatypes"
)

// KeyValueEntry is one durable slot, e.g. "sessions_alice".
type KeyValueEntry struct {
	Key       string         `gorm:"column:slot_key;type:varchar(255);primaryKey"`
	Value     datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (KeyValueEntry) TableName() string {
	return "kv_entries"
}
