package implementation

import (
	"context"
	"encoding/json"
	"fmt"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/entity"
	"erp-agent-nexus/internal/pkg/logger"
	"erp-agent-nexus/internal/repository/contract"
)

type PreferenceRepositoryImpl struct {
	store  contract.KeyValueStore
	logger logger.ILogger
}

func NewPreferenceRepository(store contract.KeyValueStore, log logger.ILogger) contract.PreferenceRepository {
	return &PreferenceRepositoryImpl{store: store, logger: log}
}

func DefaultPreferences() *entity.Preferences {
	return &entity.Preferences{Theme: constant.ThemeLight}
}

func (r *PreferenceRepositoryImpl) Load(ctx context.Context, userKey string) *entity.Preferences {
	prefs := DefaultPreferences()

	raw, found, err := r.store.Get(ctx, constant.PreferenceStorageKeyPrefix+userKey)
	if err != nil {
		r.logger.Warn("PreferenceRepository", "Failed to read preferences, using defaults", map[string]interface{}{
			"user":  userKey,
			"error": err.Error(),
		})
		return prefs
	}
	if !found {
		return prefs
	}

	if err := json.Unmarshal([]byte(raw), prefs); err != nil {
		r.logger.Warn("PreferenceRepository", "Stored preferences are corrupt, using defaults", map[string]interface{}{
			"user":  userKey,
			"error": err.Error(),
		})
		return DefaultPreferences()
	}
	if prefs.Theme != constant.ThemeDark {
		prefs.Theme = constant.ThemeLight
	}
	return prefs
}

func (r *PreferenceRepositoryImpl) Save(ctx context.Context, userKey string, prefs *entity.Preferences) error {
	b, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	return r.store.Set(ctx, constant.PreferenceStorageKeyPrefix+userKey, string(b))
}
