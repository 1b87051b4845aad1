package contract

import (
	"context"

	"erp-agent-nexus/internal/entity"
)

type PreferenceRepository interface {
	Load(ctx context.Context, userKey string) *entity.Preferences
	Save(ctx context.Context, userKey string, prefs *entity.Preferences) error
}
