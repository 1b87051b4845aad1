package contract

import (
	"context"

	"erp-agent-nexus/internal/entity"
)

type SessionRepository interface {
	// Load never fails: an unreadable slot is an empty collection.
	Load(ctx context.Context, userKey string) []*entity.ChatSession
	// Save overwrites the whole collection.
	Save(ctx context.Context, userKey string, sessions []*entity.ChatSession) error
}
