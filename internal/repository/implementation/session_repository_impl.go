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

type SessionRepositoryImpl struct {
	store  contract.KeyValueStore
	logger logger.ILogger
}

func NewSessionRepository(store contract.KeyValueStore, log logger.ILogger) contract.SessionRepository {
	return &SessionRepositoryImpl{store: store, logger: log}
}

func sessionKey(userKey string) string {
	return constant.SessionStorageKeyPrefix + userKey
}

func (r *SessionRepositoryImpl) Load(ctx context.Context, userKey string) []*entity.ChatSession {
	raw, found, err := r.store.Get(ctx, sessionKey(userKey))
	if err != nil {
		r.logger.Warn("SessionRepository", "Failed to read sessions, starting empty", map[string]interface{}{
			"user":  userKey,
			"error": err.Error(),
		})
		return []*entity.ChatSession{}
	}
	if !found || raw == "" {
		return []*entity.ChatSession{}
	}

	var sessions []*entity.ChatSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		r.logger.Warn("SessionRepository", "Stored sessions are corrupt, starting empty", map[string]interface{}{
			"user":  userKey,
			"error": err.Error(),
		})
		return []*entity.ChatSession{}
	}

	out := make([]*entity.ChatSession, 0, len(sessions))
	for _, s := range sessions {
		if s == nil || s.Id == "" {
			continue
		}
		if s.Messages == nil {
			s.Messages = []entity.Message{}
		}
		out = append(out, s)
	}
	return out
}

func (r *SessionRepositoryImpl) Save(ctx context.Context, userKey string, sessions []*entity.ChatSession) error {
	if sessions == nil {
		sessions = []*entity.ChatSession{}
	}
	b, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("marshal sessions: %w", err)
	}
	if err := r.store.Set(ctx, sessionKey(userKey), string(b)); err != nil {
		return fmt.Errorf("write sessions: %w", err)
	}
	return nil
}
