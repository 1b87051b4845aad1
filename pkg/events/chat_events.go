package events

import (
	"time"

	"erp-agent-nexus/internal/entity"
)

const (
	TypeSessionCreated  = "SESSION_CREATED"
	TypeSessionDeleted  = "SESSION_DELETED"
	TypeMessageAppended = "MESSAGE_APPENDED"
	TypeNotification    = "NOTIFICATION"
)

func NewSessionCreated(userKey string, s *entity.ChatSession, now time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeSessionCreated,
		Data: map[string]interface{}{
			"user_id":    userKey,
			"session_id": s.Id,
			"role_id":    s.RoleId,
			"title":      s.Title,
		},
		OccurredAt: now,
	}
}

func NewSessionDeleted(userKey string, sessionIds []string, now time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeSessionDeleted,
		Data: map[string]interface{}{
			"user_id":     userKey,
			"session_ids": sessionIds,
		},
		OccurredAt: now,
	}
}

func NewMessageAppended(userKey string, s *entity.ChatSession, m entity.Message, now time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeMessageAppended,
		Data: map[string]interface{}{
			"user_id":    userKey,
			"session_id": s.Id,
			"title":      s.Title,
			"message":    m,
		},
		OccurredAt: now,
	}
}
