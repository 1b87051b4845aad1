package message

import (
	"time"

	"erp-agent-nexus/internal/constant"
	"erp-agent-nexus/internal/entity"

	"github.com/google/uuid"
)

// AppendUser records a user message. A message into an empty session also
// names it.
func AppendUser(s *entity.ChatSession, text string, now time.Time) entity.Message {
	if len(s.Messages) == 0 {
		s.Title = Title(text)
	}

	m := entity.Message{
		Id:               uuid.NewString(),
		Role:             constant.ChatMessageRoleUser,
		Content:          text,
		Timestamp:        now.UnixMilli(),
		SuggestedPrompts: []string{},
		ActionItems:      []entity.ActionItem{},
		Visualizations:   []entity.Visualization{},
		Documents:        []entity.Document{},
		Notifications:    []entity.Notification{},
	}
	s.Messages = append(s.Messages, m)
	touch(s, now)
	return m
}

// AppendAssistant records a resolved response, with its enrichment lists.
func AppendAssistant(s *entity.ChatSession, resp *entity.AssistantResponse, now time.Time) entity.Message {
	id := resp.Id
	if id == "" {
		id = uuid.NewString()
	}

	m := entity.Message{
		Id:               id,
		Role:             constant.ChatMessageRoleAssistant,
		Content:          resp.Content,
		Timestamp:        now.UnixMilli(),
		Source:           resp.Source,
		SuggestedPrompts: orEmpty(resp.SuggestedPrompts),
		ActionItems:      orEmpty(resp.ActionItems),
		Visualizations:   orEmpty(resp.Visualizations),
		Documents:        orEmpty(resp.Documents),
		Notifications:    orEmpty(resp.Notifications),
		TokenUsage:       resp.TokenUsage,
	}
	s.Messages = append(s.Messages, m)
	touch(s, now)
	return m
}

// Title truncates text to the session title length, counting runes.
func Title(text string) string {
	runes := []rune(text)
	if len(runes) > constant.SessionTitleMaxRunes {
		runes = runes[:constant.SessionTitleMaxRunes]
	}
	return string(runes) + constant.SessionTitleEllipsis
}

// last_active_at never moves backwards.
func touch(s *entity.ChatSession, now time.Time) {
	if ms := now.UnixMilli(); ms > s.LastActiveAt {
		s.LastActiveAt = ms
	}
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
