package mapper

import (
	"fmt"
	"time"

	"erp-agent-nexus/internal/dto"
	"erp-agent-nexus/internal/entity"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

var backendTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// ChatBackendResponseToEntity normalizes a wire response. Every list in the
// result is non-nil.
func (m *ChatMapper) ChatBackendResponseToEntity(resp *dto.ChatBackendResponse, source string, now time.Time) *entity.AssistantResponse {
	out := &entity.AssistantResponse{
		Id:               resp.Id,
		Content:          resp.Content,
		Source:           source,
		SuggestedPrompts: make([]string, 0, len(resp.SuggestedPrompts)),
		ActionItems:      make([]entity.ActionItem, 0, len(resp.ActionItems)),
		Visualizations:   make([]entity.Visualization, 0, len(resp.Visualizations)),
		Documents:        make([]entity.Document, 0, len(resp.DocumentsGenerated)),
		Notifications:    make([]entity.Notification, 0, len(resp.Notifications)),
	}

	out.SuggestedPrompts = append(out.SuggestedPrompts, resp.SuggestedPrompts...)

	for _, a := range resp.ActionItems {
		out.ActionItems = append(out.ActionItems, m.actionItemToEntity(a))
	}

	for _, v := range resp.Visualizations {
		out.Visualizations = append(out.Visualizations, entity.Visualization{
			Type:   v.Type,
			Title:  v.Title,
			Data:   m.visualizationData(v.Data),
			Config: v.Config,
		})
	}

	for _, d := range resp.DocumentsGenerated {
		out.Documents = append(out.Documents, entity.Document{
			Filename:  d.Filename,
			Path:      d.Path,
			Type:      d.Type,
			SizeBytes: d.SizeBytes,
		})
	}

	for _, n := range resp.Notifications {
		notification := entity.Notification{
			Title:     n.Title,
			Message:   n.Message,
			Type:      n.Type,
			Timestamp: m.parseTimestamp(n.Timestamp, now),
		}
		if notification.Type == "" {
			notification.Type = "info"
		}
		if n.Action != nil {
			action := m.actionItemToEntity(*n.Action)
			notification.Action = &action
		}
		out.Notifications = append(out.Notifications, notification)
	}

	if resp.TokenUsage != nil {
		out.TokenUsage = &entity.TokenUsage{
			PromptTokens:     resp.TokenUsage.PromptTokens,
			CompletionTokens: resp.TokenUsage.CompletionTokens,
			TotalTokens:      resp.TokenUsage.TotalTokens,
		}
	}

	return out
}

// CloneSession copies a session so it can be read after the workspace lock
// is released. Messages are immutable, so copying the slice is enough.
func (m *ChatMapper) CloneSession(s *entity.ChatSession) *entity.ChatSession {
	c := *s
	c.Messages = make([]entity.Message, len(s.Messages))
	copy(c.Messages, s.Messages)
	return &c
}

// SessionsToResponse snapshots the session list for a listing payload.
func (m *ChatMapper) SessionsToResponse(activeId string, loading []string, sessions []*entity.ChatSession) *dto.GetAllSessionsResponse {
	if loading == nil {
		loading = []string{}
	}
	list := make([]*entity.ChatSession, len(sessions))
	for i, s := range sessions {
		list[i] = m.CloneSession(s)
	}
	return &dto.GetAllSessionsResponse{
		ActiveSessionId:   activeId,
		LoadingSessionIds: loading,
		Sessions:          list,
	}
}

func (m *ChatMapper) actionItemToEntity(a dto.ChatBackendActionItem) entity.ActionItem {
	return entity.ActionItem{
		Label:      a.Label,
		ActionType: a.ActionType,
		Payload:    a.Payload,
		Icon:       a.Icon,
		Variant:    a.Variant,
	}
}

// Only labels, numeric values and diagram code are understood; other keys are dropped.
func (m *ChatMapper) visualizationData(raw map[string]interface{}) entity.VisualizationData {
	var data entity.VisualizationData
	if raw == nil {
		return data
	}

	if labels, ok := raw["labels"].([]interface{}); ok {
		for _, l := range labels {
			if s, ok := l.(string); ok {
				data.Labels = append(data.Labels, s)
			} else {
				data.Labels = append(data.Labels, fmt.Sprint(l))
			}
		}
	}

	if values, ok := raw["values"].([]interface{}); ok {
		for _, v := range values {
			if f, ok := v.(float64); ok {
				data.Values = append(data.Values, f)
			}
		}
	}

	if code, ok := raw["code"].(string); ok {
		data.Code = code
	}

	return data
}

func (m *ChatMapper) parseTimestamp(value string, now time.Time) int64 {
	if value == "" {
		return now.UnixMilli()
	}
	for _, layout := range backendTimestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UnixMilli()
		}
	}
	return now.UnixMilli()
}
