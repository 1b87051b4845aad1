package dto

import "erp-agent-nexus/internal/entity"

type CreateSessionRequest struct {
	RoleId string `json:"role_id" validate:"omitempty,max=64"`
}

type GetAllSessionsResponse struct {
	ActiveSessionId   string                `json:"active_session_id"`
	LoadingSessionIds []string              `json:"loading_session_ids"`
	Sessions          []*entity.ChatSession `json:"sessions"`
}

type DeleteSessionsResponse struct {
	Deleted int `json:"deleted"`
	GetAllSessionsResponse
}

type SendChatRequest struct {
	SessionId      string `json:"session_id,omitempty"`
	Message        string `json:"message" validate:"required"`
	SimulationMode *bool  `json:"simulation_mode,omitempty"` // nil: use the stored preference
}

type SendChatResponse struct {
	SessionId    string          `json:"session_id"`
	SessionTitle string          `json:"title"`
	Sent         *entity.Message `json:"sent"`
	Reply        *entity.Message `json:"reply"`
	Outcome      string          `json:"outcome"`
}

type AutoSendRequest struct {
	Message string `json:"message" validate:"required"`
}

type AutoSendResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}
