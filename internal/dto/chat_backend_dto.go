package dto

// Wire format of the remote chat endpoint. The local simulator produces the
// same shape so both sources go through one normalization step.

type ChatBackendRequest struct {
	Query    string             `json:"query"`
	RoleId   string             `json:"role_id"`
	MockMode bool               `json:"mock_mode"`
	Context  ChatBackendContext `json:"context"`
}

type ChatBackendContext struct {
	History string `json:"history"`
}

type ChatBackendResponse struct {
	Id                 string                     `json:"id,omitempty"`
	Content            string                     `json:"content" validate:"required"`
	SuggestedPrompts   []string                   `json:"suggested_prompts,omitempty"`
	ActionItems        []ChatBackendActionItem    `json:"action_items,omitempty" validate:"dive"`
	Visualizations     []ChatBackendVisualization `json:"visualizations,omitempty" validate:"dive"`
	DocumentsGenerated []ChatBackendDocument      `json:"documents_generated,omitempty" validate:"dive"`
	Notifications      []ChatBackendNotification  `json:"notifications,omitempty" validate:"dive"`
	TokenUsage         *ChatBackendTokenUsage     `json:"token_usage,omitempty"`
	Success            *bool                      `json:"success,omitempty"`
	ErrorMessage       string                     `json:"error_message,omitempty"`
	AgentName          string                     `json:"agent_name,omitempty"`
}

type ChatBackendActionItem struct {
	Label      string                 `json:"label" validate:"required"`
	ActionType string                 `json:"action_type" validate:"required"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	Icon       string                 `json:"icon,omitempty"`
	Variant    string                 `json:"variant,omitempty"`
}

type ChatBackendVisualization struct {
	Type   string                 `json:"type" validate:"required"`
	Title  string                 `json:"title"`
	Data   map[string]interface{} `json:"data"`
	Config map[string]interface{} `json:"config,omitempty"`
}

type ChatBackendDocument struct {
	Filename  string `json:"filename" validate:"required"`
	Path      string `json:"path"`
	Type      string `json:"type"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type ChatBackendNotification struct {
	Title     string                 `json:"title" validate:"required"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type"`
	Timestamp string                 `json:"timestamp,omitempty"` // ISO-8601, zone optional
	Action    *ChatBackendActionItem `json:"action,omitempty"`
}

type ChatBackendTokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
