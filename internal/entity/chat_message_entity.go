package entity

// Message is immutable once appended to a session.
// Enrichment lists are only populated on assistant messages.
type Message struct {
	Id               string          `json:"id"`
	Role             string          `json:"role"`
	Content          string          `json:"content"`
	Timestamp        int64           `json:"timestamp"`
	Source           string          `json:"source,omitempty"`
	SuggestedPrompts []string        `json:"suggested_prompts"`
	ActionItems      []ActionItem    `json:"action_items"`
	Visualizations   []Visualization `json:"visualizations"`
	Documents        []Document      `json:"documents"`
	Notifications    []Notification  `json:"notifications"`
	TokenUsage       *TokenUsage     `json:"token_usage,omitempty"`
}

type ActionItem struct {
	Label      string                 `json:"label"`
	ActionType string                 `json:"action_type"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
	Icon       string                 `json:"icon,omitempty"`
	Variant    string                 `json:"variant,omitempty"`
}

// Visualization describes a chart ("pie", "bar", "line") or a "mermaid" diagram.
type Visualization struct {
	Type   string                 `json:"type"`
	Title  string                 `json:"title"`
	Data   VisualizationData      `json:"data"`
	Config map[string]interface{} `json:"config,omitempty"`
}

type VisualizationData struct {
	Labels []string  `json:"labels,omitempty"`
	Values []float64 `json:"values,omitempty"`
	Code   string    `json:"code,omitempty"`
}

type Document struct {
	Filename  string `json:"filename"`
	Path      string `json:"path"`
	Type      string `json:"type"`
	SizeBytes int64  `json:"size_bytes,omitempty"`
}

type Notification struct {
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Action    *ActionItem `json:"action,omitempty"`
}

type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// AssistantResponse is the normalized result of resolving a user query,
// regardless of which source produced it.
type AssistantResponse struct {
	Id               string
	Content          string
	Source           string
	SuggestedPrompts []string
	ActionItems      []ActionItem
	Visualizations   []Visualization
	Documents        []Document
	Notifications    []Notification
	TokenUsage       *TokenUsage
}
