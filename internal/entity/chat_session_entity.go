package entity

// ChatSession is one conversation thread with a single assistant role.
// Timestamps are unix milliseconds.
type ChatSession struct {
	Id           string    `json:"id"`
	RoleId       string    `json:"role_id"`
	Title        string    `json:"title"`
	Messages     []Message `json:"messages"`
	CreatedAt    int64     `json:"created_at"`
	LastActiveAt int64     `json:"last_active_at"`
}
