package models

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	ID        string `json:"id"`
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// ChatThread is a conversation shown in the chat panel. It is independent of
// tasks and folders.
type ChatThread struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   string    `json:"timestamp"`
	Messages    []Message `json:"messages"`
}

// Clone returns a copy with its own message slice.
func (c ChatThread) Clone() ChatThread {
	out := c
	out.Messages = append([]Message(nil), c.Messages...)
	return out
}
