package domain

import "context"

// Conversation roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is a single conversation message. Turns are ephemeral: callers supply
// the prior history with each request and nothing is persisted here.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the outcome of one retrieval-augmented chat call.
type ChatResult struct {
	Answer   string        `json:"answer"`
	Context  []ItemPayload `json:"context"`
	Messages []Turn        `json:"messages"`
}

// CompletionClient defines the interface for a chat completion provider.
// Implementations receive the full message sequence (system prompt first) and
// return the top answer text.
type CompletionClient interface {
	Complete(ctx context.Context, messages []Turn) (string, error)
}
