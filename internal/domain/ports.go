package domain

import "context"

// LLMClient defines how the core application talks to a language-model service.
// Complete sends a full context window and returns the generated text. Failures
// should be reported as (or wrap) a *ModelCallError so callers can map them to
// user-facing fallback replies.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// ConversationStore defines conversation persistence.
type ConversationStore interface {
	CreateConversation(ctx context.Context) (*Conversation, error)
	// GetConversation returns ErrNotFound when no conversation has the given id.
	GetConversation(ctx context.Context, id ConversationID) (*Conversation, error)
	// TouchConversation moves the conversation's last-activity timestamp forward.
	TouchConversation(ctx context.Context, id ConversationID) error
}

// MessageStore defines message persistence.
type MessageStore interface {
	// AppendMessage stores msg and touches the owning conversation as part of
	// the same logical write.
	AppendMessage(ctx context.Context, msg *Message) error
	// GetRecentMessages returns up to limit most-recent messages ordered
	// oldest to newest. limit <= 0 returns the full history.
	GetRecentMessages(ctx context.Context, id ConversationID, limit int) ([]*Message, error)
}
