package domain

import "time"

type ConversationID string
type MessageID string

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ChatRole is the role vocabulary of the model capability.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one role-tagged entry of the context window sent to the model.
type ChatMessage struct {
	Role    ChatRole
	Content string
}

type Timestamp = time.Time
