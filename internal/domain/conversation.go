package domain

// Conversation is the durable identity behind a client session token.
// ID is immutable once created; UpdatedAt moves forward on every append.
type Conversation struct {
	ID        ConversationID
	CreatedAt Timestamp
	UpdatedAt Timestamp
}

// Message is one immutable entry in a conversation's append-only log.
// Messages of a conversation are totally ordered by creation time.
type Message struct {
	ID             MessageID
	ConversationID ConversationID
	Sender         Sender
	Text           string
	CreatedAt      Timestamp
}
