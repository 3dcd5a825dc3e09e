package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/techstyle/chatdesk/internal/domain"
)

// SessionResolver maps a client-supplied session token to a conversation.
// Tokens are not secrets: an absent, malformed or unknown token silently
// degrades to a fresh conversation instead of failing the request.
type SessionResolver struct {
	conversations domain.ConversationStore
}

func NewSessionResolver(conversations domain.ConversationStore) *SessionResolver {
	return &SessionResolver{conversations: conversations}
}

// Resolve returns the identity of an existing conversation when token is a
// well-formed identifier that matches one, and creates a new conversation
// otherwise. The only error it can return is a storage failure.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (domain.ConversationID, error) {
	if WellFormedToken(token) {
		conv, err := r.conversations.GetConversation(ctx, domain.ConversationID(token))
		if err == nil {
			return conv.ID, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return "", err
		}
	}

	conv, err := r.conversations.CreateConversation(ctx)
	if err != nil {
		return "", err
	}
	return conv.ID, nil
}

// WellFormedToken reports whether s is a canonical 36-character hyphenated
// UUID. Other textual encodings (braced, URN, bare hex) are rejected so the
// token shape stays fixed.
func WellFormedToken(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
