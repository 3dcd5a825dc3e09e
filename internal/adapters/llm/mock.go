package llm

import (
	"context"
	"fmt"

	"github.com/techstyle/chatdesk/internal/domain"
)

// MockClient is a deterministic offline client for development and tests.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var lastUser string
	for _, msg := range messages {
		if msg.Role == domain.RoleUser {
			lastUser = msg.Content
		}
	}
	return fmt.Sprintf("Thanks for reaching out! You asked: %q. A member of our team will be happy to help with that.", lastUser), nil
}
