package llm

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstyle/chatdesk/internal/domain"
)

func TestClassifyOpenAIError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.ModelCategory
	}{
		{"unauthorized", &openai.APIError{HTTPStatusCode: 401}, domain.ModelAuth},
		{"forbidden", &openai.APIError{HTTPStatusCode: 403}, domain.ModelAuth},
		{"rate limited", &openai.APIError{HTTPStatusCode: 429}, domain.ModelRateLimited},
		{"server error", &openai.APIError{HTTPStatusCode: 500}, domain.ModelUnavailable},
		{"bad gateway", &openai.APIError{HTTPStatusCode: 503}, domain.ModelUnavailable},
		{"deadline", context.DeadlineExceeded, domain.ModelTimeout},
		{"other", errors.New("connection refused"), domain.ModelUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classifyOpenAIError(tc.err)
			assert.Equal(t, tc.want, got.Category)
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestCompleteWithoutAPIKey(t *testing.T) {
	client := NewOpenAIClient("", "gpt-4o-mini", 500, 0.7)

	_, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleUser, Content: "hi"},
	})

	require.Error(t, err)
	assert.Equal(t, domain.ModelAuth, domain.ModelCategoryOf(err))
}

func TestToOpenAIMessages(t *testing.T) {
	out := toOpenAIMessages([]domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "be helpful"},
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "hi there"},
	})

	require.Len(t, out, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, out[0].Role)
	assert.Equal(t, openai.ChatMessageRoleUser, out[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, out[2].Role)
}

func TestMockClientEchoesLastUserMessage(t *testing.T) {
	client := NewMockClient()

	reply, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "be helpful"},
		{Role: domain.RoleUser, Content: "old question"},
		{Role: domain.RoleAssistant, Content: "old answer"},
		{Role: domain.RoleUser, Content: "where is my package?"},
	})

	require.NoError(t, err)
	assert.Contains(t, reply, "where is my package?")
}
