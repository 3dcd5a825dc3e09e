package llm

import (
	"context"
	"errors"
	"net"

	openai "github.com/sashabaranov/go-openai"

	"github.com/techstyle/chatdesk/internal/domain"
)

// OpenAIClient implements domain.LLMClient on the OpenAI chat-completions API.
type OpenAIClient struct {
	client      *openai.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float32
}

func NewOpenAIClient(apiKey, model string, maxTokens int, temperature float32) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(apiKey),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "", &domain.ModelCallError{
			Category: domain.ModelAuth,
			Err:      errors.New("openai api key not configured"),
		}
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		Messages:    toOpenAIMessages(messages),
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &domain.ModelCallError{
			Category: domain.ModelEmpty,
			Err:      errors.New("openai returned no content"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []domain.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case domain.RoleSystem:
			role = openai.ChatMessageRoleSystem
		case domain.RoleAssistant:
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func classifyOpenAIError(err error) *domain.ModelCallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ModelCallError{Category: domain.ModelTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &domain.ModelCallError{Category: domain.ModelTimeout, Err: err}
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == 401 || apiErr.HTTPStatusCode == 403:
			return &domain.ModelCallError{Category: domain.ModelAuth, Err: err}
		case apiErr.HTTPStatusCode == 429:
			return &domain.ModelCallError{Category: domain.ModelRateLimited, Err: err}
		case apiErr.HTTPStatusCode >= 500:
			return &domain.ModelCallError{Category: domain.ModelUnavailable, Err: err}
		}
	}

	return &domain.ModelCallError{Category: domain.ModelUnknown, Err: err}
}
