package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/techstyle/chatdesk/internal/domain"
)

// GeminiClient implements domain.LLMClient on Vertex AI (Gemini).
type GeminiClient struct {
	client      *genai.Client
	modelName   string
	maxTokens   int32
	temperature float32
}

func NewGeminiClient(ctx context.Context, projectID, location, modelName string, maxTokens int, temperature float32) (*GeminiClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("project and location must be set for the gemini client")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		modelName:   modelName,
		maxTokens:   int32(maxTokens),
		temperature: temperature,
	}, nil
}

func (c *GeminiClient) Complete(ctx context.Context, messages []domain.ChatMessage) (string, error) {
	var system string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			if system != "" {
				system += "\n"
			}
			system += m.Content
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	temp := c.temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: c.maxTokens,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	res, err := c.client.Models.GenerateContent(ctx, c.modelName, contents, cfg)
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := res.Text()
	if text == "" {
		return "", &domain.ModelCallError{
			Category: domain.ModelEmpty,
			Err:      errors.New("gemini returned empty text"),
		}
	}
	return text, nil
}

func classifyGeminiError(err error) *domain.ModelCallError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.ModelCallError{Category: domain.ModelTimeout, Err: err}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 401 || apiErr.Code == 403:
			return &domain.ModelCallError{Category: domain.ModelAuth, Err: err}
		case apiErr.Code == 429:
			return &domain.ModelCallError{Category: domain.ModelRateLimited, Err: err}
		case apiErr.Code >= 500:
			return &domain.ModelCallError{Category: domain.ModelUnavailable, Err: err}
		}
	}

	return &domain.ModelCallError{Category: domain.ModelUnknown, Err: err}
}
