package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/techstyle/chatdesk/internal/domain"
	"github.com/techstyle/chatdesk/internal/observability"
)

const DefaultModelTimeout = 30 * time.Second

// fallbackReplies maps every model-failure category to a fixed
// user-presentable reply. These are persisted and returned as genuine
// answers; a broken model integration must never break the chat itself.
var fallbackReplies = map[domain.ModelCategory]string{
	domain.ModelAuth:        "I'm experiencing authentication issues. Please contact support for assistance.",
	domain.ModelRateLimited: "I'm receiving a lot of requests right now. Please wait a moment and try again.",
	domain.ModelUnavailable: "I'm having trouble connecting to my systems. Please try again in a few moments.",
	domain.ModelTimeout:     "I'm taking longer than expected to respond. Please try again or contact support if the issue persists.",
	domain.ModelEmpty:       "I apologize, but I couldn't generate a response. Please try rephrasing your question.",
	domain.ModelUnknown:     "I apologize, but something went wrong. Please try again or contact our support team at support@techstyle.com.",
}

// Options tunes the service. Zero values fall back to the defaults.
type Options struct {
	SystemPrompt      string
	MinMessageLen     int
	MaxMessageLen     int
	HistoryLimit      int
	ContextMessageMax int
	ModelTimeout      time.Duration
	Metrics           *observability.Metrics
}

// Service sequences a chat turn: validate, resolve the session, persist the
// user message, assemble context, call the model, persist the reply.
type Service struct {
	llm           domain.LLMClient
	conversations domain.ConversationStore
	messages      domain.MessageStore

	resolver  *SessionResolver
	assembler *ContextAssembler
	validator Validator

	modelTimeout time.Duration
	metrics      *observability.Metrics
	now          func() time.Time
}

func NewService(
	llm domain.LLMClient,
	conversations domain.ConversationStore,
	messages domain.MessageStore,
	opts Options,
) *Service {
	timeout := opts.ModelTimeout
	if timeout <= 0 {
		timeout = DefaultModelTimeout
	}

	return &Service{
		llm:           llm,
		conversations: conversations,
		messages:      messages,
		resolver:      NewSessionResolver(conversations),
		assembler:     NewContextAssembler(messages, opts.SystemPrompt, opts.HistoryLimit, opts.ContextMessageMax),
		validator:     NewValidator(opts.MinMessageLen, opts.MaxMessageLen),
		modelTimeout:  timeout,
		metrics:       opts.Metrics,
		now:           time.Now,
	}
}

type SendInput struct {
	Text         string
	SessionToken string
}

type SendOutput struct {
	Reply        string
	SessionToken string
	UserMessage  *domain.Message
	AIMessage    *domain.Message
}

// Send handles one chat turn. It fails with *domain.ValidationError on bad
// input (before any side effect) or with a storage error; model failures are
// absorbed into fallback replies and never surface to the caller.
func (s *Service) Send(ctx context.Context, in SendInput) (*SendOutput, error) {
	sanitized, err := s.validator.Validate(in.Text)
	if err != nil {
		return nil, err
	}

	convID, err := s.resolver.Resolve(ctx, in.SessionToken)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to resolve session", "error", err)
		return nil, err
	}

	log := observability.LoggerFromContext(ctx).With("conversation_id", convID)

	userMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: convID,
		Sender:         domain.SenderUser,
		Text:           sanitized,
		CreatedAt:      s.now(),
	}
	if err := s.messages.AppendMessage(ctx, userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}
	s.recordMessageStored(domain.SenderUser)

	window, err := s.assembler.Assemble(ctx, convID, sanitized)
	if err != nil {
		log.Error("failed to assemble context", "error", err)
		return nil, err
	}

	reply := s.generateReply(ctx, window, log)

	aiMsg := &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: convID,
		Sender:         domain.SenderAI,
		Text:           reply,
		CreatedAt:      s.now(),
	}
	if err := s.messages.AppendMessage(ctx, aiMsg); err != nil {
		log.Error("failed to append ai message", "error", err)
		return nil, err
	}
	s.recordMessageStored(domain.SenderAI)

	log.Info("chat turn completed", "context_size", len(window))

	return &SendOutput{
		Reply:        reply,
		SessionToken: string(convID),
		UserMessage:  userMsg,
		AIMessage:    aiMsg,
	}, nil
}

// generateReply invokes the model with a bounded wait. Every failure mode
// resolves to a deterministic fallback string; no error leaves this method.
func (s *Service) generateReply(ctx context.Context, window []domain.ChatMessage, log *slog.Logger) string {
	callCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	text, err := s.llm.Complete(callCtx, window)
	if err != nil {
		category := domain.ModelCategoryOf(err)
		if category == domain.ModelUnknown && errors.Is(err, context.DeadlineExceeded) {
			category = domain.ModelTimeout
		}
		log.Error("model call failed", "category", string(category), "error", err)
		s.recordModelCall(string(category))
		return fallbackReply(category)
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		log.Error("model returned empty text")
		s.recordModelCall(string(domain.ModelEmpty))
		return fallbackReply(domain.ModelEmpty)
	}

	s.recordModelCall("ok")
	return trimmed
}

func fallbackReply(category domain.ModelCategory) string {
	if reply, ok := fallbackReplies[category]; ok {
		return reply
	}
	return fallbackReplies[domain.ModelUnknown]
}

// History returns the full ordered message list behind a session token.
// Unlike the model-call path this read is unbounded and strict about the
// token: ErrInvalidToken for a malformed one, ErrNotFound for an unknown one.
func (s *Service) History(ctx context.Context, token string) (domain.ConversationID, []*domain.Message, error) {
	if !WellFormedToken(token) {
		return "", nil, domain.ErrInvalidToken
	}

	convID := domain.ConversationID(token)
	if _, err := s.conversations.GetConversation(ctx, convID); err != nil {
		return "", nil, err
	}

	msgs, err := s.messages.GetRecentMessages(ctx, convID, 0)
	if err != nil {
		observability.LoggerFromContext(ctx).Error("failed to load history", "conversation_id", convID, "error", err)
		return "", nil, err
	}
	return convID, msgs, nil
}

func (s *Service) recordModelCall(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordModelCall(outcome)
	}
}

func (s *Service) recordMessageStored(sender domain.Sender) {
	if s.metrics != nil {
		s.metrics.RecordMessageStored(string(sender))
	}
}
