package chat

import (
	"context"

	"github.com/techstyle/chatdesk/internal/domain"
)

const (
	DefaultHistoryLimit      = 10
	DefaultContextMessageMax = 1000

	truncationMarker = "... [message truncated]"
)

// ContextAssembler builds the bounded context window sent to the model:
// [system instruction] + [recent history oldest to newest] + [current turn].
// Total entries are bounded by history limit + 2.
type ContextAssembler struct {
	messages     domain.MessageStore
	systemPrompt string
	historyLimit int
	messageMax   int
}

func NewContextAssembler(messages domain.MessageStore, systemPrompt string, historyLimit, messageMax int) *ContextAssembler {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	if messageMax <= 0 {
		messageMax = DefaultContextMessageMax
	}
	return &ContextAssembler{
		messages:     messages,
		systemPrompt: systemPrompt,
		historyLimit: historyLimit,
		messageMax:   messageMax,
	}
}

// Assemble loads the conversation's recent history and formats it for the
// model capability. The caller invokes it after persisting the current user
// turn, so one extra row is fetched and the trailing one (the turn's own
// echo) is dropped. latestUserText is appended last, truncated like history.
func (a *ContextAssembler) Assemble(ctx context.Context, id domain.ConversationID, latestUserText string) ([]domain.ChatMessage, error) {
	history, err := a.messages.GetRecentMessages(ctx, id, a.historyLimit+1)
	if err != nil {
		return nil, err
	}
	if n := len(history); n > 0 {
		history = history[:n-1]
	}

	out := make([]domain.ChatMessage, 0, len(history)+2)
	out = append(out, domain.ChatMessage{Role: domain.RoleSystem, Content: a.systemPrompt})

	for _, m := range history {
		role := domain.RoleUser
		if m.Sender == domain.SenderAI {
			role = domain.RoleAssistant
		}
		out = append(out, domain.ChatMessage{Role: role, Content: truncateContent(m.Text, a.messageMax)})
	}

	out = append(out, domain.ChatMessage{Role: domain.RoleUser, Content: truncateContent(latestUserText, a.messageMax)})
	return out, nil
}

// truncateContent caps a single context entry, appending a visible marker so
// the model knows content was cut. This is a cost control independent of the
// inbound validation bound.
func truncateContent(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + truncationMarker
}
