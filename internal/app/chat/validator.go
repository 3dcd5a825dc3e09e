package chat

import (
	"strings"

	"github.com/techstyle/chatdesk/internal/domain"
)

const (
	DefaultMinMessageLen = 1
	DefaultMaxMessageLen = 5000
)

// Validator checks and sanitizes inbound message text. Oversized input is
// truncated rather than rejected: degraded service beats turning the user
// away.
type Validator struct {
	MinLen int
	MaxLen int
}

func NewValidator(minLen, maxLen int) Validator {
	if minLen <= 0 {
		minLen = DefaultMinMessageLen
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLen
	}
	return Validator{MinLen: minLen, MaxLen: maxLen}
}

// Validate returns the trimmed (and possibly truncated) text. No other
// normalization happens here; escaping is a transport concern.
func (v Validator) Validate(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", &domain.ValidationError{Reason: domain.ValidationEmpty}
	}

	runes := []rune(trimmed)
	if len(runes) < v.MinLen {
		return "", &domain.ValidationError{Reason: domain.ValidationTooShort}
	}
	if len(runes) > v.MaxLen {
		return string(runes[:v.MaxLen]), nil
	}
	return trimmed, nil
}
