package chat_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstyle/chatdesk/internal/app/chat"
	"github.com/techstyle/chatdesk/internal/domain"
)

func TestValidateTrimsWhitespace(t *testing.T) {
	v := chat.NewValidator(0, 0)

	out, err := v.Validate("  hello there  \n")
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestValidateEmptyInput(t *testing.T) {
	v := chat.NewValidator(0, 0)

	for _, input := range []string{"", "   ", "\n\t  \n"} {
		_, err := v.Validate(input)

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr), "input %q should fail", input)
		assert.Equal(t, domain.ValidationEmpty, vErr.Reason)
	}
}

func TestValidateTooShort(t *testing.T) {
	v := chat.NewValidator(5, 100)

	_, err := v.Validate("hey")

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, domain.ValidationTooShort, vErr.Reason)
}

func TestValidateTruncatesInsteadOfRejecting(t *testing.T) {
	v := chat.NewValidator(1, 50)

	out, err := v.Validate(strings.Repeat("a", 200))
	require.NoError(t, err)
	assert.Len(t, []rune(out), 50)
}

func TestValidateKeepsTextAtBound(t *testing.T) {
	v := chat.NewValidator(1, 50)
	input := strings.Repeat("b", 50)

	out, err := v.Validate(input)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}
