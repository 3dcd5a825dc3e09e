package chat_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstyle/chatdesk/internal/adapters/storage/memory"
	"github.com/techstyle/chatdesk/internal/app/chat"
	"github.com/techstyle/chatdesk/internal/domain"
)

const testSystemPrompt = "You are a support agent."

func appendMessage(t *testing.T, store *memory.Store, id domain.ConversationID, sender domain.Sender, text string) {
	t.Helper()
	err := store.AppendMessage(context.Background(), &domain.Message{
		ID:             domain.MessageID(uuid.NewString()),
		ConversationID: id,
		Sender:         sender,
		Text:           text,
		CreatedAt:      time.Now(),
	})
	require.NoError(t, err)
}

func TestAssembleOrderingAndRoles(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	appendMessage(t, store, conv.ID, domain.SenderUser, "where is my order?")
	appendMessage(t, store, conv.ID, domain.SenderAI, "could you share the order number?")
	appendMessage(t, store, conv.ID, domain.SenderUser, "it is 12345")

	assembler := chat.NewContextAssembler(store, testSystemPrompt, 10, 1000)
	window, err := assembler.Assemble(ctx, conv.ID, "it is 12345")
	require.NoError(t, err)

	require.Len(t, window, 4)
	assert.Equal(t, domain.RoleSystem, window[0].Role)
	assert.Equal(t, testSystemPrompt, window[0].Content)
	assert.Equal(t, domain.RoleUser, window[1].Role)
	assert.Equal(t, "where is my order?", window[1].Content)
	assert.Equal(t, domain.RoleAssistant, window[2].Role)
	assert.Equal(t, domain.RoleUser, window[3].Role)
	assert.Equal(t, "it is 12345", window[3].Content)
}

func TestAssembleBoundsHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		sender := domain.SenderUser
		if i%2 == 1 {
			sender = domain.SenderAI
		}
		appendMessage(t, store, conv.ID, sender, fmt.Sprintf("message %02d", i))
	}
	appendMessage(t, store, conv.ID, domain.SenderUser, "current turn")

	assembler := chat.NewContextAssembler(store, testSystemPrompt, 10, 1000)
	window, err := assembler.Assemble(ctx, conv.ID, "current turn")
	require.NoError(t, err)

	// system + 10 history + current turn
	require.Len(t, window, 12)
	assert.Equal(t, "message 20", window[1].Content, "oldest retained entry is the cap-th most recent")
	assert.Equal(t, "message 29", window[10].Content)
	assert.Equal(t, "current turn", window[11].Content)
}

func TestAssembleEmptyHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	appendMessage(t, store, conv.ID, domain.SenderUser, "hello")

	assembler := chat.NewContextAssembler(store, testSystemPrompt, 10, 1000)
	window, err := assembler.Assemble(ctx, conv.ID, "hello")
	require.NoError(t, err)

	require.Len(t, window, 2)
	assert.Equal(t, domain.RoleSystem, window[0].Role)
	assert.Equal(t, "hello", window[1].Content)
}

func TestAssembleTruncatesLongContent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	conv, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	long := strings.Repeat("x", 2000)
	appendMessage(t, store, conv.ID, domain.SenderUser, long)
	appendMessage(t, store, conv.ID, domain.SenderAI, "short reply")
	appendMessage(t, store, conv.ID, domain.SenderUser, long)

	assembler := chat.NewContextAssembler(store, testSystemPrompt, 10, 1000)
	window, err := assembler.Assemble(ctx, conv.ID, long)
	require.NoError(t, err)

	require.Len(t, window, 4)
	for _, entry := range []domain.ChatMessage{window[1], window[3]} {
		assert.True(t, strings.HasSuffix(entry.Content, "... [message truncated]"))
		assert.Len(t, []rune(entry.Content), 1000+len([]rune("... [message truncated]")))
	}
	assert.Equal(t, "short reply", window[2].Content)
}
