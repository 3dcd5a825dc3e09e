package chat_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techstyle/chatdesk/internal/adapters/storage/memory"
	"github.com/techstyle/chatdesk/internal/app/chat"
)

func TestResolveIsTotal(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	resolver := chat.NewSessionResolver(store)

	existing, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	cases := map[string]string{
		"absent":    "",
		"malformed": "not-a-uuid",
		"braced":    "{" + uuid.NewString() + "}",
		"unknown":   uuid.NewString(),
		"known":     string(existing.ID),
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			id, err := resolver.Resolve(ctx, token)
			require.NoError(t, err)
			assert.NotEmpty(t, id)

			_, err = store.GetConversation(ctx, id)
			assert.NoError(t, err, "resolved id must reference a stored conversation")
		})
	}
}

func TestResolveKnownTokenKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	resolver := chat.NewSessionResolver(store)

	existing, err := store.CreateConversation(ctx)
	require.NoError(t, err)

	id, err := resolver.Resolve(ctx, string(existing.ID))
	require.NoError(t, err)
	assert.Equal(t, existing.ID, id)
}

func TestResolveWithoutTokenCreatesDistinctConversations(t *testing.T) {
	ctx := context.Background()
	resolver := chat.NewSessionResolver(memory.NewStore())

	first, err := resolver.Resolve(ctx, "")
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestWellFormedToken(t *testing.T) {
	assert.True(t, chat.WellFormedToken(uuid.NewString()))
	assert.False(t, chat.WellFormedToken(""))
	assert.False(t, chat.WellFormedToken("abc"))
	assert.False(t, chat.WellFormedToken("{"+uuid.NewString()+"}"))
	assert.False(t, chat.WellFormedToken("urn:uuid:"+uuid.NewString()))
}
