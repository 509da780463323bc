package statetoken_test

import (
	"context"
	"testing"
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/statetoken"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_TakeIsOneTime(t *testing.T) {
	ctx := context.Background()
	store := statetoken.NewMemoryStore()

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 5*time.Minute))

	first, err := store.Take(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := store.Take(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, second)
}

func TestMemoryStore_ExpiredEntryIsAbsent(t *testing.T) {
	ctx := context.Background()
	store := statetoken.NewMemoryStore()

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), time.Millisecond))

	time.Sleep(5 * time.Millisecond)

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, got)

	taken, err := store.Take(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, taken)
}

func TestMemoryStore_OverwriteSameToken(t *testing.T) {
	ctx := context.Background()
	store := statetoken.NewMemoryStore()

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 5*time.Minute))

	replacement := testPayload()
	replacement.Username = "someone_else"
	require.NoError(t, store.Put(ctx, tok, replacement, 5*time.Minute))

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "someone_else", got.Username)
}

func TestNewToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := statetoken.NewToken()
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}
