package statetoken_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/statetoken"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*statetoken.RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return statetoken.NewRedisStore(client), mr
}

func testPayload() statetoken.Payload {
	return statetoken.Payload{
		AccessToken:  "access-jwt",
		RefreshToken: "refresh-jwt",
		UserID:       "0b5c9d1e-8f7a-4b3c-9d2e-1f0a8b7c6d5e",
		Username:     "ann_lee",
		Email:        "a@x.com",
	}
}

func TestRedisStore_PutGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 5*time.Minute))

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testPayload(), *got)

	// Get is a pure read, the entry survives
	again, err := store.Get(ctx, tok)
	require.NoError(t, err)
	assert.NotNil(t, again)
}

func TestRedisStore_TakeIsOneTime(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 5*time.Minute))

	first, err := store.Take(ctx, tok)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, testPayload(), *first)

	second, err := store.Take(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, second, "second take must observe nothing")
}

func TestRedisStore_TakeUnknownToken(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	got, err := store.Take(ctx, statetoken.NewToken())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store, mr := newRedisStore(t)

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 300*time.Second))

	mr.FastForward(301 * time.Second)

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_ConcurrentTakeSingleWinner(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 5*time.Minute))

	const callers = 8

	var wg sync.WaitGroup
	results := make([]*statetoken.Payload, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := store.Take(ctx, tok)
			require.NoError(t, err)
			results[i] = p
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, p := range results {
		if p != nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one take may observe the payload")
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	tok := statetoken.NewToken()
	require.NoError(t, store.Put(ctx, tok, testPayload(), 5*time.Minute))
	require.NoError(t, store.Delete(ctx, tok))

	got, err := store.Get(ctx, tok)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_RejectsNonPositiveTTL(t *testing.T) {
	ctx := context.Background()
	store, _ := newRedisStore(t)

	err := store.Put(ctx, statetoken.NewToken(), testPayload(), 0)
	assert.Error(t, err)
}
