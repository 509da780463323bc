package statetoken

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps state-token entries in Redis. Per-key TTL handles
// expiry; GETDEL makes Take a single atomic round trip, so two
// concurrent exchange calls can never both observe the payload.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "oauth2_state:",
	}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Put(ctx context.Context, token string, p Payload, ttl time.Duration) error {
	if token == "" {
		return fmt.Errorf("statetoken: missing token")
	}
	if ttl <= 0 {
		return fmt.Errorf("statetoken: ttl must be positive")
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("statetoken: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(token), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Payload, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, nil // not found or expired
	}
	if err != nil {
		return nil, err
	}
	return unmarshalPayload(val)
}

func (r *RedisStore) Take(ctx context.Context, token string) (*Payload, error) {
	val, err := r.client.GetDel(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, nil // not found, expired, or already consumed
	}
	if err != nil {
		return nil, err
	}
	return unmarshalPayload(val)
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, r.key(token)).Err()
}

func unmarshalPayload(val string) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(val), &p); err != nil {
		return nil, fmt.Errorf("statetoken: failed to unmarshal: %w", err)
	}
	return &p, nil
}
