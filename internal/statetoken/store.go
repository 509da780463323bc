package statetoken

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Payload is the token bundle parked under a state token between the
// OAuth redirect and the frontend's exchange call.
type Payload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"` // account external id
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// Store holds short-lived, one-time-use state-token entries. Entries
// disappear either on Take or when their TTL elapses, whichever comes
// first.
type Store interface {
	// Put stores the payload under the token for at most ttl. Reusing a
	// token overwrites the previous entry.
	Put(ctx context.Context, token string, p Payload, ttl time.Duration) error

	// Get returns nil when no live entry matches. It does not consume
	// the entry.
	Get(ctx context.Context, token string) (*Payload, error)

	// Take atomically returns and deletes the entry. Of two concurrent
	// Take calls for the same token, exactly one observes the payload;
	// the other gets nil.
	Take(ctx context.Context, token string) (*Payload, error)

	// Delete removes the entry if present.
	Delete(ctx context.Context, token string) error
}

// NewToken generates a fresh state token. The token is a bearer
// credential for the exchange window, so it must be unguessable.
func NewToken() string {
	return uuid.NewString()
}
