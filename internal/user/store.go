package user

import (
	"context"
	"errors"
)

var (
	// ErrDuplicate is returned by Create when a unique constraint
	// (email, username, or provider identity) rejects the insert.
	ErrDuplicate = errors.New("user: duplicate account")

	// ErrVersionConflict is returned by Update when the account was
	// modified concurrently since it was read.
	ErrVersionConflict = errors.New("user: stale account version")
)

// Store defines how user accounts are persisted. Implementations must
// enforce uniqueness of email, username, and (provider, provider_user_id)
// at the storage layer so that concurrent first-time logins cannot create
// duplicate accounts.
type Store interface {
	// FindByProviderIdentity returns nil, nil when no account matches.
	FindByProviderIdentity(ctx context.Context, provider, providerUserID string) (*Account, error)

	// FindByEmail returns nil, nil when no account matches.
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByExternalID returns nil, nil when no account matches.
	FindByExternalID(ctx context.Context, externalID string) (*Account, error)

	UsernameExists(ctx context.Context, username string) (bool, error)

	// Create inserts a new account and returns it with storage-assigned
	// fields (internal id, audit timestamps) populated.
	Create(ctx context.Context, a *Account) (*Account, error)

	// Update persists profile and provider-link changes. The write is
	// guarded by the account's version.
	Update(ctx context.Context, a *Account) (*Account, error)

	UpdateStatus(ctx context.Context, id int64, status Status) error
}
