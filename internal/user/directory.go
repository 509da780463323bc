package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoangtrungt373/chat-api-service/internal/auth"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// placeholderPassword is hashed into oauth-only accounts so the password
// column is never empty. It can never authenticate: local login compares
// against the hash of user input, and this value is not accepted as input.
const placeholderPassword = "oauth2-no-password"

// Directory maps external identities onto local accounts. It is the ONLY
// place where identity-to-user resolution logic lives.
type Directory struct {
	store Store
}

func NewDirectory(store Store) *Directory {
	return &Directory{store: store}
}

// Resolve finds or creates the account for an identity, in order:
//
//  1. lookup by (provider, provider_user_id): known account, refresh profile
//  2. lookup by email: existing account under another provider, link it
//  3. create a new account
//
// Concurrent first-time logins can race past the lookups; the store's
// unique constraints reject the second insert and the loser retries the
// lookup instead of surfacing a conflict.
func (d *Directory) Resolve(ctx context.Context, identity *auth.Identity) (*Account, error) {
	if identity == nil {
		return nil, errors.New("identity is nil")
	}

	account, err := d.resolve(ctx, identity)
	if errors.Is(err, ErrDuplicate) {
		logger.Warn("account resolution conflict, retrying lookup", map[string]any{
			"provider": identity.Provider,
		})
		account, err = d.resolve(ctx, identity)
	}
	return account, err
}

// update persists the account; when a concurrent login already wrote a
// newer version, the stored row wins and is returned as-is.
func (d *Directory) update(ctx context.Context, account *Account) (*Account, error) {
	updated, err := d.store.Update(ctx, account)
	if errors.Is(err, ErrVersionConflict) {
		return d.store.FindByExternalID(ctx, account.ExternalID)
	}
	return updated, err
}

func (d *Directory) resolve(ctx context.Context, identity *auth.Identity) (*Account, error) {
	// 1. Known provider identity
	account, err := d.store.FindByProviderIdentity(ctx, identity.Provider, identity.ProviderUserID)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return d.refreshProfile(ctx, account, identity)
	}

	// 2. Email match under a different provider: link
	account, err = d.store.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, err
	}
	if account != nil {
		return d.linkProvider(ctx, account, identity)
	}

	// 3. First-time login
	return d.create(ctx, identity)
}

// refreshProfile updates mutable profile fields on every login without
// touching identity keys (external id, email, provider binding).
func (d *Directory) refreshProfile(ctx context.Context, account *Account, identity *auth.Identity) (*Account, error) {
	if identity.DisplayName != "" {
		account.DisplayName = identity.DisplayName
	}
	if identity.AvatarURL != "" {
		account.AvatarURL = identity.AvatarURL
	}
	account.ModifiedBy = "system"

	return d.update(ctx, account)
}

// linkProvider binds a new provider onto an account found by email.
// The email came back from a trusted provider, so it is marked verified.
func (d *Directory) linkProvider(ctx context.Context, account *Account, identity *auth.Identity) (*Account, error) {
	logger.Info("linking provider to existing account", map[string]any{
		"provider":    identity.Provider,
		"external_id": account.ExternalID,
	})

	account.Provider = identity.Provider
	account.ProviderUserID = identity.ProviderUserID
	account.EmailVerified = true
	if identity.DisplayName != "" {
		account.DisplayName = identity.DisplayName
	}
	if identity.AvatarURL != "" {
		account.AvatarURL = identity.AvatarURL
	}
	account.ModifiedBy = "system"

	return d.update(ctx, account)
}

func (d *Directory) create(ctx context.Context, identity *auth.Identity) (*Account, error) {
	username, err := uniqueUsername(ctx, d.store, identity.DisplayName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(placeholderPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash placeholder password: %w", err)
	}

	account := &Account{
		ExternalID:     uuid.NewString(),
		Email:          identity.Email,
		Username:       username,
		PasswordHash:   string(hash),
		DisplayName:    identity.DisplayName,
		AvatarURL:      identity.AvatarURL,
		Provider:       identity.Provider,
		ProviderUserID: identity.ProviderUserID,
		EmailVerified:  true,
		Enabled:        true,
		Status:         StatusOffline,
		CreatedBy:      "system",
		ModifiedBy:     "system",
	}

	created, err := d.store.Create(ctx, account)
	if err != nil {
		return nil, err
	}

	logger.Info("registered new oauth account", map[string]any{
		"provider":    identity.Provider,
		"external_id": created.ExternalID,
		"username":    created.Username,
	})

	return created, nil
}

// SetStatus updates the account's presence state.
func (d *Directory) SetStatus(ctx context.Context, id int64, status Status) error {
	return d.store.UpdateStatus(ctx, id, status)
}

// FindByExternalID returns nil, nil when no account matches.
func (d *Directory) FindByExternalID(ctx context.Context, externalID string) (*Account, error) {
	return d.store.FindByExternalID(ctx, externalID)
}

// FindByEmail returns nil, nil when no account matches.
func (d *Directory) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return d.store.FindByEmail(ctx, email)
}
