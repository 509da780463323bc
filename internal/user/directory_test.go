package user_test

import (
	"context"
	"sync"
	"testing"

	"github.com/hoangtrungt373/chat-api-service/internal/auth"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func googleIdentity() *auth.Identity {
	return &auth.Identity{
		Provider:       auth.ProviderGoogle,
		ProviderUserID: "g123",
		Email:          "a@x.com",
		DisplayName:    "Ann Lee",
		AvatarURL:      "https://lh3.example/ann.jpg",
		EmailVerified:  true,
	}
}

func TestResolve_CreatesNewAccount(t *testing.T) {
	ctx := context.Background()
	directory := user.NewDirectory(user.NewMemoryStore())

	account, err := directory.Resolve(ctx, googleIdentity())
	require.NoError(t, err)

	assert.Equal(t, "ann_lee", account.Username)
	assert.Equal(t, "a@x.com", account.Email)
	assert.Equal(t, auth.ProviderGoogle, account.Provider)
	assert.Equal(t, "g123", account.ProviderUserID)
	assert.True(t, account.EmailVerified)
	assert.True(t, account.Enabled)
	assert.Equal(t, user.StatusOffline, account.Status)
	assert.NotEmpty(t, account.PasswordHash)

	_, err = uuid.Parse(account.ExternalID)
	assert.NoError(t, err, "external id must be a uuid")
}

func TestResolve_RepeatLoginUpdatesProfileOnly(t *testing.T) {
	ctx := context.Background()
	directory := user.NewDirectory(user.NewMemoryStore())

	first, err := directory.Resolve(ctx, googleIdentity())
	require.NoError(t, err)

	identity := googleIdentity()
	identity.DisplayName = "Ann B. Lee"
	identity.AvatarURL = "https://lh3.example/ann2.jpg"

	second, err := directory.Resolve(ctx, identity)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ExternalID, second.ExternalID)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, "Ann B. Lee", second.DisplayName)
	assert.Equal(t, "https://lh3.example/ann2.jpg", second.AvatarURL)
}

func TestResolve_LinksSecondProviderByEmail(t *testing.T) {
	ctx := context.Background()
	directory := user.NewDirectory(user.NewMemoryStore())

	created, err := directory.Resolve(ctx, googleIdentity())
	require.NoError(t, err)

	facebookIdentity := &auth.Identity{
		Provider:       auth.ProviderFacebook,
		ProviderUserID: "fb456",
		Email:          "a@x.com",
		DisplayName:    "Ann Lee",
	}

	linked, err := directory.Resolve(ctx, facebookIdentity)
	require.NoError(t, err)

	// one account, provider fields now reflect facebook
	assert.Equal(t, created.ID, linked.ID)
	assert.Equal(t, created.ExternalID, linked.ExternalID)
	assert.Equal(t, auth.ProviderFacebook, linked.Provider)
	assert.Equal(t, "fb456", linked.ProviderUserID)
	assert.True(t, linked.EmailVerified)
}

func TestResolve_ConcurrentFirstLoginsCreateOneAccount(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()
	directory := user.NewDirectory(store)

	const workers = 16

	var wg sync.WaitGroup
	results := make([]*user.Account, workers)
	errs := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = directory.Resolve(ctx, googleIdentity())
		}(i)
	}
	wg.Wait()

	ids := make(map[int64]bool)
	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i], "worker %d", i)
		ids[results[i].ID] = true
	}
	assert.Len(t, ids, 1, "all logins must resolve to the same account")
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	store := user.NewMemoryStore()
	directory := user.NewDirectory(store)

	account, err := directory.Resolve(ctx, googleIdentity())
	require.NoError(t, err)

	require.NoError(t, directory.SetStatus(ctx, account.ID, user.StatusOnline))

	reloaded, err := directory.FindByExternalID(ctx, account.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, user.StatusOnline, reloaded.Status)
}
