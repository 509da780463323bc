package auth_test

import (
	"testing"

	"github.com/hoangtrungt373/chat-api-service/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeGoogle(t *testing.T) {
	identity, err := auth.Normalize("google", map[string]any{
		"sub":            "g123",
		"email":          "a@x.com",
		"email_verified": true,
		"name":           "Ann Lee",
		"picture":        "https://lh3.example/photo.jpg",
	})

	require.NoError(t, err)
	assert.Equal(t, auth.ProviderGoogle, identity.Provider)
	assert.Equal(t, "g123", identity.ProviderUserID)
	assert.Equal(t, "a@x.com", identity.Email)
	assert.Equal(t, "Ann Lee", identity.DisplayName)
	assert.Equal(t, "https://lh3.example/photo.jpg", identity.AvatarURL)
	assert.True(t, identity.EmailVerified)
}

func TestNormalizeGoogle_CaseInsensitiveProviderName(t *testing.T) {
	identity, err := auth.Normalize("Google", map[string]any{
		"sub":   "g123",
		"email": "a@x.com",
	})

	require.NoError(t, err)
	assert.Equal(t, auth.ProviderGoogle, identity.Provider)
}

func TestNormalizeFacebook(t *testing.T) {
	identity, err := auth.Normalize("facebook", map[string]any{
		"id":    "fb456",
		"name":  "Bob Tran",
		"email": "bob@x.com",
		"picture": map[string]any{
			"data": map[string]any{
				"url": "https://graph.example/bob.jpg",
			},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, auth.ProviderFacebook, identity.Provider)
	assert.Equal(t, "fb456", identity.ProviderUserID)
	assert.Equal(t, "bob@x.com", identity.Email)
	assert.Equal(t, "Bob Tran", identity.DisplayName)
	assert.Equal(t, "https://graph.example/bob.jpg", identity.AvatarURL)
	assert.True(t, identity.EmailVerified)
}

func TestNormalizeFacebook_MalformedPicture(t *testing.T) {
	identity, err := auth.Normalize("facebook", map[string]any{
		"id":      "fb456",
		"email":   "bob@x.com",
		"picture": "not-an-object",
	})

	require.NoError(t, err)
	assert.Empty(t, identity.AvatarURL)
}

func TestNormalize_MissingEmail(t *testing.T) {
	for _, tc := range []struct {
		provider string
		attrs    map[string]any
	}{
		{"google", map[string]any{"sub": "g123", "name": "Ann"}},
		{"google", map[string]any{"sub": "g123", "email": "   "}},
		{"facebook", map[string]any{"id": "fb456", "name": "Bob"}},
	} {
		_, err := auth.Normalize(tc.provider, tc.attrs)
		assert.ErrorIs(t, err, auth.ErrMissingEmail, "provider %s", tc.provider)
	}
}

func TestNormalize_UnsupportedProvider(t *testing.T) {
	_, err := auth.Normalize("github", map[string]any{"email": "a@x.com"})
	assert.ErrorIs(t, err, auth.ErrUnsupportedProvider)
}
