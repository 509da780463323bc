package auth

import (
	"errors"
	"fmt"
	"strings"
)

// Provider names supported for social login.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

var (
	// ErrUnsupportedProvider is returned when a provider name matches no
	// known attribute mapping.
	ErrUnsupportedProvider = errors.New("unsupported oauth provider")

	// ErrMissingEmail is returned when no email can be extracted from the
	// provider attributes. Email is the cross-provider account-linking key,
	// so an identity without one is unusable.
	ErrMissingEmail = errors.New("email not found in provider attributes")
)

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // "google" or "facebook"
	ProviderUserID string // provider-scoped unique user identifier
	Email          string // email returned by provider, always non-empty
	DisplayName    string // human-readable name, may be empty
	AvatarURL      string // profile picture URL, may be empty
	EmailVerified  bool   // whether provider asserts email ownership
}

// Normalize maps a provider-specific raw attribute payload onto one
// Identity. Each provider ships a distinct attribute shape:
//
//   - google (OIDC): sub, email, name, picture, from merged id-token and
//     userinfo claims, callers resolve the claim-priority merge.
//   - facebook (plain OAuth2): id, name, email, picture.data.url from the
//     Graph API /me response.
func Normalize(provider string, attrs map[string]any) (*Identity, error) {
	switch strings.ToLower(provider) {
	case ProviderGoogle:
		return normalizeGoogle(attrs)
	case ProviderFacebook:
		return normalizeFacebook(attrs)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, provider)
	}
}

func normalizeGoogle(attrs map[string]any) (*Identity, error) {
	email := stringAttr(attrs, "email")
	if email == "" {
		return nil, ErrMissingEmail
	}

	verified, _ := attrs["email_verified"].(bool)

	return &Identity{
		Provider:       ProviderGoogle,
		ProviderUserID: stringAttr(attrs, "sub"),
		Email:          email,
		DisplayName:    stringAttr(attrs, "name"),
		AvatarURL:      stringAttr(attrs, "picture"),
		EmailVerified:  verified,
	}, nil
}

func normalizeFacebook(attrs map[string]any) (*Identity, error) {
	email := stringAttr(attrs, "email")
	if email == "" {
		return nil, ErrMissingEmail
	}

	return &Identity{
		Provider:       ProviderFacebook,
		ProviderUserID: stringAttr(attrs, "id"),
		Email:          email,
		DisplayName:    stringAttr(attrs, "name"),
		AvatarURL:      facebookPicture(attrs),
		EmailVerified:  true, // facebook only returns confirmed emails
	}, nil
}

// facebookPicture digs the avatar URL out of the Graph API's nested
// picture object: {"picture": {"data": {"url": "..."}}}.
func facebookPicture(attrs map[string]any) string {
	picture, ok := attrs["picture"].(map[string]any)
	if !ok {
		return ""
	}
	data, ok := picture["data"].(map[string]any)
	if !ok {
		return ""
	}
	url, _ := data["url"].(string)
	return url
}

func stringAttr(attrs map[string]any, key string) string {
	v, _ := attrs[key].(string)
	return strings.TrimSpace(v)
}
