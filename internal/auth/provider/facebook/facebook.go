package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/hoangtrungt373/chat-api-service/internal/auth"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"

	"golang.org/x/oauth2"
	fboauth "golang.org/x/oauth2/facebook"
)

const (
	providerName       = auth.ProviderFacebook
	defaultUserInfoURL = "https://graph.facebook.com/me?fields=id,name,email,picture"
)

// Provider implements the plain-OAuth2 (non-OIDC) Facebook login flow.
// Facebook issues no id_token, so identity facts come from a Graph API
// userinfo call made with the exchanged access token.
type Provider struct {
	oauthConfig *oauth2.Config

	// UserInfoURL is the Graph API endpoint to fetch user info from.
	// Overridable for testing.
	UserInfoURL string
}

func New(
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("facebook oauth config missing required fields")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     fboauth.Endpoint,
		Scopes: []string{
			"public_profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		UserInfoURL: defaultUserInfoURL,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL. Facebook ignores PKCE
// for confidential clients, so the challenge is passed but not required.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(
		ctx,
		code,
		oauth2.SetAuthURLParam("code_verifier", codeVerifier),
	)
	if err != nil {
		return nil, fmt.Errorf("facebook token exchange failed: %w", err)
	}

	attrs, err := p.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, err
	}

	identity, err := auth.Normalize(providerName, attrs)
	if err != nil {
		return nil, err
	}

	if identity.ProviderUserID == "" {
		return nil, errors.New("facebook userinfo missing id field")
	}

	logger.Info("facebook oauth verified", map[string]any{
		"subject_present": identity.ProviderUserID != "",
		"email_present":   identity.Email != "",
	})

	return identity, nil
}

func (p *Provider) fetchUserInfo(
	ctx context.Context,
	token *oauth2.Token,
) (map[string]any, error) {

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("facebook userinfo request build failed: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("facebook userinfo returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("facebook userinfo read failed: %w", err)
	}

	var attrs map[string]any
	if err := json.Unmarshal(body, &attrs); err != nil {
		return nil, fmt.Errorf("facebook userinfo parse failed: %w", err)
	}

	return attrs, nil
}
