package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoangtrungt373/chat-api-service/internal/auth"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const providerName = auth.ProviderGoogle

type Provider struct {
	oauthConfig  *oauth2.Config
	oidcProvider *oidc.Provider
	verifier     *oidc.IDTokenVerifier
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig:  oauthCfg,
		oidcProvider: oidcProvider,
		verifier:     verifier,
	}, nil
}

// Name returns the provider identifier used by the registry.
func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL builds the OAuth authorization URL with PKCE parameters.
func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
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
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("google did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("google id_token verification failed: %w", err)
	}

	attrs := make(map[string]any)
	if err := idToken.Claims(&attrs); err != nil {
		return nil, fmt.Errorf("google id_token claims parse failed: %w", err)
	}

	// Email claim priority: id_token first, userinfo endpoint as fallback.
	// Some Google accounts omit email from the id_token depending on scopes
	// granted at the consent screen.
	if s, _ := attrs["email"].(string); s == "" {
		if err := p.mergeUserInfo(ctx, token, attrs); err != nil {
			logger.Warn("google userinfo fallback failed", map[string]any{
				"error": err.Error(),
			})
		}
	}

	identity, err := auth.Normalize(providerName, attrs)
	if err != nil {
		return nil, err
	}

	if identity.ProviderUserID == "" {
		return nil, errors.New("google id_token missing sub claim")
	}

	logger.Info("google oidc verified", map[string]any{
		"issuer":          idToken.Issuer,
		"subject_present": identity.ProviderUserID != "",
		"email_present":   identity.Email != "",
		"email_verified":  identity.EmailVerified,
		"audience":        idToken.Audience,
		"expiry_unix":     idToken.Expiry.Unix(),
	})

	return identity, nil
}

// mergeUserInfo fills attrs with claims from Google's userinfo endpoint
// without overwriting claims already present from the id_token.
func (p *Provider) mergeUserInfo(
	ctx context.Context,
	token *oauth2.Token,
	attrs map[string]any,
) error {

	userInfo, err := p.oidcProvider.UserInfo(ctx, oauth2.StaticTokenSource(token))
	if err != nil {
		return fmt.Errorf("google userinfo request failed: %w", err)
	}

	extra := make(map[string]any)
	if err := userInfo.Claims(&extra); err != nil {
		return fmt.Errorf("google userinfo claims parse failed: %w", err)
	}

	for k, v := range extra {
		if _, exists := attrs[k]; !exists {
			attrs[k] = v
		}
	}
	if s, _ := attrs["email"].(string); s == "" && userInfo.Email != "" {
		attrs["email"] = userInfo.Email
		attrs["email_verified"] = userInfo.EmailVerified
	}
	return nil
}
