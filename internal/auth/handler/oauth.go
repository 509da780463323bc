package handler

import (
	"errors"
	"net/http"

	"github.com/hoangtrungt373/chat-api-service/internal/auth"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"
	"github.com/hoangtrungt373/chat-api-service/internal/statetoken"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/gin-gonic/gin"
)

// Frontend error reasons for login failures that happen mid-redirect.
// The browser is navigating, so there is no JSON channel; failures
// degrade to an opaque query parameter, never a raw 5xx.
const (
	errEmailNotFound = "email_not_found"
	errUserNotFound  = "user_not_found"
	errLoginFailed   = "login_failed"
)

func (h *Handler) login(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	state := generateCSRFState(c)
	_, codeChallenge := generatePKCE(c)

	authURL := p.AuthCodeURL(state, codeChallenge)
	c.Redirect(http.StatusFound, authURL)
}

// callback runs the login pipeline after the provider redirects back:
// code exchange, identity normalization, account resolution, token
// issuance, and the state-token handoff to the frontend.
func (h *Handler) callback(c *gin.Context) {
	providerName := c.Param("provider")

	p, err := h.providers.Get(providerName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "unknown oauth provider",
		})
		return
	}

	if !validateCSRFState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "invalid state",
		})
		return
	}

	// Provider declined the flow (user cancelled consent, etc).
	// Send the user back to start a fresh login.
	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("oauth callback returned error", map[string]any{
			"provider": providerName,
			"error":    errParam,
			"desc":     c.Query("error_description"),
		})
		c.Redirect(http.StatusFound, h.frontendURL+"/login")
		return
	}

	code := c.Query("code")
	if code == "" {
		logger.Error("oauth callback missing code and error", nil)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	codeVerifier := getPKCEVerifier(c)
	if codeVerifier == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "missing pkce verifier",
		})
		return
	}

	identity, err := p.ExchangeCode(c.Request.Context(), code, codeVerifier)
	if err != nil {
		if errors.Is(err, auth.ErrMissingEmail) {
			h.failLogin(c, errEmailNotFound)
			return
		}
		logger.Warn("provider code exchange failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "authentication failed",
		})
		return
	}

	account, err := h.directory.Resolve(c.Request.Context(), identity)
	if err != nil {
		logger.Error("failed to resolve account", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		h.failLogin(c, errUserNotFound)
		return
	}

	if err := h.directory.SetStatus(c.Request.Context(), account.ID, user.StatusOnline); err != nil {
		logger.Warn("failed to set online status", map[string]any{
			"external_id": account.ExternalID,
			"error":       err.Error(),
		})
	}

	accessToken, err := h.issuer.IssueAccessToken(account)
	if err != nil {
		logger.Error("access token issuance failed", map[string]any{
			"error": err.Error(),
		})
		h.failLogin(c, errLoginFailed)
		return
	}

	refreshToken, err := h.issuer.IssueRefreshToken(account)
	if err != nil {
		logger.Error("refresh token issuance failed", map[string]any{
			"error": err.Error(),
		})
		h.failLogin(c, errLoginFailed)
		return
	}

	// Park the token pair under a fresh one-time state token; the browser
	// only ever sees that opaque value in the redirect URL.
	stateToken := statetoken.NewToken()
	payload := statetoken.Payload{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       account.ExternalID,
		Username:     account.Username,
		Email:        account.Email,
	}

	if err := h.states.Put(c.Request.Context(), stateToken, payload, h.stateTTL); err != nil {
		logger.Error("failed to store state token", map[string]any{
			"error": err.Error(),
		})
		h.failLogin(c, errLoginFailed)
		return
	}

	logger.Info("oauth login successful", map[string]any{
		"provider":    providerName,
		"external_id": account.ExternalID,
		"username":    account.Username,
	})

	c.Redirect(http.StatusFound, h.frontendURL+"/auth/callback?state="+stateToken)
}

func (h *Handler) failLogin(c *gin.Context, reason string) {
	c.Redirect(http.StatusFound, h.frontendURL+"/login?error="+reason)
}
