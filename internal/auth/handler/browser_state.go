package handler

import (
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/utils"

	"github.com/gin-gonic/gin"
)

// Short-lived cookies protecting the browser leg of the OAuth flow:
// a CSRF state value echoed back by the provider, and the PKCE verifier
// for the code exchange. Both are distinct from the post-login handoff
// state token, which lives in the exchange store.
const (
	csrfCookieName = "__oauth_state"
	pkceCookieName = "__oauth_pkce"
	flowCookieTTL  = 5 * time.Minute
)

func generateCSRFState(c *gin.Context) string {
	state := randomValue()
	setFlowCookie(c, csrfCookieName, state)
	return state
}

func validateCSRFState(c *gin.Context) bool {
	stateQuery := c.Query("state")
	if stateQuery == "" {
		return false
	}

	cookie, err := c.Request.Cookie(csrfCookieName)
	if err != nil {
		return false
	}
	return cookie.Value == stateQuery
}

func generatePKCE(c *gin.Context) (verifier string, challenge string) {
	verifier = randomValue()

	hash := sha256.Sum256([]byte(verifier))
	challenge = base64.RawURLEncoding.EncodeToString(hash[:])

	setFlowCookie(c, pkceCookieName, verifier)
	return verifier, challenge
}

func getPKCEVerifier(c *gin.Context) string {
	cookie, err := c.Request.Cookie(pkceCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func randomValue() string {
	return utils.RandomString(32) // 256 bits
}

func setFlowCookie(c *gin.Context, name, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(flowCookieTTL.Seconds()),
	})
}
