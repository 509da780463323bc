package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/middleware"
	"github.com/hoangtrungt373/chat-api-service/internal/token"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(accessLifetime time.Duration) *token.Issuer {
	return token.NewIssuer("test-secret-key-for-testing-purposes-only", accessLifetime, 24*time.Hour)
}

func testAccount() *user.Account {
	return &user.Account{
		ExternalID: "0b5c9d1e-8f7a-4b3c-9d2e-1f0a8b7c6d5e",
		Email:      "a@x.com",
		Username:   "ann_lee",
	}
}

func protectedHandler(t *testing.T, sawClaims **token.Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		require.True(t, ok)
		*sawClaims = claims
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_ValidToken(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	auth := middleware.NewAuthMiddleware(issuer)

	signed, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	var claims *token.Claims
	handler := auth.RequireAuth(protectedHandler(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, claims)
	assert.Equal(t, testAccount().ExternalID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	auth := middleware.NewAuthMiddleware(newTestIssuer(time.Hour))

	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_002")
}

func TestRequireAuth_MalformedHeader(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	auth := middleware.NewAuthMiddleware(issuer)

	signed, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", signed) // no Bearer prefix
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	issuer := newTestIssuer(-time.Minute)
	auth := middleware.NewAuthMiddleware(issuer)

	signed, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	auth := middleware.NewAuthMiddleware(issuer)

	refresh, err := issuer.IssueRefreshToken(testAccount())
	require.NoError(t, err)

	handler := auth.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
