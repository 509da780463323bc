package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/hoangtrungt373/chat-api-service/internal/apierror"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"
	"github.com/hoangtrungt373/chat-api-service/internal/token"
)

// unexported, collision-proof context key
type claimsContextKeyType struct{}

var claimsKey = claimsContextKeyType{}

// ClaimsFromContext extracts the authenticated token claims from context.
// The caller identity is always threaded explicitly this way, never read
// from ambient state.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

type AuthMiddleware struct {
	Issuer *token.Issuer
}

func NewAuthMiddleware(issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{Issuer: issuer}
}

func (a *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 1. Read bearer token
		bearer := bearerToken(r)
		if bearer == "" {
			unauthorized(w, apierror.AuthTokenMissing)
			return
		}

		// 2. Verify signature and expiry
		claims, err := a.Issuer.Verify(bearer)
		if err != nil {
			// expired-vs-malformed is logged but not exposed; the
			// client sees 401 either way
			logger.Warn("bearer token rejected", map[string]any{
				"reason": err.Error(),
			})
			unauthorized(w, apierror.AuthTokenInvalid)
			return
		}

		// 3. Refresh tokens are not access credentials
		if claims.IsRefresh() {
			unauthorized(w, apierror.AuthTokenInvalid)
			return
		}

		// 4. Attach claims to context
		ctx := context.WithValue(r.Context(), claimsKey, claims)

		// 5. Continue request
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func unauthorized(w http.ResponseWriter, code apierror.Code) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apierror.Status(code))
	_, _ = w.Write([]byte(`{"code":"` + string(code) + `","message":"unauthorized"}`))
}
