package handler

import (
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/auth/provider"
	"github.com/hoangtrungt373/chat-api-service/internal/middleware"
	"github.com/hoangtrungt373/chat-api-service/internal/statetoken"
	"github.com/hoangtrungt373/chat-api-service/internal/token"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/gin-gonic/gin"
)

// Handler wires the login flow together: provider exchange, account
// resolution, token issuance, and the state-token handoff.
type Handler struct {
	providers   *provider.Registry
	directory   *user.Directory
	issuer      *token.Issuer
	states      statetoken.Store
	frontendURL string
	stateTTL    time.Duration
}

func NewHandler(
	registry *provider.Registry,
	directory *user.Directory,
	issuer *token.Issuer,
	states statetoken.Store,
	frontendURL string,
	stateTTL time.Duration,
) *Handler {
	return &Handler{
		providers:   registry,
		directory:   directory,
		issuer:      issuer,
		states:      states,
		frontendURL: frontendURL,
		stateTTL:    stateTTL,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, auth *middleware.AuthMiddleware) {
	r.GET("/oauth2/authorization/:provider", h.login)
	r.GET("/login/oauth2/code/:provider", h.callback)

	r.POST("/auth/exchange-state", h.exchangeState)
	r.POST("/auth/refresh", h.refresh)
	r.POST("/auth/logout", h.logout)
	r.GET("/auth/user/:id", h.publicProfile)

	authed := r.Group("/auth")
	authed.Use(middleware.GinRequireAuth(auth))
	authed.GET("/user", h.currentUser)
}
