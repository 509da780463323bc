package handler

import (
	"net/http"
	"strings"

	"github.com/hoangtrungt373/chat-api-service/internal/logger"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/gin-gonic/gin"
)

// logout is stateless: tokens stay valid until expiry and the client
// discards them. When a valid access token accompanies the request the
// account's presence flips to OFFLINE, best-effort.
func (h *Handler) logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		claims, err := h.issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err == nil && !claims.IsRefresh() {
			account, err := h.directory.FindByExternalID(c.Request.Context(), claims.UserID)
			if err == nil && account != nil {
				_ = h.directory.SetStatus(c.Request.Context(), account.ID, user.StatusOffline)
				logger.Info("user logged out", map[string]any{
					"external_id": account.ExternalID,
				})
			}
		}
	}

	// Idempotent response
	c.Status(http.StatusNoContent)
}
