package handler

import (
	"net/http"

	"github.com/hoangtrungt373/chat-api-service/internal/apierror"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"

	"github.com/gin-gonic/gin"
)

type exchangeStateRequest struct {
	State string `json:"state"`
}

type exchangeStateResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

// exchangeState trades a one-time state token for the JWT pair parked
// during the OAuth redirect. The take is atomic: concurrent duplicate
// exchanges cannot both succeed. The response never distinguishes
// never-seen, expired, and already-consumed tokens.
func (h *Handler) exchangeState(c *gin.Context) {
	var req exchangeStateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.State == "" {
		code := apierror.OAuthStateTokenMissing
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	payload, err := h.states.Take(c.Request.Context(), req.State)
	if err != nil {
		logger.Error("state token store unavailable", map[string]any{
			"error": err.Error(),
		})
		code := apierror.ServerInternal
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	if payload == nil {
		logger.Warn("invalid or expired state token", nil)
		code := apierror.OAuthStateTokenInvalid
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	logger.Info("exchanged state token", map[string]any{
		"external_id": payload.UserID,
	})

	c.JSON(http.StatusOK, exchangeStateResponse{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		UserID:       payload.UserID,
		Username:     payload.Username,
		Email:        payload.Email,
	})
}
