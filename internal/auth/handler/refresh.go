package handler

import (
	"net/http"

	"github.com/hoangtrungt373/chat-api-service/internal/apierror"
	"github.com/hoangtrungt373/chat-api-service/internal/logger"

	"github.com/gin-gonic/gin"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// refresh mints a new access token from a valid refresh token. Wrong-type,
// malformed, and expired tokens all map to 401; the distinction is logged
// only.
func (h *Handler) refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		code := apierror.ValidationFailed
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	accessToken, err := h.issuer.Refresh(req.RefreshToken)
	if err != nil {
		logger.Warn("refresh token rejected", map[string]any{
			"reason": err.Error(),
		})
		code := apierror.AuthTokenInvalid
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	c.JSON(http.StatusOK, refreshResponse{AccessToken: accessToken})
}
