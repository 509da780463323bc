package handler

import (
	"net/http"
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/apierror"
	"github.com/hoangtrungt373/chat-api-service/internal/middleware"
	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/gin-gonic/gin"
)

type profileResponse struct {
	ID            string    `json:"id"` // external id
	Username      string    `json:"username"`
	Email         string    `json:"email,omitempty"`
	DisplayName   string    `json:"displayName,omitempty"`
	AvatarURL     string    `json:"avatarUrl,omitempty"`
	Provider      string    `json:"provider,omitempty"`
	EmailVerified bool      `json:"emailVerified,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

// currentUser returns the caller's own profile, resolved from the bearer
// token claims attached by the auth middleware.
func (h *Handler) currentUser(c *gin.Context) {
	claims, ok := middleware.ClaimsFromContext(c.Request.Context())
	if !ok {
		code := apierror.AuthUnauthorized
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	account, err := h.directory.FindByExternalID(c.Request.Context(), claims.UserID)
	if err != nil {
		code := apierror.ServerInternal
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}
	if account == nil {
		code := apierror.UserNotFound
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	c.JSON(http.StatusOK, ownProfile(account))
}

// publicProfile returns another user's profile by external id. Email and
// verification state are private and omitted.
func (h *Handler) publicProfile(c *gin.Context) {
	account, err := h.directory.FindByExternalID(c.Request.Context(), c.Param("id"))
	if err != nil {
		code := apierror.ServerInternal
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}
	if account == nil {
		code := apierror.UserNotFound
		c.JSON(apierror.Status(code), apierror.Body(code))
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		ID:          account.ExternalID,
		Username:    account.Username,
		DisplayName: account.DisplayName,
		AvatarURL:   account.AvatarURL,
		Status:      string(account.Status),
		CreatedAt:   account.CreatedAt,
	})
}

func ownProfile(account *user.Account) profileResponse {
	return profileResponse{
		ID:            account.ExternalID,
		Username:      account.Username,
		Email:         account.Email,
		DisplayName:   account.DisplayName,
		AvatarURL:     account.AvatarURL,
		Provider:      account.Provider,
		EmailVerified: account.EmailVerified,
		Status:        string(account.Status),
		CreatedAt:     account.CreatedAt,
	}
}
