package token

import (
	"errors"
	"time"

	"github.com/hoangtrungt373/chat-api-service/internal/user"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	typeRefresh = "refresh"
	defaultRole = "ROLE_USER"
)

// Claims carried by issued tokens. UserID holds the account's external id;
// the internal primary key never appears in a token. Type distinguishes
// refresh tokens from access tokens.
type Claims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Roles    string `json:"roles,omitempty"`
	Type     string `json:"type,omitempty"`
	jwt.RegisteredClaims
}

// IsRefresh reports whether the token was issued as a refresh token.
func (c *Claims) IsRefresh() bool {
	return c.Type == typeRefresh
}

// Issuer builds and validates self-contained signed tokens. Validity is
// determined solely by signature and expiry; there is no revocation list,
// so a leaked refresh token stays valid until it expires.
type Issuer struct {
	secret          []byte
	accessLifetime  time.Duration
	refreshLifetime time.Duration
}

func NewIssuer(secret string, accessLifetime, refreshLifetime time.Duration) *Issuer {
	return &Issuer{
		secret:          []byte(secret),
		accessLifetime:  accessLifetime,
		refreshLifetime: refreshLifetime,
	}
}

// IssueAccessToken mints a signed access token carrying the account's
// identity claims.
func (i *Issuer) IssueAccessToken(a *user.Account) (string, error) {
	claims := &Claims{
		UserID:   a.ExternalID,
		Email:    a.Email,
		Username: a.Username,
		Roles:    defaultRole,
	}
	return i.sign(claims, a.Email, i.accessLifetime)
}

// IssueRefreshToken mints a signed refresh token. It carries only the
// external id and the refresh type marker.
func (i *Issuer) IssueRefreshToken(a *user.Account) (string, error) {
	claims := &Claims{
		UserID: a.ExternalID,
		Type:   typeRefresh,
	}
	return i.sign(claims, a.Email, i.refreshLifetime)
}

func (i *Issuer) sign(claims *Claims, subject string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims.Subject = subject
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))

	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(i.secret)
}

// Verify parses and validates a token. It returns ErrExpiredToken when the
// expiry instant has passed and ErrInvalidToken for any signature or
// structure problem.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Refresh validates a refresh token and mints a new access token with a
// fresh expiry. The refresh token itself is not rotated or invalidated.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	if !claims.IsRefresh() {
		return "", ErrInvalidToken
	}

	fresh := &Claims{
		UserID: claims.UserID,
		Email:  claims.Subject,
		Roles:  defaultRole,
	}
	return i.sign(fresh, claims.Subject, i.accessLifetime)
}
