package apierror

import "net/http"

// Code identifies an API error category. Codes are stable strings exposed
// to clients; messages are generic and never carry internal detail.
type Code string

const (
	AuthTokenInvalid Code = "AUTH_001"
	AuthTokenMissing Code = "AUTH_002"
	AuthTokenExpired Code = "AUTH_003"
	AuthUnauthorized Code = "AUTH_004"
	AuthForbidden    Code = "AUTH_005"

	OAuthStateTokenInvalid   Code = "OAUTH_001"
	OAuthStateTokenMissing   Code = "OAUTH_002"
	OAuthEmailNotFound       Code = "OAUTH_003"
	OAuthProviderUnsupported Code = "OAUTH_004"

	UserNotFound      Code = "USER_001"
	UserAlreadyExists Code = "USER_002"

	ValidationFailed Code = "VALIDATION_001"

	ServerInternal Code = "SERVER_001"
)

type apiError struct {
	code    Code
	message string
	status  int
}

var registry = map[Code]apiError{
	AuthTokenInvalid: {AuthTokenInvalid, "invalid or expired token", http.StatusUnauthorized},
	AuthTokenMissing: {AuthTokenMissing, "authorization token is required", http.StatusUnauthorized},
	AuthTokenExpired: {AuthTokenExpired, "token has expired", http.StatusUnauthorized},
	AuthUnauthorized: {AuthUnauthorized, "unauthorized access", http.StatusUnauthorized},
	AuthForbidden:    {AuthForbidden, "access denied", http.StatusForbidden},

	OAuthStateTokenInvalid:   {OAuthStateTokenInvalid, "invalid or expired state token", http.StatusUnauthorized},
	OAuthStateTokenMissing:   {OAuthStateTokenMissing, "state token is required", http.StatusBadRequest},
	OAuthEmailNotFound:       {OAuthEmailNotFound, "email not found from oauth provider", http.StatusBadRequest},
	OAuthProviderUnsupported: {OAuthProviderUnsupported, "oauth provider not supported", http.StatusBadRequest},

	UserNotFound:      {UserNotFound, "user not found", http.StatusNotFound},
	UserAlreadyExists: {UserAlreadyExists, "user already exists", http.StatusConflict},

	ValidationFailed: {ValidationFailed, "validation failed", http.StatusBadRequest},

	ServerInternal: {ServerInternal, "internal server error", http.StatusInternalServerError},
}

// Status returns the HTTP status mapped to the code.
func Status(c Code) int {
	if e, ok := registry[c]; ok {
		return e.status
	}
	return http.StatusInternalServerError
}

// Body returns the JSON response body for the code. The message is the
// registered generic one; callers must not substitute internal error text.
func Body(c Code) map[string]any {
	message := "internal server error"
	if e, ok := registry[c]; ok {
		message = e.message
	}
	return map[string]any{
		"code":    string(c),
		"message": message,
	}
}
