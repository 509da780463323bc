package user

import "time"

// Status is the presence state shown to other chat users.
type Status string

const (
	StatusOnline  Status = "ONLINE"
	StatusOffline Status = "OFFLINE"
	StatusAway    Status = "AWAY"
	StatusBusy    Status = "BUSY"
)

// ProviderLocal marks accounts created outside any social provider.
const ProviderLocal = "local"

// Account is the local user record. ID is the internal primary key and
// never leaves the service; ExternalID is the stable identifier exposed
// to clients and embedded in tokens.
type Account struct {
	ID             int64
	ExternalID     string // immutable once assigned
	Email          string // unique across providers, linking key
	Username       string // unique, derived from display name
	PasswordHash   string // bcrypt placeholder for oauth-only accounts
	DisplayName    string
	AvatarURL      string
	Provider       string
	ProviderUserID string
	EmailVerified  bool
	Enabled        bool
	Status         Status

	CreatedBy  string
	CreatedAt  time.Time
	ModifiedBy string
	ModifiedAt time.Time
	Version    int64 // optimistic concurrency token
}
