package entity

import "time"

// Provider tags how a session was established.
type Provider string

const (
	ProviderCredentials Provider = "credentials"
	ProviderGoogle      Provider = "google"
	ProviderFacebook    Provider = "facebook"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

// IsValid checks if the Provider is a known value.
func (p Provider) IsValid() bool {
	switch p {
	case ProviderCredentials, ProviderGoogle, ProviderFacebook:
		return true
	default:
		return false
	}
}

// Identity is what an authenticated request carries: who, and through which session.
// It deliberately holds no profile data.
type Identity struct {
	UserID    string
	SessionID string
}

// SessionClaims are the fields bound into a signed auth token.
type SessionClaims struct {
	UserID    string
	SessionID string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
