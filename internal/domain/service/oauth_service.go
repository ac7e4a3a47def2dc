package service

import (
	"context"

	"himart/internal/domain/entity"
)

// ExternalIdentity is the profile an OAuth provider asserted for a user.
type ExternalIdentity struct {
	Provider      entity.Provider
	Subject       string // Provider-specific user ID (Google 'sub', Facebook 'id')
	Email         string
	EmailVerified bool
	FirstName     string
	LastName      string
	Picture       string
	RefreshToken  string
	AccessToken   string
}

// GoogleAuthenticator runs the server-side authorization code flow.
type GoogleAuthenticator interface {
	// AuthCodeURL builds the consent URL carrying state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for tokens and verifies the returned ID token.
	Exchange(ctx context.Context, code string) (*ExternalIdentity, error)
}

// FacebookAuthenticator introspects a client-obtained access token.
type FacebookAuthenticator interface {
	Me(ctx context.Context, accessToken string) (*ExternalIdentity, error)
}
