// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"himart/internal/domain/entity"
)

// ClientInfo describes the caller of a login request.
type ClientInfo struct {
	IP        string
	UserAgent string
}

// CreateSessionInput binds a resolved user to the client that logged in.
type CreateSessionInput struct {
	User     *entity.User
	Client   ClientInfo
	Provider entity.Provider
}

// SessionOutput carries the token a client stores in its auth cookie.
type SessionOutput struct {
	SessionID string
	Token     string
	// TokenExpiresAt bounds the token, SessionExpiresAt bounds the session it points to.
	TokenExpiresAt   time.Time
	SessionExpiresAt time.Time
}

// SessionUsecase issues, validates and revokes login sessions.
type SessionUsecase interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*SessionOutput, error)
	// ValidateSession resolves a token to the identity of a live session. An expired session
	// is deleted before the token is rejected.
	ValidateSession(ctx context.Context, token string) (*entity.Identity, error)
	DestroySession(ctx context.Context, sessionID string) error
	// RefreshToken re-issues a token for a still-valid session, accepting an expired token.
	RefreshToken(ctx context.Context, token string) (*SessionOutput, error)
}
