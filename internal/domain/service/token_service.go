package service

import (
	"errors"

	"himart/internal/domain/entity"
)

// ErrTokenInvalid is returned for malformed tokens or bad signatures.
var ErrTokenInvalid = errors.New("token invalid")

// ErrTokenExpired is returned for well-signed tokens past their expiry.
var ErrTokenExpired = errors.New("token expired")

// TokenService issues and verifies the signed auth token bound to a session.
type TokenService interface {
	// Issue signs claims for userID/sessionID/email with the configured token TTL.
	Issue(userID, sessionID, email string) (token string, claims *entity.SessionClaims, err error)

	// Verify checks signature and expiry.
	Verify(token string) (*entity.SessionClaims, error)

	// VerifySignature checks the signature only, returning the claims of an expired token too.
	VerifySignature(token string) (*entity.SessionClaims, error)
}
