package repository

import (
	"context"
	"errors"

	"himart/internal/domain/entity"
)

// ErrSessionNotFound is returned when a session record does not exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository persists login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}
