package firestore

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
)

type sessionRepository struct {
	client *firestore.Client
}

// NewSessionRepository creates a Firestore-backed session repository.
func NewSessionRepository(client *firestore.Client) repository.SessionRepository {
	return &sessionRepository{client: client}
}

func (repo *sessionRepository) doc(id string) *firestore.DocumentRef {
	return repo.client.Collection(sessionsCollection).Doc(id)
}

func (repo *sessionRepository) Create(ctx context.Context, session *entity.Session) error {
	if _, err := repo.doc(session.ID).Create(ctx, session); err != nil {
		return errors.Wrap(err, "failed to create session")
	}

	return nil
}

func (repo *sessionRepository) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	snap, err := repo.doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrSessionNotFound
		}

		return nil, errors.Wrap(err, "failed to get session")
	}

	var session entity.Session
	if err := snap.DataTo(&session); err != nil {
		return nil, errors.Wrap(err, "failed to decode session")
	}
	session.ID = snap.Ref.ID

	return &session, nil
}

// Delete without a precondition succeeds for missing documents.
func (repo *sessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := repo.doc(id).Delete(ctx); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	return nil
}
