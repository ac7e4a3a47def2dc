package firestore

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// userRepository reads and writes users/{id}. When tx is set every call goes through the transaction.
type userRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// NewUserRepository creates a Firestore-backed user repository.
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (repo *userRepository) doc(id string) *firestore.DocumentRef {
	return repo.client.Collection(usersCollection).Doc(id)
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	var (
		snap *firestore.DocumentSnapshot
		err  error
	)
	if repo.tx != nil {
		snap, err = repo.tx.Get(repo.doc(id))
	} else {
		snap, err = repo.doc(id).Get(ctx)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to get user")
	}

	return decodeUser(snap)
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := repo.client.Collection(usersCollection).Where("email", "==", email).Limit(1)

	var iter *firestore.DocumentIterator
	if repo.tx != nil {
		iter = repo.tx.Documents(query)
	} else {
		iter = query.Documents(ctx)
	}
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, repository.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to query user by email")
	}

	return decodeUser(snap)
}

// Create stores the user under user.ID. Email uniqueness is checked by the caller.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	var err error
	if repo.tx != nil {
		err = repo.tx.Create(repo.doc(user.ID), user)
	} else {
		_, err = repo.doc(user.ID).Create(ctx, user)
	}
	if err != nil {
		if isAlreadyExists(err) {
			return repository.ErrUserAlreadyExists
		}

		return errors.Wrap(err, "failed to create user")
	}

	return nil
}

// Update replaces an existing user. Outside a transaction the existence check and the
// write run in their own transaction.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	ref := repo.doc(user.ID)

	var err error
	if repo.tx != nil {
		err = repo.tx.Set(ref, user)
	} else {
		err = repo.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
			if _, err := tx.Get(ref); err != nil {
				return err
			}

			return tx.Set(ref, user)
		})
	}
	if err != nil {
		if isNotFound(err) {
			return repository.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to update user")
	}

	return nil
}

func decodeUser(snap *firestore.DocumentSnapshot) (*entity.User, error) {
	var user entity.User
	if err := snap.DataTo(&user); err != nil {
		return nil, errors.Wrap(err, "failed to decode user")
	}
	user.ID = snap.Ref.ID

	return &user, nil
}
