package firestore

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
)

// sellerRepository stores sellers/{userId}; the document key enforces one profile per user.
type sellerRepository struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

// NewSellerRepository creates a Firestore-backed seller repository.
func NewSellerRepository(client *firestore.Client) repository.SellerRepository {
	return &sellerRepository{client: client}
}

func (repo *sellerRepository) doc(userID string) *firestore.DocumentRef {
	return repo.client.Collection(sellersCollection).Doc(userID)
}

func (repo *sellerRepository) FindByID(ctx context.Context, userID string) (*entity.Seller, error) {
	var (
		snap *firestore.DocumentSnapshot
		err  error
	)
	if repo.tx != nil {
		snap, err = repo.tx.Get(repo.doc(userID))
	} else {
		snap, err = repo.doc(userID).Get(ctx)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrSellerNotFound
		}

		return nil, errors.Wrap(err, "failed to get seller")
	}

	var seller entity.Seller
	if err := snap.DataTo(&seller); err != nil {
		return nil, errors.Wrap(err, "failed to decode seller")
	}
	seller.ID = snap.Ref.ID

	return &seller, nil
}

func (repo *sellerRepository) Create(ctx context.Context, seller *entity.Seller) error {
	var err error
	if repo.tx != nil {
		err = repo.tx.Create(repo.doc(seller.ID), seller)
	} else {
		_, err = repo.doc(seller.ID).Create(ctx, seller)
	}
	if err != nil {
		if isAlreadyExists(err) {
			return repository.ErrSellerAlreadyExists
		}

		return errors.Wrap(err, "failed to create seller")
	}

	return nil
}
