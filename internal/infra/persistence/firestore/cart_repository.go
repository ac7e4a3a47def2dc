package firestore

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
)

// cartRepository stores users/{userId}/cart/{productId}.
type cartRepository struct {
	client *firestore.Client
}

// NewCartRepository creates a Firestore-backed cart repository.
func NewCartRepository(client *firestore.Client) repository.CartRepository {
	return &cartRepository{client: client}
}

func (repo *cartRepository) collection(userID string) *firestore.CollectionRef {
	return repo.client.Collection(usersCollection).Doc(userID).Collection(cartCollection)
}

func (repo *cartRepository) Find(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	snap, err := repo.collection(userID).Doc(productID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to get cart item")
	}

	return decodeCartItem(snap)
}

func (repo *cartRepository) Save(ctx context.Context, userID string, item *entity.CartItem) error {
	if _, err := repo.collection(userID).Doc(item.ProductID).Set(ctx, item); err != nil {
		return errors.Wrap(err, "failed to save cart item")
	}

	return nil
}

func (repo *cartRepository) Delete(ctx context.Context, userID, productID string) error {
	if _, err := repo.collection(userID).Doc(productID).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return repository.ErrCartItemNotFound
		}

		return errors.Wrap(err, "failed to delete cart item")
	}

	return nil
}

func (repo *cartRepository) List(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	snaps, err := repo.collection(userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	items := make([]*entity.CartItem, 0, len(snaps))
	for _, snap := range snaps {
		item, err := decodeCartItem(snap)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (repo *cartRepository) Count(ctx context.Context, userID string) (int64, error) {
	result, err := repo.collection(userID).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count cart items")
	}

	return countResult(result), nil
}

func decodeCartItem(snap *firestore.DocumentSnapshot) (*entity.CartItem, error) {
	var item entity.CartItem
	if err := snap.DataTo(&item); err != nil {
		return nil, errors.Wrap(err, "failed to decode cart item")
	}
	if item.ProductID == "" {
		item.ProductID = snap.Ref.ID
	}

	return &item, nil
}
