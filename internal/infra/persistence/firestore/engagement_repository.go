package firestore

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

// engagementRepository keeps products/{productId}/{kind}/{userId} marker documents.
type engagementRepository struct {
	client *firestore.Client
}

// NewEngagementRepository creates a Firestore-backed engagement repository.
func NewEngagementRepository(client *firestore.Client) repository.EngagementRepository {
	return &engagementRepository{client: client}
}

func (repo *engagementRepository) collection(kind entity.EngagementKind, productID string) *firestore.CollectionRef {
	return repo.client.Collection(productsCollection).Doc(productID).Collection(string(kind))
}

func (repo *engagementRepository) Exists(ctx context.Context, kind entity.EngagementKind, productID, userID string) (bool, error) {
	_, err := repo.collection(kind, productID).Doc(userID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to check engagement")
	}

	return true, nil
}

// Record creates the marker once. Ratings overwrite the previous score.
func (repo *engagementRepository) Record(ctx context.Context, engagement *entity.Engagement) error {
	ref := repo.collection(engagement.Kind, engagement.ProductID).Doc(engagement.UserID)

	data := map[string]any{"timestamp": engagement.Timestamp}
	if engagement.Kind == entity.EngagementRating {
		data["rating"] = engagement.Rating
		if _, err := ref.Set(ctx, data); err != nil {
			return errors.Wrap(err, "failed to record rating")
		}

		return nil
	}

	if _, err := ref.Create(ctx, data); err != nil && !isAlreadyExists(err) {
		return errors.Wrapf(err, "failed to record %s", engagement.Kind)
	}

	return nil
}

func (repo *engagementRepository) Count(ctx context.Context, kind entity.EngagementKind, productID string) (int64, error) {
	result, err := repo.collection(kind, productID).NewAggregationQuery().WithCount("all").Get(ctx)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", kind)
	}

	return countResult(result), nil
}

// DeleteAll removes the marker documents of every kind through a bulk writer.
func (repo *engagementRepository) DeleteAll(ctx context.Context, productID string) error {
	writer := repo.client.BulkWriter(ctx)
	defer writer.End()

	for _, kind := range entity.EngagementKinds {
		iter := repo.collection(kind, productID).Documents(ctx)
		for {
			snap, err := iter.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				iter.Stop()

				return errors.Wrapf(err, "failed to list %s", kind)
			}
			if _, err := writer.Delete(snap.Ref); err != nil {
				iter.Stop()

				return errors.Wrapf(err, "failed to enqueue delete of %s", snap.Ref.Path)
			}
		}
		iter.Stop()
	}

	writer.Flush()

	return nil
}
