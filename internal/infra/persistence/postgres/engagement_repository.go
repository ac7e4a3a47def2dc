package postgres

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a GORM-backed engagement repository.
func NewEngagementRepository(db *gorm.DB) repository.EngagementRepository {
	return &engagementRepository{db: db}
}

func (repo *engagementRepository) Exists(ctx context.Context, kind entity.EngagementKind, productID, userID string) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.EngagementModel{}).
		Where("kind = ? AND product_id = ? AND user_id = ?", string(kind), productID, userID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check engagement")
	}

	return count > 0, nil
}

// Record inserts the engagement once. A repeated rating overwrites the score; other kinds keep the first record.
func (repo *engagementRepository) Record(ctx context.Context, engagement *entity.Engagement) error {
	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "product_id"}, {Name: "user_id"}},
		DoNothing: true,
	}
	if engagement.Kind == entity.EngagementRating {
		onConflict.DoNothing = false
		onConflict.DoUpdates = clause.AssignmentColumns([]string{"rating"})
	}

	engagementM := &model.EngagementModel{
		Kind:      string(engagement.Kind),
		ProductID: engagement.ProductID,
		UserID:    engagement.UserID,
		Rating:    engagement.Rating,
		CreatedAt: engagement.Timestamp,
	}

	if err := repo.db.WithContext(ctx).Clauses(onConflict).Create(engagementM).Error; err != nil {
		return errors.Wrap(err, "failed to record engagement")
	}

	return nil
}

func (repo *engagementRepository) Count(ctx context.Context, kind entity.EngagementKind, productID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.EngagementModel{}).
		Where("kind = ? AND product_id = ?", string(kind), productID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrapf(err, "failed to count %s", kind)
	}

	return count, nil
}

func (repo *engagementRepository) DeleteAll(ctx context.Context, productID string) error {
	err := repo.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&model.EngagementModel{}).Error
	if err != nil {
		return errors.Wrap(err, "failed to delete engagements")
	}

	return nil
}
