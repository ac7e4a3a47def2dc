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

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a GORM-backed cart repository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) Find(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	var itemM model.CartItemModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&itemM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCartItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart item")
	}

	return &entity.CartItem{ProductID: itemM.ProductID, Quantity: itemM.Quantity}, nil
}

func (repo *cartRepository) Save(ctx context.Context, userID string, item *entity.CartItem) error {
	itemM := &model.CartItemModel{
		UserID:    userID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
	}).Create(itemM).Error
	if err != nil {
		return errors.Wrap(err, "failed to save cart item")
	}

	return nil
}

func (repo *cartRepository) Delete(ctx context.Context, userID, productID string) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItemModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete cart item")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCartItemNotFound
	}

	return nil
}

func (repo *cartRepository) List(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	var itemMs []*model.CartItemModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("product_id").
		Find(&itemMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	items := make([]*entity.CartItem, 0, len(itemMs))
	for _, itemM := range itemMs {
		items = append(items, &entity.CartItem{ProductID: itemM.ProductID, Quantity: itemM.Quantity})
	}

	return items, nil
}

func (repo *cartRepository) Count(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.CartItemModel{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count cart items")
	}

	return count, nil
}
