package postgres

import (
	"context"

	"himart/internal/domain/entity"
	"himart/internal/domain/repository"
	"himart/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository creates a GORM-backed seller repository.
func NewSellerRepository(db *gorm.DB) repository.SellerRepository {
	return &sellerRepository{db: db}
}

func (repo *sellerRepository) FindByID(ctx context.Context, userID string) (*entity.Seller, error) {
	var sellerM model.SellerModel
	err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&sellerM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSellerNotFound
		}

		return nil, errors.Wrap(err, "failed to find seller")
	}

	return &entity.Seller{
		ID:           sellerM.UserID,
		BusinessName: sellerM.BusinessName,
		BusinessType: sellerM.BusinessType,
		BusinessLogo: sellerM.BusinessLogo,
		Email:        sellerM.Email,
		Phone:        sellerM.Phone,
		Address:      sellerM.Address,
		TaxID:        sellerM.TaxID,
		AuthorID:     sellerM.AuthorID,
		CreatedAt:    sellerM.CreatedAt,
	}, nil
}

// Create inserts the profile keyed by seller.ID; a second profile for the same user is rejected.
func (repo *sellerRepository) Create(ctx context.Context, seller *entity.Seller) error {
	sellerM := &model.SellerModel{
		UserID:       seller.ID,
		BusinessName: seller.BusinessName,
		BusinessType: seller.BusinessType,
		BusinessLogo: seller.BusinessLogo,
		Email:        seller.Email,
		Phone:        seller.Phone,
		Address:      seller.Address,
		TaxID:        seller.TaxID,
		AuthorID:     seller.AuthorID,
		CreatedAt:    seller.CreatedAt,
	}

	if err := repo.db.WithContext(ctx).Create(sellerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrSellerAlreadyExists
		}

		return errors.Wrap(err, "failed to create seller")
	}

	return nil
}
