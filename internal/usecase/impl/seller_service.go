package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "himart/internal/delivery/context"
	"himart/internal/domain/entity"
	domainerrors "himart/internal/domain/errors"
	"himart/internal/domain/repository"
	"himart/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sellerProductLimit bounds the dashboard listing.
const sellerProductLimit = 500

type sellerService struct {
	txManager   repository.TransactionManager
	sellerRepo  repository.SellerRepository
	productRepo repository.ProductRepository
	logger      *slog.Logger
}

// SellerServiceParams holds dependencies for SellerService, injected by Fx.
type SellerServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	SellerRepo  repository.SellerRepository
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewSellerService creates a new seller service instance.
func NewSellerService(params SellerServiceParams) usecase.SellerUsecase {
	return &sellerService{
		txManager:   params.TxManager,
		sellerRepo:  params.SellerRepo,
		productRepo: params.ProductRepo,
		logger:      params.Logger,
	}
}

func (srv *sellerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the seller profile of a user and flags the user as a seller.
func (srv *sellerService) Register(ctx context.Context, userID string, input usecase.RegisterSellerInput) (*entity.Seller, error) {
	email := strings.TrimSpace(input.Email)
	if !emailPattern.MatchString(email) {
		return nil, domainerrors.ErrInvalidEmail
	}

	seller := &entity.Seller{
		ID:           userID,
		BusinessName: input.BusinessName,
		BusinessType: input.BusinessType,
		Email:        email,
		Phone:        input.Phone,
		Address:      input.Address,
		TaxID:        input.TaxID,
		AuthorID:     userID,
		CreatedAt:    time.Now().UTC(),
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sellerRepo := repoFactory.SellerRepo()
		userRepo := repoFactory.UserRepo()

		_, err := sellerRepo.FindByID(ctx, userID)
		if err == nil {
			return domainerrors.ErrSellerAlreadyExists
		}
		if !errors.Is(err, repository.ErrSellerNotFound) {
			return errors.Wrap(err, "failed to find seller")
		}

		user, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}

		if err := sellerRepo.Create(ctx, seller); err != nil {
			if errors.Is(err, repository.ErrSellerAlreadyExists) {
				return domainerrors.ErrSellerAlreadyExists
			}

			return errors.Wrap(err, "failed to create seller")
		}

		user.IsSeller = true
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to flag user as seller")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Seller registration failed", slog.String("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("Seller registered", slog.String("userID", userID))

	return seller, nil
}

// Session returns the seller profile of the user.
func (srv *sellerService) Session(ctx context.Context, userID string) (*entity.Seller, error) {
	seller, err := srv.sellerRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrSellerNotFound) {
		return nil, domainerrors.ErrSellerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find seller")
	}

	return seller, nil
}

// Products lists the catalog entries the user sells.
func (srv *sellerService) Products(ctx context.Context, userID string) ([]*entity.Product, error) {
	if _, err := srv.Session(ctx, userID); err != nil {
		return nil, err
	}

	products, err := srv.productRepo.List(ctx, repository.ProductFilter{SellerID: userID, Limit: sellerProductLimit})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list seller products")
	}

	return products, nil
}
