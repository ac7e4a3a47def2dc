package usecase

import (
	"context"

	"himart/internal/domain/entity"
)

// RegisterSellerInput is the seller onboarding form.
type RegisterSellerInput struct {
	BusinessName string
	BusinessType string
	Email        string
	Phone        string
	Address      string
	TaxID        string
}

// SellerUsecase promotes users to sellers and serves their dashboard data.
type SellerUsecase interface {
	Register(ctx context.Context, userID string, input RegisterSellerInput) (*entity.Seller, error)
	Session(ctx context.Context, userID string) (*entity.Seller, error)
	Products(ctx context.Context, userID string) ([]*entity.Product, error)
}
