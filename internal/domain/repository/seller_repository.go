package repository

import (
	"context"
	"errors"

	"himart/internal/domain/entity"
)

// ErrSellerNotFound is returned when a user has no seller profile.
var ErrSellerNotFound = errors.New("seller not found")

// ErrSellerAlreadyExists is returned when the user already holds a seller profile.
var ErrSellerAlreadyExists = errors.New("seller already exists")

// SellerRepository persists seller profiles keyed by the owning user's id.
type SellerRepository interface {
	FindByID(ctx context.Context, userID string) (*entity.Seller, error)
	Create(ctx context.Context, seller *entity.Seller) error
}
