package service

import (
	"context"

	"himart/internal/domain/entity"
)

// GeoLocator resolves a client IP to an approximate location.
type GeoLocator interface {
	Locate(ctx context.Context, ip string) (*entity.GeoLocation, error)
}
