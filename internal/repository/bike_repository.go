package repository

import (
	"context"

	"github.com/kargofit/crm/internal/domain/model"
)

type BikeRepository interface {
	// ListOrdered returns every bike ordered by brand, then name.
	ListOrdered(ctx context.Context) ([]model.Bike, error)
	FindByName(ctx context.Context, name string) (model.Bike, error)
	Create(ctx context.Context, b model.Bike) (model.Bike, error)
	UpdateBrand(ctx context.Context, id int64, brand string) error

	// FindOrCreateByName returns the first bike with name, creating it
	// (model = name) when absent.
	FindOrCreateByName(ctx context.Context, name string) (model.Bike, error)
}
