package repository

import (
	"context"

	"github.com/kargofit/crm/internal/domain/model"
)

type OrderRepository interface {
	// List returns every order, newest first, with Customer loaded.
	List(ctx context.Context) ([]model.Order, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// FindDetail loads Customer and Items.Product.
	FindDetail(ctx context.Context, orderID int64) (model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)
	Update(ctx context.Context, order model.Order) error
	UpdateStatus(ctx context.Context, orderID int64, status string) error
	Delete(ctx context.Context, orderID int64) error
}
