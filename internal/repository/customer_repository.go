package repository

import (
	"context"

	"github.com/kargofit/crm/internal/domain/model"
)

type CustomerListQuery struct {
	Search       string
	ShowArchived bool
}

type CustomerRepository interface {
	// List is ordered by name ascending.
	List(ctx context.Context, q CustomerListQuery) ([]model.Customer, error)
	FindByID(ctx context.Context, id int64) (model.Customer, error)

	Create(ctx context.Context, c model.Customer) (model.Customer, error)
	CreateBulk(ctx context.Context, customers []model.Customer) error
	Update(ctx context.Context, c model.Customer) error
	SetArchived(ctx context.Context, id int64, archived bool) error
	Delete(ctx context.Context, id int64) error
}
