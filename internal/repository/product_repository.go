package repository

import (
	"context"

	"github.com/kargofit/crm/internal/domain/model"
)

// DefaultProductSort is used when sort_by is not in ProductSortColumns.
const DefaultProductSort = "id"

// sort_by key -> column
var ProductSortColumns = map[string]string{
	"id":         "id",
	"brand":      "brand",
	"category":   "category",
	"item_name":  "item_name",
	"mrp":        "mrp",
	"cost":       "cost",
	"sale_price": "sale_price",
}

// ProductListQuery drives the product listing. Page <= 0 disables pagination.
type ProductListQuery struct {
	Search         string
	ShowArchived   bool
	BrandFilter    string
	CategoryFilter string
	SortBy         string
	SortDesc       bool
	Page           int
	PerPage        int
}

type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	CreateBulk(ctx context.Context, products []model.Product) error
	// Update writes every scalar column; bikes are left alone.
	Update(ctx context.Context, p model.Product) error
	ReplaceBikes(ctx context.Context, productID int64, bikes []model.Bike) error
	SetArchived(ctx context.Context, id int64, archived bool) error
	Delete(ctx context.Context, id int64) error
}
