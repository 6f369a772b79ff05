package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
)

type ProductUsecase struct {
	products repo.ProductRepository
	tx       repo.TransactionManager
	log      *zap.Logger
}

// DI
func NewProductUsecase(products repo.ProductRepository, tx repo.TransactionManager, log *zap.Logger) *ProductUsecase {
	return &ProductUsecase{products: products, tx: tx, log: log}
}

// GET /api/products
type ListProductsInput struct {
	Search         string
	ShowArchived   bool
	BrandFilter    string
	CategoryFilter string
	SortBy         string
	SortOrder      string
	Page           int
	PerPage        int
}

type ProductOutput struct {
	ID              int64    `json:"id"`
	Brand           string   `json:"brand"`
	ItemCode        string   `json:"item_code"`
	PackSize        string   `json:"pack_size"`
	Category        string   `json:"category"`
	MRP             float64  `json:"mrp"`
	CostPrice       float64  `json:"cost_price"`
	SalePrice       float64  `json:"sale_price"`
	BrandType       string   `json:"brand_type"`
	ItemName        string   `json:"item_name"`
	AlsoKnownAs     string   `json:"also_known_as"`
	OemPartNo       string   `json:"oem_part_no"`
	ListPrice       *float64 `json:"list_price"`
	HsnCode         string   `json:"hsn_code"`
	Description     string   `json:"description"`
	CompatibleBikes []string `json:"compatible_bikes"`
	IsArchived      bool     `json:"is_archived"`
}

type ProductListOutput struct {
	Items       []ProductOutput `json:"items"`
	Total       int64           `json:"total"`
	Pages       int             `json:"pages"`
	CurrentPage int             `json:"current_page"`
	PerPage     int             `json:"per_page"`
}

// ProductInput is the create/update payload. A nil ItemName keeps the stored
// value on update; a nil CompatibleBikes leaves the association alone.
type ProductInput struct {
	Brand           string
	ItemCode        string
	Category        string
	ItemName        *string
	PackSize        string
	BrandType       string
	AlsoKnownAs     string
	OemPartNo       string
	HsnCode         string
	Description     string
	MRP             float64
	Cost            float64
	SalePrice       float64
	ListPrice       *float64
	CompatibleBikes *[]string
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:              p.ID,
		Brand:           p.Brand,
		ItemCode:        p.ItemCode,
		PackSize:        p.PackSize,
		Category:        p.Category,
		MRP:             p.MRP,
		CostPrice:       p.Cost,
		SalePrice:       p.SalePrice,
		BrandType:       p.BrandType,
		ItemName:        p.ItemName,
		AlsoKnownAs:     p.AlsoKnownAs,
		OemPartNo:       p.OemPartNo,
		ListPrice:       p.ListPrice,
		HsnCode:         p.HsnCode,
		Description:     p.Description,
		CompatibleBikes: p.BikeNames(),
		IsArchived:      p.IsArchived,
	}
}

func productListQuery(in ListProductsInput) repo.ProductListQuery {
	return repo.ProductListQuery{
		Search:         strings.TrimSpace(in.Search),
		ShowArchived:   in.ShowArchived,
		BrandFilter:    strings.TrimSpace(in.BrandFilter),
		CategoryFilter: strings.TrimSpace(in.CategoryFilter),
		SortBy:         in.SortBy,
		SortDesc:       in.SortOrder != "asc",
	}
}

func pageCount(total int64, perPage int) int {
	pages := total / int64(perPage)
	if total%int64(perPage) != 0 {
		pages++
	}
	return int(pages)
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		in.Page = defaultPage
	}
	if in.PerPage < 1 {
		in.PerPage = defaultPerPage
	}

	q := productListQuery(in)
	q.Page = in.Page
	q.PerPage = in.PerPage

	items, total, err := u.products.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, repoError(u.log, "list products", err, "", "")
	}

	out := ProductListOutput{
		Items:       make([]ProductOutput, 0, len(items)),
		Total:       total,
		Pages:       pageCount(total, in.PerPage),
		CurrentPage: in.Page,
		PerPage:     in.PerPage,
	}
	for _, p := range items {
		out.Items = append(out.Items, toProductOutput(p))
	}
	return out, nil
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (int64, error) {
	p := model.Product{
		Brand:       in.Brand,
		ItemCode:    in.ItemCode,
		Category:    in.Category,
		PackSize:    in.PackSize,
		BrandType:   in.BrandType,
		AlsoKnownAs: in.AlsoKnownAs,
		OemPartNo:   in.OemPartNo,
		HsnCode:     in.HsnCode,
		Description: in.Description,
		MRP:         in.MRP,
		Cost:        in.Cost,
		SalePrice:   in.SalePrice,
		ListPrice:   normalizeListPrice(in.ListPrice),
	}
	if in.ItemName != nil {
		p.ItemName = *in.ItemName
	}

	var id int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.CompatibleBikes != nil {
			bikes, err := resolveBikes(ctx, r.Bikes(), *in.CompatibleBikes)
			if err != nil {
				return err
			}
			p.CompatibleBikes = bikes
		}
		created, err := r.Products().Create(ctx, p)
		if err != nil {
			return err
		}
		id = created.ID
		return nil
	})
	if err != nil {
		return 0, repoError(u.log, "create product", err, "", "invalid product")
	}
	return id, nil
}

func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in ProductInput) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Products().FindByID(ctx, productID)
		if err != nil {
			return err
		}

		p.Brand = in.Brand
		p.ItemCode = in.ItemCode
		p.Category = in.Category
		if in.ItemName != nil {
			p.ItemName = *in.ItemName
		}
		p.PackSize = in.PackSize
		p.BrandType = in.BrandType
		p.AlsoKnownAs = in.AlsoKnownAs
		p.OemPartNo = in.OemPartNo
		p.HsnCode = in.HsnCode
		p.Description = in.Description
		p.MRP = in.MRP
		p.Cost = in.Cost
		p.SalePrice = in.SalePrice
		p.ListPrice = normalizeListPrice(in.ListPrice)

		if err := r.Products().Update(ctx, p); err != nil {
			return err
		}

		if in.CompatibleBikes == nil {
			return nil
		}
		bikes, err := resolveBikes(ctx, r.Bikes(), *in.CompatibleBikes)
		if err != nil {
			return err
		}
		return r.Products().ReplaceBikes(ctx, productID, bikes)
	})
	return repoError(u.log, "update product", err, "Product not found", "invalid product")
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Products().Delete(ctx, productID)
	})
	return repoError(u.log, "delete product", err, "Product not found", "product is referenced by orders")
}

func (u *ProductUsecase) SetArchived(ctx context.Context, productID int64, archived bool) error {
	if productID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.products.SetArchived(ctx, productID, archived)
	return repoError(u.log, "archive product", err, "Product not found", "")
}

// resolveBikes maps names to bikes, creating the missing ones. Duplicate
// names resolve to one bike.
func resolveBikes(ctx context.Context, bikes repo.BikeRepository, names []string) ([]model.Bike, error) {
	out := make([]model.Bike, 0, len(names))
	seen := make(map[int64]bool, len(names))
	for _, name := range names {
		b, err := bikes.FindOrCreateByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if seen[b.ID] {
			continue
		}
		seen[b.ID] = true
		out = append(out, b)
	}
	return out, nil
}

// a zero list price is stored as NULL
func normalizeListPrice(v *float64) *float64 {
	if v == nil || *v == 0 {
		return nil
	}
	x := *v
	return &x
}
