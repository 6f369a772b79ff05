package repository

import (
	"context"
	"math"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"gorm.io/gorm"
)

const createBatchSize = 100

var productSearchColumns = []string{
	"item_name", "brand", "category", "item_code", "oem_part_no", "also_known_as", "description",
}

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// List filters, sorts and optionally paginates products. total counts the
// filtered set before pagination.
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	products := []model.Product{}
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Product{})

	if !q.ShowArchived {
		tx = tx.Where("is_archived = ?", false)
	}
	if s := strings.TrimSpace(q.BrandFilter); s != "" {
		tx = tx.Where(ciContains("brand"), likeContains(s))
	}
	if s := strings.TrimSpace(q.CategoryFilter); s != "" {
		tx = tx.Where(ciContains("category"), likeContains(s))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where(searchClause(r.db, productSearchColumns, s))
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Product{}, 0, err
	}

	col, ok := repo.ProductSortColumns[q.SortBy]
	if !ok {
		col = repo.DefaultProductSort
	}
	dir := " asc"
	if q.SortDesc {
		dir = " desc"
	}
	tx = tx.Order(col + dir)
	if col != "id" {
		tx = tx.Order("id" + dir)
	}

	if q.Page > 0 && q.PerPage > 0 {
		// an offset that would overflow int lies past every row
		if q.Page-1 > math.MaxInt/q.PerPage {
			return products, total, nil
		}
		tx = tx.Offset((q.Page - 1) * q.PerPage).Limit(q.PerPage)
	}

	if err := tx.Preload("CompatibleBikes").Find(&products).Error; err != nil {
		return []model.Product{}, 0, err
	}
	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Preload("CompatibleBikes").First(&p, id).Error
	if err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

// Create inserts p and links CompatibleBikes, which must already exist.
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Omit("CompatibleBikes.*").Create(&p).Error; err != nil {
		return model.Product{}, translateError(err)
	}
	return p, nil
}

func (r *ProductGormRepository) CreateBulk(ctx context.Context, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Omit("CompatibleBikes").CreateInBatches(&products, createBatchSize).Error
	return translateError(err)
}

func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"category":      p.Category,
		"brand":         p.Brand,
		"brand_type":    p.BrandType,
		"item_name":     p.ItemName,
		"also_known_as": p.AlsoKnownAs,
		"oem_part_no":   p.OemPartNo,
		"item_code":     p.ItemCode,
		"list_price":    p.ListPrice,
		"mrp":           p.MRP,
		"cost":          p.Cost,
		"sale_price":    p.SalePrice,
		"pack_size":     p.PackSize,
		"hsn_code":      p.HsnCode,
		"description":   p.Description,
		"is_archived":   p.IsArchived,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// ReplaceBikes swaps the whole compatible-bike set of a product.
func (r *ProductGormRepository) ReplaceBikes(ctx context.Context, productID int64, bikes []model.Bike) error {
	p := model.Product{ID: productID}
	assoc := r.db.WithContext(ctx).Model(&p).Association("CompatibleBikes")
	if len(bikes) == 0 {
		return translateError(assoc.Clear())
	}
	return translateError(assoc.Replace(bikes))
}

func (r *ProductGormRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("is_archived", archived)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Delete removes the product together with its bike links.
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	p := model.Product{ID: id}
	if err := r.db.WithContext(ctx).Model(&p).Association("CompatibleBikes").Clear(); err != nil {
		return translateError(err)
	}
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// searchClause ORs a case-insensitive substring match over cols.
func searchClause(db *gorm.DB, cols []string, term string) *gorm.DB {
	pattern := likeContains(term)
	cond := db.Where(ciContains(cols[0]), pattern)
	for _, c := range cols[1:] {
		cond = cond.Or(ciContains(c), pattern)
	}
	return cond
}
