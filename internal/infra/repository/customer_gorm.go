package repository

import (
	"context"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"gorm.io/gorm"
)

var customerSearchColumns = []string{
	"name", "phone", "city", "state", "street", "owner_name", "gst", "customer_type",
}

type CustomerGormRepository struct {
	db *gorm.DB
}

func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

func (r *CustomerGormRepository) List(ctx context.Context, q repo.CustomerListQuery) ([]model.Customer, error) {
	customers := []model.Customer{}

	tx := r.db.WithContext(ctx).Model(&model.Customer{})
	if !q.ShowArchived {
		tx = tx.Where("is_archived = ?", false)
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		tx = tx.Where(searchClause(r.db, customerSearchColumns, s))
	}

	if err := tx.Order("name asc").Order("id asc").Find(&customers).Error; err != nil {
		return []model.Customer{}, err
	}
	return customers, nil
}

func (r *CustomerGormRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	var c model.Customer
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return model.Customer{}, translateError(err)
	}
	return c, nil
}

func (r *CustomerGormRepository) Create(ctx context.Context, c model.Customer) (model.Customer, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Customer{}, translateError(err)
	}
	return c, nil
}

func (r *CustomerGormRepository) CreateBulk(ctx context.Context, customers []model.Customer) error {
	if len(customers) == 0 {
		return nil
	}
	return translateError(r.db.WithContext(ctx).CreateInBatches(&customers, createBatchSize).Error)
}

func (r *CustomerGormRepository) Update(ctx context.Context, c model.Customer) error {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"name":          c.Name,
		"phone":         c.Phone,
		"city":          c.City,
		"state":         c.State,
		"pincode":       c.Pincode,
		"map_location":  c.MapLocation,
		"street":        c.Street,
		"owner_name":    c.OwnerName,
		"contact_type":  c.ContactType,
		"customer_type": c.CustomerType,
		"customer_size": c.CustomerSize,
		"gst":           c.GST,
		"is_archived":   c.IsArchived,
	})
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) SetArchived(ctx context.Context, id int64, archived bool) error {
	res := r.db.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Update("is_archived", archived)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *CustomerGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Customer{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
