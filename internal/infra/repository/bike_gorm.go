package repository

import (
	"context"
	"errors"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"gorm.io/gorm"
)

type BikeGormRepository struct {
	db *gorm.DB
}

func NewBikeGormRepository(db *gorm.DB) *BikeGormRepository {
	return &BikeGormRepository{db: db}
}

func (r *BikeGormRepository) ListOrdered(ctx context.Context) ([]model.Bike, error) {
	bikes := []model.Bike{}
	if err := r.db.WithContext(ctx).Order("brand asc").Order("name asc").Order("id asc").Find(&bikes).Error; err != nil {
		return []model.Bike{}, err
	}
	return bikes, nil
}

// FindByName returns the lowest-id bike with name.
func (r *BikeGormRepository) FindByName(ctx context.Context, name string) (model.Bike, error) {
	var b model.Bike
	if err := r.db.WithContext(ctx).Where("name = ?", name).Order("id asc").First(&b).Error; err != nil {
		return model.Bike{}, translateError(err)
	}
	return b, nil
}

func (r *BikeGormRepository) Create(ctx context.Context, b model.Bike) (model.Bike, error) {
	if err := r.db.WithContext(ctx).Create(&b).Error; err != nil {
		return model.Bike{}, translateError(err)
	}
	return b, nil
}

func (r *BikeGormRepository) UpdateBrand(ctx context.Context, id int64, brand string) error {
	res := r.db.WithContext(ctx).Model(&model.Bike{}).Where("id = ?", id).Update("brand", brand)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *BikeGormRepository) FindOrCreateByName(ctx context.Context, name string) (model.Bike, error) {
	b, err := r.FindByName(ctx, name)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Bike{}, err
	}
	return r.Create(ctx, model.Bike{Name: name, Model: name})
}
