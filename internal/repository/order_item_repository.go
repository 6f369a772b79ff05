package repository

import (
	"context"

	"github.com/kargofit/crm/internal/domain/model"
)

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
