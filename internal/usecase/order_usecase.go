package usecase

import (
	"context"
	"net/http"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

const orderReferenceError = "invalid customer or product reference"

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	clock  Clock
	log    *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, orders repo.OrderRepository, clock Clock, log *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, orders: orders, clock: clock, log: log}
}

// Line values are stored as given.
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
	TaxAmount float64
	LineTotal float64
}

type CreateOrderInput struct {
	CustomerID      *int64
	DeliveryCharges *float64
	TotalAmount     float64
	Status          *string
	Items           []OrderItemInput
}

// UpdateOrderInput is a patch: nil fields keep the stored value. A non-nil
// Items replaces every line, even when empty.
type UpdateOrderInput struct {
	CustomerID      *int64
	DeliveryCharges *float64
	TotalAmount     *float64
	Status          *string
	Items           *[]OrderItemInput
}

type OrderSummaryOutput struct {
	ID              int64   `json:"id"`
	CustomerID      *int64  `json:"customer_id"`
	OrderDate       string  `json:"order_date"`
	DeliveryCharges float64 `json:"delivery_charges"`
	TotalAmount     float64 `json:"total_amount"`
	Status          string  `json:"status"`
	CustomerName    *string `json:"customer_name"`
}

type OrderItemOutput struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"order_id"`
	ProductID int64   `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	TaxAmount float64 `json:"tax_amount"`
	LineTotal float64 `json:"line_total"`
	ItemCode  *string `json:"item_code"`
	Brand     *string `json:"brand"`
	PackSize  *string `json:"pack_size"`
	ItemName  *string `json:"item_name"`
}

type OrderDetailOutput struct {
	OrderSummaryOutput
	Phone *string           `json:"phone"`
	City  *string           `json:"city"`
	GST   *string           `json:"gst"`
	Items []OrderItemOutput `json:"items"`
}

func toOrderItems(in []OrderItemInput) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(in))
	for _, it := range in {
		items = append(items, model.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxAmount: it.TaxAmount,
			LineTotal: it.LineTotal,
		})
	}
	return items
}

func toOrderSummary(o model.Order) OrderSummaryOutput {
	out := OrderSummaryOutput{
		ID:              o.ID,
		CustomerID:      o.CustomerID,
		OrderDate:       o.OrderDate,
		DeliveryCharges: o.DeliveryCharges,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
	}
	if o.Customer != nil {
		out.CustomerName = strPtr(o.Customer.Name)
	}
	return out
}

func strPtr(s string) *string { return &s }

func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (int64, error) {
	order := model.Order{
		CustomerID:  in.CustomerID,
		OrderDate:   u.clock.Now().Format(model.OrderDateLayout),
		TotalAmount: in.TotalAmount,
		Status:      model.OrderStatusDraft,
	}
	if in.DeliveryCharges != nil {
		order.DeliveryCharges = *in.DeliveryCharges
	}
	if in.Status != nil {
		order.Status = *in.Status
	}

	var orderID int64
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		orderID = id
		return r.OrderItems().CreateBulk(ctx, id, toOrderItems(in.Items))
	})
	if err != nil {
		return 0, repoError(u.log, "create order", err, "", orderReferenceError)
	}
	return orderID, nil
}

func (u *OrderUsecase) UpdateOrder(ctx context.Context, orderID int64, in UpdateOrderInput) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if in.CustomerID != nil {
			o.CustomerID = in.CustomerID
		}
		if in.DeliveryCharges != nil {
			o.DeliveryCharges = *in.DeliveryCharges
		}
		if in.TotalAmount != nil {
			o.TotalAmount = *in.TotalAmount
		}
		if in.Status != nil {
			o.Status = *in.Status
		}
		if err := r.Orders().Update(ctx, o); err != nil {
			return err
		}

		if in.Items == nil {
			return nil
		}
		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return err
		}
		return r.OrderItems().CreateBulk(ctx, orderID, toOrderItems(*in.Items))
	})
	return repoError(u.log, "update order", err, "Order not found", orderReferenceError)
}

func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.orders.UpdateStatus(ctx, orderID, status)
	return repoError(u.log, "update order status", err, "Order not found", "")
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Orders().Delete(ctx, orderID)
	})
	return repoError(u.log, "delete order", err, "Order not found", "")
}

func (u *OrderUsecase) ListOrders(ctx context.Context) ([]OrderSummaryOutput, error) {
	orders, err := u.orders.List(ctx)
	if err != nil {
		return []OrderSummaryOutput{}, repoError(u.log, "list orders", err, "", "")
	}
	out := make([]OrderSummaryOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderSummary(o))
	}
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (OrderDetailOutput, error) {
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orders.FindDetail(ctx, orderID)
	if err != nil {
		return OrderDetailOutput{}, repoError(u.log, "get order", err, "Order not found", "")
	}

	out := OrderDetailOutput{
		OrderSummaryOutput: toOrderSummary(o),
		Items:              make([]OrderItemOutput, 0, len(o.Items)),
	}
	if o.Customer != nil {
		out.Phone = strPtr(o.Customer.Phone)
		out.City = strPtr(o.Customer.City)
		out.GST = strPtr(o.Customer.GST)
	}
	for _, it := range o.Items {
		item := OrderItemOutput{
			ID:        it.ID,
			OrderID:   it.OrderID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			TaxAmount: it.TaxAmount,
			LineTotal: it.LineTotal,
		}
		if it.Product != nil {
			item.ItemCode = strPtr(it.Product.ItemCode)
			item.Brand = strPtr(it.Product.Brand)
			item.PackSize = strPtr(it.Product.PackSize)
			item.ItemName = strPtr(it.Product.ItemName)
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
