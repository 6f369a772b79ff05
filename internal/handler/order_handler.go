package handler

import (
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderItemRequest struct {
	ProductID *int64   `json:"product_id" validate:"required"`
	Quantity  *int     `json:"quantity" validate:"required"`
	UnitPrice *float64 `json:"unit_price" validate:"required"`
	TaxAmount *float64 `json:"tax_amount" validate:"required"`
	LineTotal *float64 `json:"line_total" validate:"required"`
}

type OrderCreateRequest struct {
	CustomerID      *int64             `json:"customer_id" validate:"required"`
	DeliveryCharges *float64           `json:"delivery_charges"`
	TotalAmount     *float64           `json:"total_amount" validate:"required"`
	Status          *string            `json:"status"`
	Items           []OrderItemRequest `json:"items" validate:"required,dive"`
}

// OrderUpdateRequest: absent fields keep their value; items present replaces
// every line.
type OrderUpdateRequest struct {
	CustomerID      *int64              `json:"customer_id"`
	DeliveryCharges *float64            `json:"delivery_charges"`
	TotalAmount     *float64            `json:"total_amount"`
	Status          *string             `json:"status"`
	Items           *[]OrderItemRequest `json:"items"`
}

type OrderStatusRequest struct {
	Status *string `json:"status" validate:"required"`
}

func toItemInputs(items []OrderItemRequest) []usecase.OrderItemInput {
	out := make([]usecase.OrderItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.OrderItemInput{
			ProductID: *it.ProductID,
			Quantity:  *it.Quantity,
			UnitPrice: *it.UnitPrice,
			TaxAmount: *it.TaxAmount,
			LineTotal: *it.LineTotal,
		})
	}
	return out
}

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/orders", h.list)
	g.POST("/orders", h.create)
	g.GET("/orders/:id", h.detail)
	g.PUT("/orders/:id", h.update)
	g.DELETE("/orders/:id", h.delete)
	g.PUT("/orders/:id/status", h.updateStatus)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	id, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		CustomerID:      req.CustomerID,
		DeliveryCharges: req.DeliveryCharges,
		TotalAmount:     *req.TotalAmount,
		Status:          req.Status,
		Items:           toItemInputs(req.Items),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id, Message: "Order created successfully"})
}

func (h *OrderHandler) list(c echo.Context) error {
	out, err := h.uc.ListOrders(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req OrderUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	in := usecase.UpdateOrderInput{
		CustomerID:      req.CustomerID,
		DeliveryCharges: req.DeliveryCharges,
		TotalAmount:     req.TotalAmount,
		Status:          req.Status,
	}
	if req.Items != nil {
		for i := range *req.Items {
			if err := c.Validate(&(*req.Items)[i]); err != nil {
				return writeError(c, err)
			}
		}
		items := toItemInputs(*req.Items)
		in.Items = &items
	}

	if err := h.uc.UpdateOrder(c.Request().Context(), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, CreatedResponse{ID: id, Message: "Order updated successfully"})
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req OrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.UpdateStatus(c.Request().Context(), id, *req.Status); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Status updated"})
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteOrder(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Order deleted"})
}
