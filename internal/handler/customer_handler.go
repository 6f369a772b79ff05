package handler

import (
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CustomerRequest struct {
	Name         string `json:"name" validate:"required"`
	Phone        string `json:"phone"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode"`
	MapLocation  string `json:"map_location"`
	Street       string `json:"street"`
	OwnerName    string `json:"owner_name"`
	ContactType  string `json:"contact_type"`
	CustomerType string `json:"customer_type"`
	CustomerSize string `json:"customer_size"`
	GST          string `json:"gst"`
}

func (r CustomerRequest) input() usecase.CustomerInput {
	return usecase.CustomerInput{
		Name:         r.Name,
		Phone:        r.Phone,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
		MapLocation:  r.MapLocation,
		Street:       r.Street,
		OwnerName:    r.OwnerName,
		ContactType:  r.ContactType,
		CustomerType: r.CustomerType,
		CustomerSize: r.CustomerSize,
		GST:          r.GST,
	}
}

type CustomerHandler struct {
	uc *usecase.CustomerUsecase
}

func NewCustomerHandler(uc *usecase.CustomerUsecase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

func (h *CustomerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/customers", h.list)
	g.POST("/customers", h.create)
	g.PUT("/customers/:id", h.update)
	g.DELETE("/customers/:id", h.delete)
	g.PUT("/customers/:id/archive", h.archive)
}

func listCustomersInput(c echo.Context) usecase.ListCustomersInput {
	return usecase.ListCustomersInput{
		Search:       c.QueryParam("search"),
		ShowArchived: queryBool(c, "show_archived"),
	}
}

func (h *CustomerHandler) list(c echo.Context) error {
	out, err := h.uc.ListCustomers(c.Request().Context(), listCustomersInput(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) create(c echo.Context) error {
	var req CustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	id, err := h.uc.CreateCustomer(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id, Message: "Customer added successfully"})
}

func (h *CustomerHandler) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req CustomerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.UpdateCustomer(c.Request().Context(), id, req.input()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Customer updated"})
}

func (h *CustomerHandler) delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteCustomer(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Customer deleted"})
}

func (h *CustomerHandler) archive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req ArchiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.SetArchived(c.Request().Context(), id, req.value()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Customer updated successfully"})
}
