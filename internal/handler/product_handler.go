package handler

import (
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ProductRequest is the JSON body of create and update. cost_price maps to
// the cost column.
type ProductRequest struct {
	Brand           string    `json:"brand" validate:"required"`
	ItemCode        string    `json:"item_code" validate:"required"`
	Category        string    `json:"category" validate:"required"`
	ItemName        *string   `json:"item_name"`
	PackSize        string    `json:"pack_size"`
	BrandType       string    `json:"brand_type"`
	AlsoKnownAs     string    `json:"also_known_as"`
	OemPartNo       string    `json:"oem_part_no"`
	HsnCode         string    `json:"hsn_code"`
	Description     string    `json:"description"`
	MRP             float64   `json:"mrp"`
	CostPrice       float64   `json:"cost_price"`
	SalePrice       float64   `json:"sale_price"`
	ListPrice       *float64  `json:"list_price"`
	CompatibleBikes *[]string `json:"compatible_bikes"`
}

func (r ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Brand:           r.Brand,
		ItemCode:        r.ItemCode,
		Category:        r.Category,
		ItemName:        r.ItemName,
		PackSize:        r.PackSize,
		BrandType:       r.BrandType,
		AlsoKnownAs:     r.AlsoKnownAs,
		OemPartNo:       r.OemPartNo,
		HsnCode:         r.HsnCode,
		Description:     r.Description,
		MRP:             r.MRP,
		Cost:            r.CostPrice,
		SalePrice:       r.SalePrice,
		ListPrice:       r.ListPrice,
		CompatibleBikes: r.CompatibleBikes,
	}
}

// ArchiveRequest: a missing is_archived archives.
type ArchiveRequest struct {
	IsArchived *bool `json:"is_archived"`
}

func (r ArchiveRequest) value() bool {
	if r.IsArchived == nil {
		return true
	}
	return *r.IsArchived
}

type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products", h.list)
	g.POST("/products", h.create)
	g.PUT("/products/:id", h.update)
	g.DELETE("/products/:id", h.delete)
	g.PUT("/products/:id/archive", h.archive)
}

// listProductsInput reads the product list filters shared with export.
func listProductsInput(c echo.Context) usecase.ListProductsInput {
	sortBy := c.QueryParam("sort_by")
	if sortBy == "" {
		sortBy = "id"
	}
	return usecase.ListProductsInput{
		Search:         c.QueryParam("search"),
		ShowArchived:   queryBool(c, "show_archived"),
		BrandFilter:    c.QueryParam("brand_filter"),
		CategoryFilter: c.QueryParam("category_filter"),
		SortBy:         sortBy,
		SortOrder:      c.QueryParam("sort_order"),
	}
}

func (h *ProductHandler) list(c echo.Context) error {
	in := listProductsInput(c)

	page, err := queryInt(c, "page", 1)
	if err != nil {
		return writeError(c, err)
	}
	perPage, err := queryInt(c, "per_page", 20)
	if err != nil {
		return writeError(c, err)
	}
	in.Page = page
	in.PerPage = perPage

	out, err := h.uc.ListProducts(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) create(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	id, err := h.uc.CreateProduct(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, CreatedResponse{ID: id, Message: "Product added successfully"})
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	if err := h.uc.UpdateProduct(c.Request().Context(), id, req.input()); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product updated"})
}

func (h *ProductHandler) delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.DeleteProduct(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product deleted"})
}

func (h *ProductHandler) archive(c echo.Context) error {
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
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Product updated successfully"})
}
