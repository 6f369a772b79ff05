package handler

import (
	"fmt"
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ExportHandler struct {
	uc *usecase.ExportUsecase
}

func NewExportHandler(uc *usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

func (h *ExportHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/products/export", h.products)
	g.GET("/customers/export", h.customers)
}

func (h *ExportHandler) products(c echo.Context) error {
	f, err := h.uc.ExportProducts(c.Request().Context(), listProductsInput(c), c.QueryParam("format"))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, f)
}

func (h *ExportHandler) customers(c echo.Context) error {
	f, err := h.uc.ExportCustomers(c.Request().Context(), listCustomersInput(c), c.QueryParam("format"))
	if err != nil {
		return writeError(c, err)
	}
	return attachment(c, f)
}

func attachment(c echo.Context, f usecase.ExportFile) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.Filename))
	return c.Blob(http.StatusOK, f.ContentType, f.Body)
}
