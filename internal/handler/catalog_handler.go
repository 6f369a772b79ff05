package handler

import (
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CatalogHandler struct {
	uc *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

func (h *CatalogHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/catalog/options", h.options)
}

func (h *CatalogHandler) options(c echo.Context) error {
	out, err := h.uc.Options()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
