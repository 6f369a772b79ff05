package handler

import (
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BikeHandler struct {
	uc *usecase.BikeUsecase
}

func NewBikeHandler(uc *usecase.BikeUsecase) *BikeHandler {
	return &BikeHandler{uc: uc}
}

func (h *BikeHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bikes", h.list)
}

// {brand: [bike names]}
func (h *BikeHandler) list(c echo.Context) error {
	out, err := h.uc.GroupedByBrand(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
