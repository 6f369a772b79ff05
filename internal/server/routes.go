package server

import (
	"net/http"

	"github.com/kargofit/crm/internal/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups every API handler mounted under /api.
type Handlers struct {
	Products  *handler.ProductHandler
	Customers *handler.CustomerHandler
	Orders    *handler.OrderHandler
	Bikes     *handler.BikeHandler
	Imports   *handler.ImportHandler
	Exports   *handler.ExportHandler
	Catalog   *handler.CatalogHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, gatherer prometheus.Gatherer) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := e.Group("/api")
	h.Products.RegisterRoutes(api)
	h.Customers.RegisterRoutes(api)
	h.Orders.RegisterRoutes(api)
	h.Bikes.RegisterRoutes(api)
	h.Imports.RegisterRoutes(api)
	h.Exports.RegisterRoutes(api)
	h.Catalog.RegisterRoutes(api)
}
