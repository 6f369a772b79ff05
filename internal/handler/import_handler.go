package handler

import (
	"net/http"

	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type BulkImportRequest struct {
	Filename string            `json:"filename"`
	Mapping  map[string]string `json:"mapping"`
}

// ImportHandler serves the two-step CSV import for products and customers.
type ImportHandler struct {
	uc *usecase.ImportUsecase
}

func NewImportHandler(uc *usecase.ImportUsecase) *ImportHandler {
	return &ImportHandler{uc: uc}
}

func (h *ImportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/products/analyze_upload", h.analyze(usecase.ImportProducts))
	g.POST("/products/bulk_import", h.bulkImport(usecase.ImportProducts))
	g.POST("/customers/analyze_upload", h.analyze(usecase.ImportCustomers))
	g.POST("/customers/bulk_import", h.bulkImport(usecase.ImportCustomers))
}

func (h *ImportHandler) analyze(entity usecase.ImportEntity) echo.HandlerFunc {
	return func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "No file part"})
		}

		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error analyzing file: " + err.Error()})
		}
		defer src.Close()

		out, err := h.uc.AnalyzeUpload(c.Request().Context(), entity, fh.Filename, src)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}

func (h *ImportHandler) bulkImport(entity usecase.ImportEntity) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req BulkImportRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
		}

		out, err := h.uc.BulkImport(c.Request().Context(), entity, usecase.BulkImportInput{
			Filename: req.Filename,
			Mapping:  req.Mapping,
		})
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(http.StatusOK, out)
	}
}
