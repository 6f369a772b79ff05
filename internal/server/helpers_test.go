package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/kargofit/crm/internal/handler"
	"github.com/kargofit/crm/internal/infra/catalog"
	infraRepo "github.com/kargofit/crm/internal/infra/repository"
	"github.com/kargofit/crm/internal/infra/storage"
	"github.com/kargofit/crm/internal/infra/tabular"
	"github.com/kargofit/crm/internal/metrics"
	"github.com/kargofit/crm/internal/server"
	"github.com/kargofit/crm/internal/testutil"
	"github.com/kargofit/crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testApp struct {
	e          *echo.Echo
	db         *gorm.DB
	stagingDir string
	catalogDir string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewDB(t)
	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	stagingDir := t.TempDir()
	staging, err := storage.NewLocalStaging(stagingDir)
	require.NoError(t, err)

	catalogDir := t.TempDir()
	writeFile(t, filepath.Join(catalogDir, "brands.json"), `["Bosch","NGK"]`)
	writeFile(t, filepath.Join(catalogDir, "category.json"), `["Filters","Spark Plugs"]`)

	productRepo := infraRepo.NewProductGormRepository(db)
	customerRepo := infraRepo.NewCustomerGormRepository(db)
	bikeRepo := infraRepo.NewBikeGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)
	txm := infraRepo.NewTxManagerGorm(db)

	e := server.New(server.Options{Log: log, Metrics: m, Gatherer: reg, BodyLimit: "1M"}, server.Handlers{
		Products:  handler.NewProductHandler(usecase.NewProductUsecase(productRepo, txm, log)),
		Customers: handler.NewCustomerHandler(usecase.NewCustomerUsecase(customerRepo, log)),
		Orders:    handler.NewOrderHandler(usecase.NewOrderUsecase(txm, orderRepo, usecase.SystemClock{}, log)),
		Bikes:     handler.NewBikeHandler(usecase.NewBikeUsecase(bikeRepo, txm, log)),
		Imports:   handler.NewImportHandler(usecase.NewImportUsecase(staging, tabular.Codec{}, txm, m, log)),
		Exports:   handler.NewExportHandler(usecase.NewExportUsecase(productRepo, customerRepo, tabular.Codec{}, log)),
		Catalog:   handler.NewCatalogHandler(usecase.NewCatalogUsecase(catalog.NewFileOptions(catalogDir), log)),
	})
	return &testApp{e: e, db: db, stagingDir: stagingDir, catalogDir: catalogDir}
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// doJSON sends body (nil for none) as JSON.
func (a *testApp) doJSON(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return a.do(t, req)
}

func (a *testApp) upload(t *testing.T, path, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	return a.do(t, req)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), "body=%s", rec.Body.String())
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var er handler.ErrorResponse
	decode(t, rec, &er)
	return er.Error
}

func createdID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	require.Equal(t, http.StatusCreated, rec.Code, "body=%s", rec.Body.String())
	var cr handler.CreatedResponse
	decode(t, rec, &cr)
	return cr.ID
}
