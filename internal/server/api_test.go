package server_test

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/kargofit/crm/internal/handler"
	"github.com/kargofit/crm/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthAndMetrics(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	app.doJSON(t, http.MethodGet, "/api/products", nil)
	rec = app.doJSON(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/api/products",status="200"} 1`)
}

func TestProductsAPI_Lifecycle(t *testing.T) {
	app := newTestApp(t)

	id := createdID(t, app.doJSON(t, http.MethodPost, "/api/products", map[string]interface{}{
		"brand": "NGK", "item_code": "NG-1", "category": "Spark Plugs", "item_name": "Iridium plug",
		"mrp": 450, "cost_price": 300, "list_price": 0,
		"compatible_bikes": []string{"Pulsar 150", "Activa"},
	}))

	rec := app.doJSON(t, http.MethodGet, "/api/products?search=iridium", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list usecase.ProductListOutput
	decode(t, rec, &list)
	require.Len(t, list.Items, 1)
	p := list.Items[0]
	assert.Equal(t, id, p.ID)
	assert.Equal(t, 300.0, p.CostPrice)
	assert.Nil(t, p.ListPrice)
	assert.ElementsMatch(t, []string{"Pulsar 150", "Activa"}, p.CompatibleBikes)
	assert.Equal(t, 1, list.Pages)
	assert.Equal(t, 20, list.PerPage)

	// bikes created on the fly show up ungrouped
	rec = app.doJSON(t, http.MethodGet, "/api/bikes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var bikes map[string][]string
	decode(t, rec, &bikes)
	assert.ElementsMatch(t, []string{"Pulsar 150", "Activa"}, bikes["Other"])

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/products/%d", id), map[string]interface{}{
		"brand": "NGK", "item_code": "NG-1", "category": "Spark Plugs", "mrp": 480, "compatible_bikes": []string{},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/products/%d/archive", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Product updated successfully"}`, rec.Body.String())

	rec = app.doJSON(t, http.MethodGet, "/api/products", nil)
	decode(t, rec, &list)
	assert.Empty(t, list.Items)

	rec = app.doJSON(t, http.MethodGet, "/api/products?show_archived=true", nil)
	decode(t, rec, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Iridium plug", list.Items[0].ItemName)
	assert.Equal(t, 480.0, list.Items[0].MRP)
	assert.Empty(t, list.Items[0].CompatibleBikes)
	assert.True(t, list.Items[0].IsArchived)

	rec = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", errorOf(t, rec))
}

func TestProductsAPI_BadRequests(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodPost, "/api/products", map[string]interface{}{"brand": "NGK", "item_code": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "category is required", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPost, "/api/products", `{"brand":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid body", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPut, "/api/products/abc", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodGet, "/api/products?page=two", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid page", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPut, "/api/products/77", map[string]interface{}{
		"brand": "a", "item_code": "b", "category": "c",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCustomersAPI_Lifecycle(t *testing.T) {
	app := newTestApp(t)

	id := createdID(t, app.doJSON(t, http.MethodPost, "/api/customers", map[string]interface{}{
		"name": "Apex Autos", "city": "Pune", "gst": "27AB",
	}))
	createdID(t, app.doJSON(t, http.MethodPost, "/api/customers", map[string]interface{}{"name": "Bolt Garage"}))

	rec := app.doJSON(t, http.MethodPost, "/api/customers", map[string]interface{}{"city": "Pune"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name is required", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/customers/%d", id), map[string]interface{}{"name": "Apex Motors", "city": "Nashik"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/customers/%d/archive", id), map[string]interface{}{"is_archived": true})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.doJSON(t, http.MethodGet, "/api/customers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var customers []map[string]interface{}
	decode(t, rec, &customers)
	require.Len(t, customers, 1)
	assert.Equal(t, "Bolt Garage", customers[0]["name"])

	rec = app.doJSON(t, http.MethodGet, "/api/customers?show_archived=true&search=nashik", nil)
	decode(t, rec, &customers)
	require.Len(t, customers, 1)
	assert.Equal(t, "Apex Motors", customers[0]["name"])

	rec = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/customers/%d", id), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrdersAPI_Lifecycle(t *testing.T) {
	app := newTestApp(t)

	customerID := createdID(t, app.doJSON(t, http.MethodPost, "/api/customers", map[string]interface{}{"name": "Apex", "phone": "98200"}))
	productID := createdID(t, app.doJSON(t, http.MethodPost, "/api/products", map[string]interface{}{
		"brand": "NGK", "item_code": "NG-1", "category": "Spark Plugs", "item_name": "Plug",
	}))

	item := map[string]interface{}{"product_id": productID, "quantity": 2, "unit_price": 100, "tax_amount": 18, "line_total": 218}
	orderID := createdID(t, app.doJSON(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id": customerID, "total_amount": 218, "items": []interface{}{item},
	}))

	rec := app.doJSON(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail usecase.OrderDetailOutput
	decode(t, rec, &detail)
	assert.Equal(t, "Draft", detail.Status)
	assert.Equal(t, "Apex", *detail.CustomerName)
	assert.Equal(t, "98200", *detail.Phone)
	assert.Len(t, detail.OrderDate, len("2006-01-02 15:04:05"))
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "Plug", *detail.Items[0].ItemName)

	// referenced products cannot be deleted
	rec = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/products/%d", productID), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "product is referenced by orders", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), map[string]interface{}{"items": []interface{}{
		map[string]interface{}{"product_id": productID, "quantity": 1},
	}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unit_price is required", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/orders/%d", orderID), map[string]interface{}{"total_amount": 300, "items": []interface{}{}})
	require.Equal(t, http.StatusOK, rec.Code)
	var cr handler.CreatedResponse
	decode(t, rec, &cr)
	assert.Equal(t, orderID, cr.ID)

	rec = app.doJSON(t, http.MethodPut, fmt.Sprintf("/api/orders/%d/status", orderID), map[string]interface{}{"status": "Shipped"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.doJSON(t, http.MethodGet, "/api/orders", nil)
	var orders []usecase.OrderSummaryOutput
	decode(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "Shipped", orders[0].Status)
	assert.Equal(t, 300.0, orders[0].TotalAmount)

	rec = app.doJSON(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	decode(t, rec, &detail)
	assert.Empty(t, detail.Items)

	rec = app.doJSON(t, http.MethodDelete, fmt.Sprintf("/api/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = app.doJSON(t, http.MethodGet, fmt.Sprintf("/api/orders/%d", orderID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", errorOf(t, rec))
}

func TestOrdersAPI_Validation(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodPost, "/api/orders", map[string]interface{}{"total_amount": 10, "items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "customer_id is required", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"customer_id": 1, "total_amount": 10,
		"items": []interface{}{map[string]interface{}{"quantity": 1, "unit_price": 1, "tax_amount": 0, "line_total": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "items[0].product_id is required", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPost, "/api/orders", map[string]interface{}{"customer_id": 404, "total_amount": 10, "items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid customer or product reference", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPut, "/api/orders/5/status", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "status is required", errorOf(t, rec))
}

func TestImportAPI_ProductsRoundTrip(t *testing.T) {
	app := newTestApp(t)

	rec := app.upload(t, "/api/products/analyze_upload", "stock.csv", "brand,item_code,category,mrp\nAcme,AC-100,Filters,250\n")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var analyzed usecase.AnalyzeOutput
	decode(t, rec, &analyzed)
	assert.Equal(t, []string{"brand", "item_code", "category", "mrp"}, analyzed.Headers)

	rec = app.doJSON(t, http.MethodPost, "/api/products/bulk_import", map[string]interface{}{
		"filename": analyzed.Filename,
		"mapping":  map[string]string{"brand": "brand", "item_code": "item_code", "category": "category", "mrp": "mrp"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var imported usecase.BulkImportOutput
	decode(t, rec, &imported)
	assert.Equal(t, "Products imported successfully", imported.Message)
	assert.Equal(t, 1, imported.Created)

	// the staged file is gone after import
	rec = app.doJSON(t, http.MethodPost, "/api/products/bulk_import", map[string]interface{}{
		"filename": analyzed.Filename,
		"mapping":  map[string]string{"brand": "brand"},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "File not found. Please upload again.", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodGet, "/api/products/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="products.csv"`, rec.Header().Get("Content-Disposition"))
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Acme", records[1][1])
	assert.Equal(t, "250", records[1][13])
	assert.Equal(t, "0", records[1][14])
}

func TestImportAPI_Errors(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodPost, "/api/customers/analyze_upload", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No file part", errorOf(t, rec))

	rec = app.upload(t, "/api/customers/analyze_upload", "customers.xlsx", "x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid file type", errorOf(t, rec))

	rec = app.doJSON(t, http.MethodPost, "/api/customers/bulk_import", map[string]interface{}{"filename": "x.csv"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing filename or mapping", errorOf(t, rec))
}

func TestExportAPI_XLSXAndBadFormat(t *testing.T) {
	app := newTestApp(t)
	createdID(t, app.doJSON(t, http.MethodPost, "/api/customers", map[string]interface{}{"name": "Apex"}))

	rec := app.doJSON(t, http.MethodGet, "/api/customers/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="customers.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))

	rec = app.doJSON(t, http.MethodGet, "/api/products/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid format", errorOf(t, rec))
}

func TestCatalogAPI(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(t, http.MethodGet, "/api/catalog/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"brands":["Bosch","NGK"],"categories":["Filters","Spark Plugs"]}`, rec.Body.String())

	writeFile(t, app.catalogDir+"/brands.json", `{not json`)
	rec = app.doJSON(t, http.MethodGet, "/api/catalog/options", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Error loading catalog options", errorOf(t, rec))
}
