package usecase

import (
	"math"
	"strconv"
	"strings"
)

// ImportEntity names the table a CSV import targets.
type ImportEntity string

const (
	ImportProducts  ImportEntity = "products"
	ImportCustomers ImportEntity = "customers"
)

const importIDField = "id"

// Logical fields a column mapping may target, in export column order.
var (
	ProductImportFields = []string{
		"id", "brand", "item_code", "pack_size", "category", "brand_type", "item_name",
		"also_known_as", "oem_part_no", "hsn_code", "description",
		"sale_price", "cost", "mrp", "list_price",
	}
	CustomerImportFields = []string{
		"id", "name", "phone", "city", "state", "pincode", "map_location", "street",
		"owner_name", "contact_type", "customer_type", "customer_size", "gst",
	}
)

func (e ImportEntity) Fields() []string {
	if e == ImportCustomers {
		return CustomerImportFields
	}
	return ProductImportFields
}

func (e ImportEntity) label() string {
	if e == ImportCustomers {
		return "Customers"
	}
	return "Products"
}

// rowAccessor resolves logical fields through the column mapping.
type rowAccessor struct {
	mapping map[string]string
	values  map[string]string
}

// value returns the mapped cell, or def when the field is unmapped, the
// column is missing from the row or the cell is blank.
func (a rowAccessor) value(field string, def string) string {
	col, ok := a.mapping[field]
	if !ok || col == "" {
		return def
	}
	v, ok := a.values[col]
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

// float resolves a numeric field, keeping def for anything that does not parse.
func (a rowAccessor) float(field string, def float64) float64 {
	return parseFloatOr(a.value(field, ""), def)
}

func (a rowAccessor) floatPtr(field string, def *float64) *float64 {
	raw := a.value(field, "")
	f, ok := parseFloat(raw)
	if !ok {
		return def
	}
	return &f
}

func parseFloatOr(raw string, def float64) float64 {
	f, ok := parseFloat(raw)
	if !ok {
		return def
	}
	return f
}

func parseFloat(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
