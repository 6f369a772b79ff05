package usecase

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

type ExportUsecase struct {
	products  repo.ProductRepository
	customers repo.CustomerRepository
	codec     repo.TableCodec
	log       *zap.Logger
}

func NewExportUsecase(products repo.ProductRepository, customers repo.CustomerRepository, codec repo.TableCodec, log *zap.Logger) *ExportUsecase {
	return &ExportUsecase{products: products, customers: customers, codec: codec, log: log}
}

// ExportFile is a rendered listing ready to be served as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

func (u *ExportUsecase) ExportProducts(ctx context.Context, in ListProductsInput, format string) (ExportFile, error) {
	format, err := exportFormat(format)
	if err != nil {
		return ExportFile{}, err
	}

	items, _, err := u.products.List(ctx, productListQuery(in))
	if err != nil {
		return ExportFile{}, repoError(u.log, "export products", err, "", "")
	}

	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, productRow(p))
	}
	return u.render("products", "Products", format, ProductImportFields, rows)
}

func (u *ExportUsecase) ExportCustomers(ctx context.Context, in ListCustomersInput, format string) (ExportFile, error) {
	format, err := exportFormat(format)
	if err != nil {
		return ExportFile{}, err
	}

	items, err := u.customers.List(ctx, repo.CustomerListQuery{
		Search:       strings.TrimSpace(in.Search),
		ShowArchived: in.ShowArchived,
	})
	if err != nil {
		return ExportFile{}, repoError(u.log, "export customers", err, "", "")
	}

	rows := make([][]string, 0, len(items))
	for _, c := range items {
		rows = append(rows, customerRow(c))
	}
	return u.render("customers", "Customers", format, CustomerImportFields, rows)
}

func (u *ExportUsecase) render(base, sheet, format string, header []string, rows [][]string) (ExportFile, error) {
	var buf bytes.Buffer
	if err := u.codec.Write(&buf, format, sheet, header, rows); err != nil {
		u.log.Error("render export failed", zap.String("format", format), zap.Error(err))
		return ExportFile{}, NewHTTPError(http.StatusInternalServerError, "export failed")
	}
	return ExportFile{
		Filename:    base + "." + format,
		ContentType: u.codec.ContentType(format),
		Body:        buf.Bytes(),
	}, nil
}

func exportFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "":
		return repo.FormatCSV, nil
	case repo.FormatCSV, repo.FormatXLSX:
		return f, nil
	}
	return "", NewHTTPError(http.StatusBadRequest, "invalid format")
}

// row order follows ProductImportFields
func productRow(p model.Product) []string {
	listPrice := ""
	if p.ListPrice != nil {
		listPrice = formatNumber(*p.ListPrice)
	}
	return []string{
		strconv.FormatInt(p.ID, 10), p.Brand, p.ItemCode, p.PackSize, p.Category, p.BrandType, p.ItemName,
		p.AlsoKnownAs, p.OemPartNo, p.HsnCode, p.Description,
		formatNumber(p.SalePrice), formatNumber(p.Cost), formatNumber(p.MRP), listPrice,
	}
}

// row order follows CustomerImportFields
func customerRow(c model.Customer) []string {
	return []string{
		strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.City, c.State, c.Pincode, c.MapLocation, c.Street,
		c.OwnerName, c.ContactType, c.CustomerType, c.CustomerSize, c.GST,
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
