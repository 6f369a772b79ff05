package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kargofit/crm/internal/domain/model"
	repo "github.com/kargofit/crm/internal/repository"

	"go.uber.org/zap"
)

const fileNotFoundMessage = "File not found. Please upload again."

type ImportObserver interface {
	ObserveImport(entity string, created, updated, skipped int, err error)
}

type ImportUsecase struct {
	staging  repo.StagingStore
	codec    repo.TableCodec
	tx       repo.TransactionManager
	observer ImportObserver
	log      *zap.Logger
}

func NewImportUsecase(staging repo.StagingStore, codec repo.TableCodec, tx repo.TransactionManager, observer ImportObserver, log *zap.Logger) *ImportUsecase {
	return &ImportUsecase{staging: staging, codec: codec, tx: tx, observer: observer, log: log}
}

type AnalyzeOutput struct {
	Filename string   `json:"filename"`
	Headers  []string `json:"headers"`
	Message  string   `json:"message"`
	Fields   []string `json:"fields"`
}

type BulkImportInput struct {
	Filename string
	Mapping  map[string]string
}

type BulkImportOutput struct {
	Message string `json:"message"`
	Created int    `json:"created"`
	Updated int    `json:"updated"`
	Skipped int    `json:"skipped"`
}

type importCounts struct {
	created, updated, skipped int
}

// AnalyzeUpload stages a CSV upload and returns its header row.
func (u *ImportUsecase) AnalyzeUpload(ctx context.Context, entity ImportEntity, filename string, content io.Reader) (AnalyzeOutput, error) {
	if filename == "" {
		return AnalyzeOutput{}, NewHTTPError(http.StatusBadRequest, "No selected file")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".csv") {
		return AnalyzeOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid file type")
	}

	handle, err := u.staging.Save(filename, content)
	if errors.Is(err, repo.ErrInvalidFileName) {
		return AnalyzeOutput{}, NewHTTPError(http.StatusBadRequest, "Invalid file name")
	}
	if err != nil {
		u.log.Error("stage upload failed", zap.String("entity", string(entity)), zap.Error(err))
		return AnalyzeOutput{}, NewHTTPError(http.StatusInternalServerError, "Error analyzing file: "+err.Error())
	}

	headers, err := u.readHeaders(handle)
	if err != nil {
		u.removeStaged(handle)
		u.log.Error("analyze upload failed", zap.String("file", handle), zap.Error(err))
		return AnalyzeOutput{}, NewHTTPError(http.StatusInternalServerError, "Error analyzing file: "+err.Error())
	}

	return AnalyzeOutput{
		Filename: handle,
		Headers:  headers,
		Message:  "File uploaded and analyzed successfully",
		Fields:   entity.Fields(),
	}, nil
}

func (u *ImportUsecase) readHeaders(handle string) ([]string, error) {
	rc, err := u.staging.Open(handle)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return u.codec.ReadHeaders(rc)
}

// BulkImport applies a staged CSV through mapping in one transaction. The
// staged file is removed whatever the outcome.
func (u *ImportUsecase) BulkImport(ctx context.Context, entity ImportEntity, in BulkImportInput) (BulkImportOutput, error) {
	if in.Filename != "" {
		defer u.removeStaged(in.Filename)
	}
	if in.Filename == "" || len(in.Mapping) == 0 {
		return BulkImportOutput{}, NewHTTPError(http.StatusBadRequest, "Missing filename or mapping")
	}

	rc, err := u.staging.Open(in.Filename)
	if errors.Is(err, repo.ErrInvalidFileName) || errors.Is(err, repo.ErrStagedFileNotFound) {
		return BulkImportOutput{}, NewHTTPError(http.StatusNotFound, fileNotFoundMessage)
	}
	if err != nil {
		u.log.Error("open staged file failed", zap.String("file", in.Filename), zap.Error(err))
		return BulkImportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	defer rc.Close()

	rows, err := u.codec.NewRowReader(rc)
	if err != nil {
		u.log.Error("read staged header failed", zap.String("file", in.Filename), zap.Error(err))
		return BulkImportOutput{}, NewHTTPError(http.StatusInternalServerError, "Error reading file: "+err.Error())
	}

	var counts importCounts
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		switch entity {
		case ImportCustomers:
			counts, err = u.importCustomers(ctx, r.Customers(), rows, in.Mapping)
		default:
			counts, err = u.importProducts(ctx, r.Products(), rows, in.Mapping)
		}
		return err
	})
	if u.observer != nil {
		u.observer.ObserveImport(string(entity), counts.created, counts.updated, counts.skipped, err)
	}
	if err != nil {
		u.log.Error("bulk import failed", zap.String("entity", string(entity)), zap.String("file", in.Filename), zap.Error(err))
		return BulkImportOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.log.Info("bulk import finished",
		zap.String("entity", string(entity)),
		zap.Int("created", counts.created),
		zap.Int("updated", counts.updated),
		zap.Int("skipped", counts.skipped),
	)
	return BulkImportOutput{
		Message: entity.label() + " imported successfully",
		Created: counts.created,
		Updated: counts.updated,
		Skipped: counts.skipped,
	}, nil
}

func (u *ImportUsecase) removeStaged(handle string) {
	if err := u.staging.Remove(handle); err != nil && !errors.Is(err, repo.ErrInvalidFileName) {
		u.log.Warn("remove staged file failed", zap.String("file", handle), zap.Error(err))
	}
}

// eachRow walks the data rows. Unparseable records are logged and counted
// as skipped; fn handles the rest.
func (u *ImportUsecase) eachRow(rows repo.RowReader, mapping map[string]string, counts *importCounts, fn func(line int, a rowAccessor) error) error {
	for {
		row, err := rows.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if errors.Is(err, repo.ErrUnreadableRow) {
			u.log.Warn("skipping unreadable import row", zap.Int("line", row.Line), zap.Error(err))
			counts.skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("read import row: %w", err)
		}
		if err := fn(row.Line, rowAccessor{mapping: mapping, values: row.Values}); err != nil {
			return err
		}
	}
}

// rowID returns the identity of an update row; ok is false for create rows.
func (u *ImportUsecase) rowID(line int, a rowAccessor) (id int64, ok bool, valid bool) {
	raw := a.value(importIDField, "")
	if raw == "" {
		return 0, false, true
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		u.log.Warn("skipping import row with invalid id", zap.Int("line", line), zap.String("id", raw))
		return 0, true, false
	}
	return id, true, true
}

func (u *ImportUsecase) importProducts(ctx context.Context, products repo.ProductRepository, rows repo.RowReader, mapping map[string]string) (importCounts, error) {
	var counts importCounts
	var creates []model.Product

	err := u.eachRow(rows, mapping, &counts, func(line int, a rowAccessor) error {
		id, isUpdate, valid := u.rowID(line, a)
		if !valid {
			counts.skipped++
			return nil
		}

		if !isUpdate {
			zero := 0.0
			creates = append(creates, model.Product{
				Brand:       a.value("brand", ""),
				ItemCode:    a.value("item_code", ""),
				PackSize:    a.value("pack_size", ""),
				Category:    a.value("category", ""),
				BrandType:   a.value("brand_type", ""),
				ItemName:    a.value("item_name", ""),
				AlsoKnownAs: a.value("also_known_as", ""),
				OemPartNo:   a.value("oem_part_no", ""),
				HsnCode:     a.value("hsn_code", ""),
				Description: a.value("description", ""),
				SalePrice:   a.float("sale_price", 0),
				Cost:        a.float("cost", 0),
				MRP:         a.float("mrp", 0),
				ListPrice:   a.floatPtr("list_price", &zero),
			})
			return nil
		}

		p, err := products.FindByID(ctx, id)
		if errors.Is(err, repo.ErrNotFound) {
			counts.skipped++
			return nil
		}
		if err != nil {
			return err
		}

		p.Brand = a.value("brand", p.Brand)
		p.ItemCode = a.value("item_code", p.ItemCode)
		p.PackSize = a.value("pack_size", p.PackSize)
		p.Category = a.value("category", p.Category)
		p.BrandType = a.value("brand_type", p.BrandType)
		p.ItemName = a.value("item_name", p.ItemName)
		p.AlsoKnownAs = a.value("also_known_as", p.AlsoKnownAs)
		p.OemPartNo = a.value("oem_part_no", p.OemPartNo)
		p.HsnCode = a.value("hsn_code", p.HsnCode)
		p.Description = a.value("description", p.Description)
		p.SalePrice = a.float("sale_price", p.SalePrice)
		p.Cost = a.float("cost", p.Cost)
		p.MRP = a.float("mrp", p.MRP)
		p.ListPrice = a.floatPtr("list_price", p.ListPrice)

		if err := products.Update(ctx, p); err != nil {
			return err
		}
		counts.updated++
		return nil
	})
	if err != nil {
		return importCounts{}, err
	}

	if err := products.CreateBulk(ctx, creates); err != nil {
		return importCounts{}, err
	}
	counts.created = len(creates)
	return counts, nil
}

func (u *ImportUsecase) importCustomers(ctx context.Context, customers repo.CustomerRepository, rows repo.RowReader, mapping map[string]string) (importCounts, error) {
	var counts importCounts
	var creates []model.Customer

	err := u.eachRow(rows, mapping, &counts, func(line int, a rowAccessor) error {
		id, isUpdate, valid := u.rowID(line, a)
		if !valid {
			counts.skipped++
			return nil
		}

		var c model.Customer
		if isUpdate {
			found, err := customers.FindByID(ctx, id)
			if errors.Is(err, repo.ErrNotFound) {
				counts.skipped++
				return nil
			}
			if err != nil {
				return err
			}
			c = found
		}

		// on create every default is empty
		c.Name = a.value("name", c.Name)
		c.Phone = a.value("phone", c.Phone)
		c.City = a.value("city", c.City)
		c.State = a.value("state", c.State)
		c.Pincode = a.value("pincode", c.Pincode)
		c.MapLocation = a.value("map_location", c.MapLocation)
		c.Street = a.value("street", c.Street)
		c.OwnerName = a.value("owner_name", c.OwnerName)
		c.ContactType = a.value("contact_type", c.ContactType)
		c.CustomerType = a.value("customer_type", c.CustomerType)
		c.CustomerSize = a.value("customer_size", c.CustomerSize)
		c.GST = a.value("gst", c.GST)

		if !isUpdate {
			creates = append(creates, c)
			return nil
		}
		if err := customers.Update(ctx, c); err != nil {
			return err
		}
		counts.updated++
		return nil
	})
	if err != nil {
		return importCounts{}, err
	}

	if err := customers.CreateBulk(ctx, creates); err != nil {
		return importCounts{}, err
	}
	counts.created = len(creates)
	return counts, nil
}
