package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	repo "github.com/kargofit/crm/internal/repository"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewCSVReader decodes r as UTF-8 (a UTF-8 BOM is dropped, UTF-16 BOMs are
// honoured, invalid bytes become U+FFFD) and returns a tolerant CSV reader.
func NewCSVReader(r io.Reader) *csv.Reader {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr
}

// ReadHeaders returns the first record of r. An empty input has no headers.
func ReadHeaders(r io.Reader) ([]string, error) {
	rec, err := NewCSVReader(r).Read()
	if errors.Is(err, io.EOF) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

type Row = repo.Row

// RowReader yields header-addressed rows. Duplicate headers keep the last
// column; cells missing from a short row are absent from Values.
type RowReader struct {
	cr      *csv.Reader
	headers []string
}

// NewRowReader consumes the header record of r.
func NewRowReader(r io.Reader) (*RowReader, error) {
	cr := NewCSVReader(r)
	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		headers = []string{}
	} else if err != nil {
		return nil, err
	}
	return &RowReader{cr: cr, headers: headers}, nil
}

func (rr *RowReader) Headers() []string { return rr.headers }

// Next returns the next row or io.EOF. A parse error affects only the
// current record and comes back wrapped in repo.ErrUnreadableRow with the
// record's line set; the caller may keep reading.
func (rr *RowReader) Next() (Row, error) {
	rec, err := rr.cr.Read()
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return Row{Line: pe.Line}, fmt.Errorf("%w: %w", repo.ErrUnreadableRow, err)
	}
	if err != nil {
		return Row{}, err
	}
	line, _ := rr.cr.FieldPos(0)
	values := make(map[string]string, len(rr.headers))
	for i, h := range rr.headers {
		if i < len(rec) {
			values[h] = rec[i]
		}
	}
	return Row{Line: line, Values: values}, nil
}
