package repository

import (
	"errors"
	"io"
)

var (
	// ErrInvalidFileName is returned when an upload name sanitizes to
	// nothing or a staged handle does not look like one we issued.
	ErrInvalidFileName = errors.New("invalid file name")
	// ErrStagedFileNotFound is returned for handles with no staged file.
	ErrStagedFileNotFound = errors.New("staged file not found")
	// ErrUnreadableRow wraps a parse failure confined to one record; the
	// reader can keep going after it.
	ErrUnreadableRow = errors.New("unreadable row")
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// StagingStore keeps an uploaded file between analyze and import.
type StagingStore interface {
	Save(name string, r io.Reader) (string, error)
	Open(handle string) (io.ReadCloser, error)
	Remove(handle string) error
}

// Row is one data record addressed by header.
type Row struct {
	Line   int
	Values map[string]string
}

// RowReader yields rows until io.EOF. An ErrUnreadableRow carries the line
// of the bad record in Row.Line.
type RowReader interface {
	Headers() []string
	Next() (Row, error)
}

// TableCodec reads uploaded CSV and renders listings as csv or xlsx.
type TableCodec interface {
	ReadHeaders(r io.Reader) ([]string, error)
	NewRowReader(r io.Reader) (RowReader, error)
	Write(w io.Writer, format, sheet string, header []string, rows [][]string) error
	ContentType(format string) string
}

type CatalogOptions struct {
	Brands     []string `json:"brands"`
	Categories []string `json:"categories"`
}

type CatalogSource interface {
	Load() (CatalogOptions, error)
}
