package tabular

import (
	"io"

	repo "github.com/kargofit/crm/internal/repository"
)

// Codec adapts the package functions to repo.TableCodec.
type Codec struct{}

var _ repo.TableCodec = Codec{}

func (Codec) ReadHeaders(r io.Reader) ([]string, error) {
	return ReadHeaders(r)
}

func (Codec) NewRowReader(r io.Reader) (repo.RowReader, error) {
	rr, err := NewRowReader(r)
	if err != nil {
		return nil, err
	}
	return rr, nil
}

// Write renders xlsx for FormatXLSX and csv for anything else; sheet is
// ignored for csv.
func (Codec) Write(w io.Writer, format, sheet string, header []string, rows [][]string) error {
	if format == FormatXLSX {
		return WriteXLSX(w, sheet, header, rows)
	}
	return WriteCSV(w, header, rows)
}

func (Codec) ContentType(format string) string {
	return ContentType(format)
}
