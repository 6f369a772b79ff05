package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	repo "github.com/kargofit/crm/internal/repository"
)

const (
	brandsFile   = "brands.json"
	categoryFile = "category.json"
)

type Options = repo.CatalogOptions

// FileOptions reads the option lists from dir on every call.
type FileOptions struct {
	dir string
}

var _ repo.CatalogSource = (*FileOptions)(nil)

func NewFileOptions(dir string) *FileOptions {
	return &FileOptions{dir: dir}
}

func (o *FileOptions) Load() (Options, error) {
	brands, err := readList(filepath.Join(o.dir, brandsFile))
	if err != nil {
		return Options{}, err
	}
	categories, err := readList(filepath.Join(o.dir, categoryFile))
	if err != nil {
		return Options{}, err
	}
	return Options{Brands: brands, Categories: categories}, nil
}

func readList(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	list := []string{}
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return list, nil
}
