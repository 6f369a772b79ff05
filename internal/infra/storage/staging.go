package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
	repo "github.com/kargofit/crm/internal/repository"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidName        = repo.ErrInvalidFileName
	ErrStagedFileNotFound = repo.ErrStagedFileNotFound
)

var _ repo.StagingStore = (*LocalStaging)(nil)

// LocalStaging keeps uploads in a directory between analyze and import.
type LocalStaging struct {
	dir string
}

func NewLocalStaging(dir string) (*LocalStaging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &LocalStaging{dir: dir}, nil
}

// Save writes r under a fresh "<uuid>_<sanitized name>" handle.
func (s *LocalStaging) Save(name string, r io.Reader) (string, error) {
	clean := SecureFilename(name)
	if clean == "" {
		return "", ErrInvalidName
	}
	handle := uuid.NewString() + "_" + clean

	f, err := os.OpenFile(filepath.Join(s.dir, handle), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("close staged file: %w", err)
	}
	return handle, nil
}

func (s *LocalStaging) Open(handle string) (io.ReadCloser, error) {
	path, err := s.path(handle)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrStagedFileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("open staged file: %w", err)
	}
	return f, nil
}

// Remove deletes a staged file. Missing files are not an error.
func (s *LocalStaging) Remove(handle string) error {
	path, err := s.path(handle)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove staged file: %w", err)
	}
	return nil
}

func (s *LocalStaging) path(handle string) (string, error) {
	if handle == "" || SecureFilename(handle) != handle {
		return "", ErrInvalidName
	}
	return filepath.Join(s.dir, handle), nil
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces name to an ASCII file name without path parts.
func SecureFilename(name string) string {
	decomposed := norm.NFKD.String(name)
	var b strings.Builder
	for _, r := range decomposed {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	s := strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())
	s = strings.Join(strings.Fields(s), "_")
	s = unsafeFilenameChars.ReplaceAllString(s, "")
	return strings.Trim(s, "._")
}
