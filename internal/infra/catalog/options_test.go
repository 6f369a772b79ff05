package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileOptions_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brands.json"), []byte(`["Zeta","Acme"]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "category.json"), []byte(`["Filters"]`), 0o644))

	opts, err := NewFileOptions(dir).Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta", "Acme"}, opts.Brands)
	assert.Equal(t, []string{"Filters"}, opts.Categories)
}

func TestFileOptions_Load_Errors(t *testing.T) {
	dir := t.TempDir()
	_, err := NewFileOptions(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brands.json")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "brands.json"), []byte(`[]`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "category.json"), []byte(`{"bad":1}`), 0o644))
	_, err = NewFileOptions(dir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse category.json")
}
