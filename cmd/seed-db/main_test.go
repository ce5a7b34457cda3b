package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `[{"id": 1, "name": "Keyboard", "price": "2500.50"}]`

func TestReadCatalog(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(plain, []byte(catalogJSON), 0o600))

	gz := filepath.Join(dir, "products.json.gz")
	f, err := os.Create(gz)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(catalogJSON))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	for _, path := range []string{plain, gz} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			products, err := readCatalog(path)
			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "Keyboard", products[0].Name)
		})
	}
}

func TestReadCatalog_Missing(t *testing.T) {
	_, err := readCatalog(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestReadCatalog_SeedFile(t *testing.T) {
	products, err := readCatalog(filepath.Join("..", "..", "db", "seed", "products.json"))
	require.NoError(t, err)
	assert.Len(t, products, 4)
}
