package product

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCatalog(t *testing.T) {
	products, err := DecodeCatalog(strings.NewReader(`[
		{"id": 1, "name": "Keyboard", "price": "2500.50", "category": "input"},
		{"id": 2, "name": "Mouse", "price": 1200.00}
	]`))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Keyboard", products[0].Name)
	assert.True(t, decimal.RequireFromString("2500.50").Equal(products[0].Price))
	assert.True(t, decimal.RequireFromString("1200").Equal(products[1].Price))

	byID := Index(products)
	assert.Equal(t, "Mouse", byID[2].Name)
}

func TestDecodeCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "not an array", input: `{"id": 1}`, wantErr: "decode catalog"},
		{name: "missing price", input: `[{"id": 1, "name": "A"}]`, wantErr: "price is required"},
		{name: "negative price", input: `[{"id": 1, "name": "A", "price": "-1"}]`, wantErr: "negative"},
		{name: "bad price", input: `[{"id": 1, "name": "A", "price": "abc"}]`, wantErr: "price"},
		{name: "zero id", input: `[{"id": 0, "name": "A", "price": "1"}]`, wantErr: "id must be positive"},
		{name: "missing name", input: `[{"id": 1, "price": "1"}]`, wantErr: "name is required"},
		{name: "duplicate id", input: `[{"id": 1, "name": "A", "price": "1"}, {"id": 1, "name": "B", "price": "2"}]`, wantErr: "duplicate id 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCatalog(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
