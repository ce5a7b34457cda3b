package product

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a catalog item that orders can reference.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// Repository defines read operations for the product catalog.
type Repository interface {
	// GetByIDs returns the products matching any of the given IDs. Unknown
	// IDs are silently absent from the result.
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
}

// Index maps product ID to product for a fetched batch.
func Index(products []Product) map[int64]Product {
	m := make(map[int64]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return m
}
