package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Order is a persisted purchase record. TotalPrice is always derived from
// the catalog at creation time and never changes afterwards.
type Order struct {
	ID         int64
	Number     string
	TotalPrice decimal.Decimal
	CreatedAt  time.Time
	Items      []Item
}

// Item links an order to a catalog product with a quantity. A product
// appears at most once per order.
type Item struct {
	ProductID int64
	Quantity  int
}

// Repository defines persistence operations for orders.
type Repository interface {
	// ExistsByNumber reports whether an order with the given number exists.
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	// Create persists the order and all of its items atomically and sets
	// o.ID. It returns *DuplicateOrderError when the order number is taken.
	Create(ctx context.Context, o *Order) error
}
