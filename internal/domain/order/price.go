package order

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// MaxTotalPrice is the exclusive upper bound of a storable order total.
var MaxTotalPrice = decimal.New(1, 12)

// CalculateTotal sums unit price times quantity over items using exact
// decimal arithmetic. Every item's product must be present in prices.
func CalculateTotal(items []Item, prices map[int64]decimal.Decimal) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		price, ok := prices[item.ProductID]
		if !ok {
			return decimal.Zero, errors.Errorf("no price for product %d", item.ProductID)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total, nil
}
