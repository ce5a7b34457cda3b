package order

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	// MaxOrderNumberLen is the longest accepted order number, in characters.
	MaxOrderNumberLen = 255
	// MaxQuantity is the largest quantity a single item may carry.
	MaxQuantity = math.MaxInt32
)

// ImportRequest is a decoded order import payload. It carries no price: the
// total is always computed from the catalog.
type ImportRequest struct {
	OrderNumber string
	Items       []LineRequest
}

// LineRequest is one products_data element.
type LineRequest struct {
	ProductID int64
	Quantity  int64
}

// Normalized returns a copy of r with surrounding whitespace removed from
// the order number.
func (r ImportRequest) Normalized() ImportRequest {
	r.OrderNumber = strings.TrimSpace(r.OrderNumber)
	return r
}

// Validate checks the request content and returns a *ValidationError listing
// every rejected field, or nil.
func (r ImportRequest) Validate() error {
	verr := &ValidationError{}

	switch {
	case strings.TrimSpace(r.OrderNumber) == "":
		verr.Add(FieldOrderNumber, "must not be blank")
	case !utf8.ValidString(r.OrderNumber) || strings.ContainsRune(r.OrderNumber, 0):
		verr.Add(FieldOrderNumber, "must be valid UTF-8 text without NUL characters")
	case utf8.RuneCountInString(r.OrderNumber) > MaxOrderNumberLen:
		verr.Addf(FieldOrderNumber, "must be at most %d characters", MaxOrderNumberLen)
	}

	if len(r.Items) == 0 {
		verr.Add(FieldProductsData, "must contain at least one item")
	}

	seen := make(map[int64]int, len(r.Items))
	for i, item := range r.Items {
		switch {
		case item.Quantity < 1:
			verr.Add(ItemField(i, FieldQuantity), "must be greater than or equal to 1")
		case item.Quantity > MaxQuantity:
			verr.Addf(ItemField(i, FieldQuantity), "must be less than or equal to %d", MaxQuantity)
		}
		if first, ok := seen[item.ProductID]; ok {
			verr.Addf(ItemField(i, FieldProductID), "duplicates products_data[%d]", first)
			continue
		}
		seen[item.ProductID] = i
	}

	return verr.Err()
}

// productIDs returns the distinct product IDs in submission order.
func (r ImportRequest) productIDs() []int64 {
	ids := make([]int64, 0, len(r.Items))
	seen := make(map[int64]struct{}, len(r.Items))
	for _, item := range r.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}
