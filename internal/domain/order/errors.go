package order

import (
	"fmt"
	"sort"
	"strings"
)

// DuplicateOrderError indicates an order with the same number already exists,
// either found up front or detected by the store's unique constraint.
type DuplicateOrderError struct {
	OrderNumber string
}

func (e *DuplicateOrderError) Error() string {
	return fmt.Sprintf("order with order_number %q already exists", e.OrderNumber)
}

// FieldError is a single rejected input field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError collects every field rejected by one validation stage.
type ValidationError struct {
	Fields []FieldError
}

// Add records a rejected field.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// Addf records a rejected field with a formatted reason.
func (e *ValidationError) Addf(field, format string, args ...any) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// Err returns e when at least one field was rejected and nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Map returns the field to reason mapping. When a field was rejected more
// than once, the first reason wins.
func (e *ValidationError) Map() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Reason
		}
	}
	return m
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, reason := range e.Map() {
		parts = append(parts, field+": "+reason)
	}
	sort.Strings(parts)
	return "validation failed: " + strings.Join(parts, "; ")
}

// ItemKey returns the field key of a products_data element.
func ItemKey(idx int) string {
	return fmt.Sprintf("%s[%d]", FieldProductsData, idx)
}

// ItemField returns the field key of a products_data element attribute.
func ItemField(idx int, name string) string {
	return ItemKey(idx) + "." + name
}

// Field names of the import payload.
const (
	FieldOrderNumber  = "order_number"
	FieldProductsData = "products_data"
	FieldProductID    = "product_id"
	FieldQuantity     = "quantity"
)
