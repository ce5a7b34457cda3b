package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-faster/jx"

	"github.com/xenking/order-import/internal/domain/order"
)

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str(msg)
	e.ObjEnd()
	writeJSON(w, status, &e)
}

// writeValidationError writes 400 with the field to reason mapping.
func writeValidationError(w http.ResponseWriter, verr *order.ValidationError) {
	fields := verr.Map()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var e jx.Encoder
	e.ObjStart()
	e.FieldStart("error")
	e.Str("Validation failed")
	e.FieldStart("fields")
	e.ObjStart()
	for _, k := range keys {
		e.FieldStart(k)
		e.Str(fields[k])
	}
	e.ObjEnd()
	e.ObjEnd()
	writeJSON(w, http.StatusBadRequest, &e)
}

// encodeImportResult renders a created order. Money is a fixed two-decimal
// string so no precision is lost to JSON numbers.
func encodeImportResult(e *jx.Encoder, res *order.ImportResult) {
	o := res.Order
	e.ObjStart()
	e.FieldStart("id")
	e.Int64(o.ID)
	e.FieldStart("order_number")
	e.Str(o.Number)
	e.FieldStart("total_price")
	e.Str(o.TotalPrice.StringFixed(2))
	e.FieldStart("created_time")
	e.Str(o.CreatedAt.UTC().Format(time.RFC3339Nano))
	e.FieldStart("products")
	e.ArrStart()
	for _, p := range res.Products {
		e.Int64(p.ID)
	}
	e.ArrEnd()
	e.FieldStart("items")
	e.ArrStart()
	for _, item := range o.Items {
		e.ObjStart()
		e.FieldStart(order.FieldProductID)
		e.Int64(item.ProductID)
		e.FieldStart(order.FieldQuantity)
		e.Int(item.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	e.ObjEnd()
}
