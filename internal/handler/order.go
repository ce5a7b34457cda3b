package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/order-import/internal/domain/order"
)

// ImportOrder decodes the import payload, delegates to the order service and
// maps the result or error to an HTTP response. The access token has
// already been checked by the guard.
func (h *Handler) ImportOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lg := zctx.From(ctx)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		verr := &order.ValidationError{}
		verr.Add(FieldBody, "could not be read")
		writeValidationError(w, verr)
		return
	}

	req, err := decodeImportRequest(body)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	result, err := h.orderService.Import(ctx, req)
	if err != nil {
		h.writeOrderError(w, r, err)
		return
	}

	lg.Info("Order imported",
		zap.Int64("order_id", result.Order.ID),
		zap.String("order_number", result.Order.Number),
		zap.String("total_price", result.Order.TotalPrice.StringFixed(2)),
		zap.Int("items", len(result.Order.Items)),
	)

	var e jx.Encoder
	encodeImportResult(&e, result)
	writeJSON(w, http.StatusCreated, &e)
}

// writeOrderError converts domain errors to HTTP responses. Unknown errors
// are logged and hidden behind a generic 500.
func (h *Handler) writeOrderError(w http.ResponseWriter, r *http.Request, err error) {
	lg := zctx.From(r.Context())

	var verr *order.ValidationError
	if errors.As(err, &verr) {
		lg.Debug("Import rejected", zap.Error(err))
		writeValidationError(w, verr)
		return
	}

	var dup *order.DuplicateOrderError
	if errors.As(err, &dup) {
		lg.Warn("Duplicate order number", zap.String("order_number", dup.OrderNumber))
		writeError(w, http.StatusConflict,
			fmt.Sprintf("Order with order_number '%s' already exists.", dup.OrderNumber))
		return
	}

	lg.Error("Import failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "Internal server error")
}
