package handler

import (
	"net/http"

	"github.com/xenking/order-import/internal/domain/order"
)

// DefaultMaxBodyBytes limits import request bodies when HandlerConfig leaves
// MaxBodyBytes unset.
const DefaultMaxBodyBytes = 1 << 20

// HandlerConfig holds non-dependency configuration for the Handler.
type HandlerConfig struct {
	// PathPrefix is prepended to every API route, e.g. "/api".
	PathPrefix string
	// MaxBodyBytes caps the size of a request body.
	MaxBodyBytes int64
}

// Handler serves the order import API, delegating business logic to the
// order service.
type Handler struct {
	orderService *order.Service
	guard        Guard
	pathPrefix   string
	maxBodyBytes int64
}

// NewHandler constructs a Handler with the required domain dependencies.
func NewHandler(cfg HandlerConfig, orderService *order.Service, guard Guard) *Handler {
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &Handler{
		orderService: orderService,
		guard:        guard,
		pathPrefix:   cfg.PathPrefix,
		maxBodyBytes: maxBody,
	}
}

// Register mounts the API routes on mux. Other methods on a registered path
// get 405 from the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.Handle("POST "+h.pathPrefix+"/import-order", RequireToken(h.guard, http.HandlerFunc(h.ImportOrder)))
}
