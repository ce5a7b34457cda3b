package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/xenking/order-import/internal/domain/product"
)

const instrumentationName = "github.com/xenking/order-import/internal/domain/order"

// Import outcomes reported on the orders.import.requests counter.
const (
	OutcomeCreated  = "created"
	OutcomeInvalid  = "invalid"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// ImportResult holds the output of a successful import.
type ImportResult struct {
	Order *Order
	// Products are the referenced catalog entries in item order.
	Products []product.Product
}

// Option configures a Service.
type Option func(*Service)

// WithTracerProvider sets the provider used for import spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(instrumentationName)
	}
}

// WithMeterProvider sets the provider used for the import outcome counter.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(s *Service) {
		counter, err := mp.Meter(instrumentationName).Int64Counter("orders.import.requests",
			metric.WithDescription("Order import requests by outcome."),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			return
		}
		s.imports = counter
	}
}

// WithClock overrides the source of order creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// Service encapsulates order import business logic.
type Service struct {
	products product.Repository
	orders   Repository
	now      func() time.Time

	tracer  trace.Tracer
	imports metric.Int64Counter
}

// NewService creates an order Service with the required domain dependencies.
func NewService(products product.Repository, orders Repository, opts ...Option) *Service {
	s := &Service{
		products: products,
		orders:   orders,
		now:      time.Now,
		tracer:   tracenoop.NewTracerProvider().Tracer(instrumentationName),
		imports:  metricnoop.Int64Counter{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Import validates the request, resolves its products with one bulk lookup,
// computes the total price and persists the order with its items in a single
// transaction.
//
// Errors: *ValidationError for rejected input, *DuplicateOrderError when the
// order number is taken, anything else is a store failure.
func (s *Service) Import(ctx context.Context, req ImportRequest) (_ *ImportResult, rerr error) {
	req = req.Normalized()

	ctx, span := s.tracer.Start(ctx, "order.Import", trace.WithAttributes(
		attribute.String("order.number", req.OrderNumber),
		attribute.Int("order.items", len(req.Items)),
	))
	defer func() {
		s.imports.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", Outcome(rerr))))
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Checked once up front; a concurrent import can still win the race and
	// is caught by the unique constraint in Create.
	exists, err := s.orders.ExistsByNumber(ctx, req.OrderNumber)
	if err != nil {
		return nil, errors.Wrap(err, "check order number")
	}
	if exists {
		return nil, &DuplicateOrderError{OrderNumber: req.OrderNumber}
	}

	fetched, err := s.products.GetByIDs(ctx, req.productIDs())
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}
	catalog := product.Index(fetched)

	verr := &ValidationError{}
	items := make([]Item, len(req.Items))
	products := make([]product.Product, 0, len(req.Items))
	prices := make(map[int64]decimal.Decimal, len(catalog))
	for i, line := range req.Items {
		p, ok := catalog[line.ProductID]
		if !ok {
			verr.Addf(ItemField(i, FieldProductID), "product %d does not exist", line.ProductID)
			continue
		}
		items[i] = Item{ProductID: p.ID, Quantity: int(line.Quantity)}
		products = append(products, p)
		prices[p.ID] = p.Price
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	total, err := CalculateTotal(items, prices)
	if err != nil {
		return nil, errors.Wrap(err, "calculate total")
	}
	if total.GreaterThanOrEqual(MaxTotalPrice) {
		verr.Addf(FieldProductsData, "order total %s exceeds the storable maximum", total.StringFixed(2))
		return nil, verr
	}

	o := &Order{
		Number:     req.OrderNumber,
		TotalPrice: total,
		CreatedAt:  s.now().UTC().Truncate(time.Microsecond),
		Items:      items,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return &ImportResult{
		Order:    o,
		Products: products,
	}, nil
}

// Outcome classifies an Import error for metrics and logs.
func Outcome(err error) string {
	if err == nil {
		return OutcomeCreated
	}
	var (
		verr *ValidationError
		dup  *DuplicateOrderError
	)
	switch {
	case errors.As(err, &verr):
		return OutcomeInvalid
	case errors.As(err, &dup):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}
