package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/order-import/internal/domain/order"
)

const (
	existsOrderSQL = `SELECT EXISTS (SELECT 1 FROM orders WHERE order_number = $1)`

	insertOrderSQL = `INSERT INTO orders (order_number, total_price, created_time)
		VALUES ($1, $2, $3) RETURNING id`

	orderNumberConstraint = "orders_order_number_key"
	itemProductConstraint = "order_items_product_id_fkey"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool

	// beforeItems runs inside the transaction between the order and item
	// inserts. Tests use it to inject failures.
	beforeItems func(ctx context.Context, tx pgx.Tx) error
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// ExistsByNumber reports whether an order with the given number exists.
func (r *OrderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, existsOrderSQL, number).Scan(&exists); err != nil {
		return false, errors.Wrapf(err, "check order %q", number)
	}
	return exists, nil
}

// Create inserts the order row and all of its item rows in one transaction
// and sets o.ID. Nothing is persisted if any statement fails.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	var id int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, insertOrderSQL, o.Number, o.TotalPrice, o.CreatedAt).Scan(&id); err != nil {
			return errors.Wrap(err, "insert order")
		}

		if r.beforeItems != nil {
			if err := r.beforeItems(ctx, tx); err != nil {
				return err
			}
		}

		stmts, err := insertItemsQueries(id, o.Items)
		if err != nil {
			return errors.Wrap(err, "build item insert")
		}
		for _, st := range stmts {
			if _, err := tx.Exec(ctx, st.sql, st.args...); err != nil {
				return errors.Wrap(err, "insert order items")
			}
		}
		return nil
	})
	if err != nil {
		return mapCreateError(o.Number, err)
	}

	o.ID = id
	return nil
}

// itemsPerInsert bounds the rows of one item INSERT. Three parameters per
// row keeps every statement far below the 65535 parameter protocol limit.
const itemsPerInsert = 1000

type statement struct {
	sql  string
	args []any
}

// insertItemsQueries builds multi-row INSERTs covering all items of an
// order, itemsPerInsert rows at a time.
func insertItemsQueries(orderID int64, items []order.Item) ([]statement, error) {
	stmts := make([]statement, 0, (len(items)+itemsPerInsert-1)/itemsPerInsert)
	for start := 0; start < len(items); start += itemsPerInsert {
		end := min(start+itemsPerInsert, len(items))

		q := psql.Insert("order_items").Columns("order_id", "product_id", "quantity")
		for _, item := range items[start:end] {
			q = q.Values(orderID, item.ProductID, item.Quantity)
		}
		query, args, err := q.ToSql()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, statement{sql: query, args: args})
	}
	return stmts, nil
}

func mapCreateError(number string, err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch {
	case pgErr.Code == pgerrcode.UniqueViolation && pgErr.ConstraintName == orderNumberConstraint:
		return &order.DuplicateOrderError{OrderNumber: number}
	case pgErr.Code == pgerrcode.ForeignKeyViolation && pgErr.ConstraintName == itemProductConstraint:
		// A product vanished between resolution and insert.
		verr := &order.ValidationError{}
		verr.Add(order.FieldProductsData, "references a product that does not exist")
		return verr
	default:
		return err
	}
}
