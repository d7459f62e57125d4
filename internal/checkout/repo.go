package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/cart"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/order"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// Session is one checkout attempt. The reference correlates the
// gateway's redirect back to the amount that was authoritative when the
// attempt started.
type Session struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Reference   string    `json:"reference"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateSession(ctx context.Context, userID int64, reference string, amountMinor int64, currency string) (Session, error) {
	var s Session
	err := r.db.QueryRow(ctx, `
		INSERT INTO checkout_sessions (user_id, reference, amount_minor, currency, status)
		VALUES ($1,$2,$3,$4,$5)
		RETURNING id, user_id, reference, amount_minor, currency, status, created_at, updated_at
	`, userID, reference, amountMinor, currency, StatusInitiated).Scan(
		&s.ID, &s.UserID, &s.Reference, &s.AmountMinor, &s.Currency, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

func (r *Repo) SessionByReference(ctx context.Context, reference string) (Session, error) {
	var s Session
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, reference, amount_minor, currency, status, created_at, updated_at
		FROM checkout_sessions
		WHERE reference = $1
	`, reference).Scan(&s.ID, &s.UserID, &s.Reference, &s.AmountMinor, &s.Currency, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Session{}, ErrSessionNotFound
	}
	return s, err
}

func (r *Repo) SetSessionStatus(ctx context.Context, reference string, st Status) error {
	ct, err := r.db.Exec(ctx, `
		UPDATE checkout_sessions
		SET status = $2, updated_at = now()
		WHERE reference = $1
	`, reference, st)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CreateOrder inserts the order for a verified payment. The unique
// index on reference makes this idempotent across processes: the loser
// of a race reads back the winner's row. The bool reports whether this
// call created the row.
func (r *Repo) CreateOrder(ctx context.Context, userID int64, reference string, amountMinor int64, currency string, items []cart.Item) (order.Order, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return order.Order{}, false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var o order.Order
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (user_id, reference, amount_minor, currency, status)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (reference) DO NOTHING
		RETURNING id, user_id, reference, amount_minor, currency, status, created_at
	`, userID, reference, amountMinor, currency, order.StatusPaid).Scan(
		&o.ID, &o.UserID, &o.Reference, &o.AmountMinor, &o.Currency, &o.Status, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// another request already settled this reference
		existing, lookupErr := r.OrderByReference(ctx, reference)
		return existing, false, lookupErr
	}
	if err != nil {
		return order.Order{}, false, err
	}

	for _, it := range items {
		var oi order.Item
		err := tx.QueryRow(ctx, `
			INSERT INTO order_items (order_id, product_id, name, qty, unit_price_minor)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id, order_id, product_id, name, qty, unit_price_minor
		`, o.ID, it.ProductID, it.Name, it.Qty, it.UnitPriceMinor).Scan(
			&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Name, &oi.Qty, &oi.UnitPriceMinor,
		)
		if err != nil {
			return order.Order{}, false, err
		}
		o.Items = append(o.Items, oi)
	}

	if err := tx.Commit(ctx); err != nil {
		return order.Order{}, false, err
	}
	return o, true, nil
}

func (r *Repo) OrderByReference(ctx context.Context, reference string) (order.Order, error) {
	var o order.Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, reference, amount_minor, currency, status, created_at
		FROM orders
		WHERE reference = $1
	`, reference).Scan(&o.ID, &o.UserID, &o.Reference, &o.AmountMinor, &o.Currency, &o.Status, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return order.Order{}, ErrOrderNotFound
	}
	return o, err
}

func (r *Repo) ListOrders(ctx context.Context, userID int64) ([]order.Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, reference, amount_minor, currency, status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Reference, &o.AmountMinor, &o.Currency, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
