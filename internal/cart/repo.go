package cart

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/cart"
)

var ErrItemNotFound = errors.New("item not in cart")

type Repo struct {
	db       *pgxpool.Pool
	currency string
}

func NewRepo(db *pgxpool.Pool, currency string) *Repo {
	return &Repo{db: db, currency: currency}
}

func (r *Repo) getOrCreateCartID(ctx context.Context, userID int64) (int64, error) {
	var cartID int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO carts (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET updated_at = now()
		RETURNING id
	`, userID).Scan(&cartID)
	return cartID, err
}

func (r *Repo) AddItem(ctx context.Context, userID, productID int64, qty int) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO cart_items (cart_id, product_id, qty)
		VALUES ($1,$2,$3)
		ON CONFLICT (cart_id, product_id)
		DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty
	`, cartID, productID, qty)
	return err
}

func (r *Repo) UpdateQty(ctx context.Context, userID, productID int64, qty int) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, `
		UPDATE cart_items
		SET qty = $3
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *Repo) RemoveItem(ctx context.Context, userID, productID int64) error {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return err
	}

	ct, err := r.db.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id = $1 AND product_id = $2
	`, cartID, productID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

// Clear empties the cart after a verified payment.
func (r *Repo) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Exec(ctx, `
		DELETE FROM cart_items
		WHERE cart_id IN (SELECT id FROM carts WHERE user_id = $1)
	`, userID)
	return err
}

// Summary resolves every cart row against the live product table and
// recomputes the total from current prices. Rows whose product is gone
// or deactivated are reported, not billed, and never dropped silently.
func (r *Repo) Summary(ctx context.Context, userID int64) (cart.Summary, error) {
	cartID, err := r.getOrCreateCartID(ctx, userID)
	if err != nil {
		return cart.Summary{}, err
	}

	out := cart.Summary{CartID: cartID, UserID: userID, Currency: r.currency}

	rows, err := r.db.Query(ctx, `
		SELECT
		  ci.id, ci.product_id, ci.qty,
		  p.id, p.name, p.price_minor, p.is_active,
		  (SELECT pi.file_path FROM product_images pi
		   WHERE pi.product_id = p.id
		   ORDER BY pi.sort_order ASC, pi.id ASC LIMIT 1)
		FROM cart_items ci
		LEFT JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at DESC
	`, cartID)
	if err != nil {
		return cart.Summary{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			lineID, productID int64
			qty               int
			pID               *int64
			pName             *string
			pPrice            *int64
			pActive           *bool
			imagePath         *string
		)
		if err := rows.Scan(&lineID, &productID, &qty, &pID, &pName, &pPrice, &pActive, &imagePath); err != nil {
			return cart.Summary{}, err
		}

		switch {
		case pID == nil:
			out.Unavailable = append(out.Unavailable, cart.UnavailableItem{
				ID: lineID, ProductID: productID, Qty: qty, Reason: "product no longer exists",
			})
		case !*pActive:
			out.Unavailable = append(out.Unavailable, cart.UnavailableItem{
				ID: lineID, ProductID: productID, Qty: qty, Reason: "product not available",
			})
		default:
			it := cart.Item{
				ID:             lineID,
				ProductID:      productID,
				Name:           *pName,
				Qty:            qty,
				UnitPriceMinor: *pPrice,
				SubtotalMinor:  int64(qty) * *pPrice,
			}
			if imagePath != nil {
				it.ImagePath = *imagePath
			}
			out.Items = append(out.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return cart.Summary{}, err
	}

	total, err := cart.Total(out.Items)
	if err != nil {
		return cart.Summary{}, err
	}
	out.TotalMinor = total
	out.Count = len(out.Items)
	return out, nil
}
