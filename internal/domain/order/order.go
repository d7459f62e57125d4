package order

import "time"

const StatusPaid = "paid"

// Order is created only by a verified payment. Exactly one row may
// exist per payment reference; the unique index on payment_reference is
// the cross-process guard against double processing.
type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Reference   string    `json:"reference"`
	AmountMinor int64     `json:"amount_minor"`
	Currency    string    `json:"currency"`
	Status      string    `json:"status"`
	Items       []Item    `json:"items,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Item snapshots the cart line at payment time, so later price edits
// never rewrite order history.
type Item struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"order_id"`
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	Qty            int    `json:"qty"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
}
