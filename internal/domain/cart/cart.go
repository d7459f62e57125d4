package cart

import "errors"

// ErrBadPrice means an available cart line resolved to a non-positive
// unit price. That is a catalog integrity problem, never a free item.
var ErrBadPrice = errors.New("cart line has non-positive unit price")

type Item struct {
	ID             int64  `json:"id"`
	ProductID      int64  `json:"product_id"`
	Name           string `json:"name"`
	ImagePath      string `json:"image_path,omitempty"`
	Qty            int    `json:"qty"`
	UnitPriceMinor int64  `json:"unit_price_minor"`
	SubtotalMinor  int64  `json:"subtotal_minor"`
}

// UnavailableItem is a cart row whose product no longer resolves to a
// purchasable product. It stays in the cart but never in the total.
type UnavailableItem struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Qty       int    `json:"qty"`
	Reason    string `json:"reason"`
}

// Summary is the aggregate view of one customer's cart. TotalMinor is
// always recomputed from live product prices at read time.
type Summary struct {
	CartID      int64             `json:"cart_id"`
	UserID      int64             `json:"user_id"`
	Items       []Item            `json:"items"`
	Unavailable []UnavailableItem `json:"unavailable,omitempty"`
	TotalMinor  int64             `json:"total_minor"`
	Currency    string            `json:"currency"`
	Count       int               `json:"count"`
}

// Total sums qty x unit price over the available lines. It fails on any
// non-positive price rather than treating the line as free.
func Total(items []Item) (int64, error) {
	var total int64
	for _, it := range items {
		if it.UnitPriceMinor <= 0 {
			return 0, ErrBadPrice
		}
		total += int64(it.Qty) * it.UnitPriceMinor
	}
	return total, nil
}

func (s Summary) Empty() bool {
	return len(s.Items) == 0
}
