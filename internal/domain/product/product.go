package product

import "time"

// All prices are integer minor units (pesewas/cents).
type Product struct {
	ID          int64     `json:"id"`
	ProducerID  int64     `json:"producer_id"`
	CategoryID  int64     `json:"category_id"`
	BrandID     int64     `json:"brand_id"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	PriceMinor  int64     `json:"price_minor"`
	Currency    string    `json:"currency"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Images      []Image   `json:"images,omitempty"`
}

type Image struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	FilePath  string    `json:"file_path"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}
