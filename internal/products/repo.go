package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/product"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/util"
)

var (
	ErrNotOwner        = errors.New("product belongs to another producer")
	ErrProductNotFound = errors.New("product not found")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type CreateProductInput struct {
	ProducerID  int64
	CategoryID  int64
	BrandID     int64
	Name        string
	Description string
	PriceMinor  int64
	Currency    string
}

func (r *Repo) Create(ctx context.Context, in CreateProductInput) (product.Product, error) {
	var p product.Product
	err := r.db.QueryRow(ctx, `
		INSERT INTO products (producer_id, category_id, brand_id, name, slug, description, price_minor, currency, is_active)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,true)
		RETURNING id, producer_id, category_id, brand_id, name, slug, COALESCE(description,''), price_minor, currency, is_active, created_at, updated_at
	`, in.ProducerID, in.CategoryID, in.BrandID, in.Name, util.Slugify(in.Name), in.Description, in.PriceMinor, in.Currency).Scan(
		&p.ID, &p.ProducerID, &p.CategoryID, &p.BrandID, &p.Name, &p.Slug, &p.Description,
		&p.PriceMinor, &p.Currency, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

type UpdateProductInput struct {
	Name        *string
	Description *string
	PriceMinor  *int64
	CategoryID  *int64
	BrandID     *int64
	IsActive    *bool
}

// Update patches a product. ownerID nil means admin (no ownership
// filter); otherwise the row must belong to that producer.
func (r *Repo) Update(ctx context.Context, id int64, ownerID *int64, in UpdateProductInput) (product.Product, error) {
	var slug any
	if in.Name != nil {
		slug = util.Slugify(*in.Name)
	}

	var p product.Product
	err := r.db.QueryRow(ctx, `
		UPDATE products
		SET
		  name = COALESCE($3, name),
		  slug = CASE WHEN $3 IS NULL THEN slug ELSE $4 END,
		  description = COALESCE($5, description),
		  price_minor = COALESCE($6, price_minor),
		  category_id = COALESCE($7, category_id),
		  brand_id = COALESCE($8, brand_id),
		  is_active = COALESCE($9, is_active),
		  updated_at = now()
		WHERE id = $1 AND ($2::bigint IS NULL OR producer_id = $2)
		RETURNING id, producer_id, category_id, brand_id, name, slug, COALESCE(description,''), price_minor, currency, is_active, created_at, updated_at
	`, id, ownerID, in.Name, slug, in.Description, in.PriceMinor, in.CategoryID, in.BrandID, in.IsActive).Scan(
		&p.ID, &p.ProducerID, &p.CategoryID, &p.BrandID, &p.Name, &p.Slug, &p.Description,
		&p.PriceMinor, &p.Currency, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) && ownerID != nil {
		return product.Product{}, ErrNotOwner
	}
	return p, err
}

// Delete removes a product and returns its image rows so the caller
// can clean up the files on disk. The image rows themselves go with
// the product via ON DELETE CASCADE. ownerID nil means admin.
func (r *Repo) Delete(ctx context.Context, id int64, ownerID *int64) ([]product.Image, error) {
	imgs, err := r.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}

	ct, err := r.db.Exec(ctx, `
		DELETE FROM products
		WHERE id = $1 AND ($2::bigint IS NULL OR producer_id = $2)
	`, id, ownerID)
	if err != nil {
		return nil, err
	}
	if ct.RowsAffected() == 0 {
		if ownerID != nil {
			if _, err := r.Owner(ctx, id); err == nil {
				return nil, ErrNotOwner
			}
		}
		return nil, ErrProductNotFound
	}
	return imgs, nil
}

// Owner reports which producer a product belongs to, for upload
// authorization.
func (r *Repo) Owner(ctx context.Context, productID int64) (int64, error) {
	var producerID int64
	err := r.db.QueryRow(ctx, `SELECT producer_id FROM products WHERE id=$1`, productID).Scan(&producerID)
	return producerID, err
}

type ListFilter struct {
	CategorySlug string
	BrandSlug    string
}

func (r *Repo) ListPublic(ctx context.Context, f ListFilter) ([]product.Product, error) {
	q := `
		SELECT
		  p.id, p.producer_id, p.category_id, p.brand_id, p.name, p.slug, COALESCE(p.description,''),
		  p.price_minor, p.currency, p.is_active, p.created_at, p.updated_at,
		  c.name AS category_name, b.name AS brand_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		WHERE p.is_active = true AND c.is_active = true AND b.is_active = true
	`
	args := []any{}
	if f.CategorySlug != "" {
		args = append(args, f.CategorySlug)
		q += ` AND c.slug = $1`
	}
	if f.BrandSlug != "" {
		args = append(args, f.BrandSlug)
		if len(args) == 1 {
			q += ` AND b.slug = $1`
		} else {
			q += ` AND b.slug = $2`
		}
	}
	q += ` ORDER BY p.created_at DESC`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Product
	for rows.Next() {
		var p product.Product
		if err := rows.Scan(
			&p.ID, &p.ProducerID, &p.CategoryID, &p.BrandID, &p.Name, &p.Slug, &p.Description,
			&p.PriceMinor, &p.Currency, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
			&p.Category, &p.Brand,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) GetPublic(ctx context.Context, id int64) (product.Product, error) {
	var p product.Product
	err := r.db.QueryRow(ctx, `
		SELECT
		  p.id, p.producer_id, p.category_id, p.brand_id, p.name, p.slug, COALESCE(p.description,''),
		  p.price_minor, p.currency, p.is_active, p.created_at, p.updated_at,
		  c.name AS category_name, b.name AS brand_name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN brands b ON b.id = p.brand_id
		WHERE p.id = $1 AND p.is_active = true AND c.is_active = true AND b.is_active = true
	`, id).Scan(
		&p.ID, &p.ProducerID, &p.CategoryID, &p.BrandID, &p.Name, &p.Slug, &p.Description,
		&p.PriceMinor, &p.Currency, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		&p.Category, &p.Brand,
	)
	if err != nil {
		return product.Product{}, err
	}

	imgs, err := r.ListImages(ctx, p.ID)
	if err != nil {
		return product.Product{}, err
	}
	p.Images = imgs
	return p, nil
}

func (r *Repo) ListImages(ctx context.Context, productID int64) ([]product.Image, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, product_id, file_path, sort_order, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY sort_order ASC, id ASC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []product.Image
	for rows.Next() {
		var im product.Image
		if err := rows.Scan(&im.ID, &im.ProductID, &im.FilePath, &im.SortOrder, &im.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, im)
	}
	return out, rows.Err()
}

// AddImage appends one image, continuing the product's existing
// sort order so later upload batches never collide with earlier ones.
func (r *Repo) AddImage(ctx context.Context, productID int64, filePath string) (product.Image, error) {
	var im product.Image
	err := r.db.QueryRow(ctx, `
		INSERT INTO product_images (product_id, file_path, sort_order)
		SELECT $1, $2, COALESCE(MAX(sort_order)+1, 0)
		FROM product_images WHERE product_id = $1
		RETURNING id, product_id, file_path, sort_order, created_at
	`, productID, filePath).Scan(&im.ID, &im.ProductID, &im.FilePath, &im.SortOrder, &im.CreatedAt)
	return im, err
}
