package brands

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/brand"
	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/util"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

func (r *Repo) ListActive(ctx context.Context) ([]brand.Brand, error) {
	return r.list(ctx, `
		SELECT id, name, slug, is_active, sort_order, created_at, updated_at
		FROM brands
		WHERE is_active = true
		ORDER BY sort_order ASC, name ASC
	`)
}

func (r *Repo) AdminListAll(ctx context.Context) ([]brand.Brand, error) {
	return r.list(ctx, `
		SELECT id, name, slug, is_active, sort_order, created_at, updated_at
		FROM brands
		ORDER BY sort_order ASC, name ASC
	`)
}

func (r *Repo) list(ctx context.Context, q string) ([]brand.Brand, error) {
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []brand.Brand
	for rows.Next() {
		var b brand.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.IsActive, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, name string, sortOrder int) (brand.Brand, error) {
	slug := util.Slugify(name)

	var b brand.Brand
	err := r.db.QueryRow(ctx, `
		INSERT INTO brands (name, slug, sort_order, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, name, slug, is_active, sort_order, created_at, updated_at
	`, name, slug, sortOrder).Scan(
		&b.ID, &b.Name, &b.Slug, &b.IsActive, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt,
	)
	return b, err
}

func (r *Repo) Update(ctx context.Context, id int64, name *string, sortOrder *int, isActive *bool) (brand.Brand, error) {
	var b brand.Brand
	err := r.db.QueryRow(ctx, `
		UPDATE brands
		SET
		  name = COALESCE($2, name),
		  slug = CASE WHEN $2 IS NULL THEN slug ELSE $5 END,
		  sort_order = COALESCE($3, sort_order),
		  is_active = COALESCE($4, is_active)
		WHERE id = $1
		RETURNING id, name, slug, is_active, sort_order, created_at, updated_at
	`, id, name, sortOrder, isActive, func() any {
		if name == nil {
			return nil
		}
		return util.Slugify(*name)
	}()).Scan(&b.ID, &b.Name, &b.Slug, &b.IsActive, &b.SortOrder, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
