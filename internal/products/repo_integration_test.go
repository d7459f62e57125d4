package products

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/db"
)

// Run with INTEGRATION=1; needs a local Docker daemon.
func setupRepo(t *testing.T) *Repo {
	t.Helper()
	if os.Getenv("INTEGRATION") == "" {
		t.Skip("set INTEGRATION=1 to run container tests")
	}

	ctx := context.Background()
	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	url, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, db.Migrate("../../migrations", url))

	pool, err := db.NewPostgres(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, role) VALUES
		  (7, 'asantewaa@example.com', 'x', 'producer'),
		  (8, 'kojo@example.com', 'x', 'producer');
		INSERT INTO categories (id, name, slug) VALUES (1, 'Fashion', 'fashion');
		INSERT INTO brands (id, name, slug) VALUES (1, 'Adwoa Crafts', 'adwoa-crafts');
	`)
	require.NoError(t, err)

	return NewRepo(pool)
}

func seedProduct(t *testing.T, repo *Repo, producerID int64, name string) int64 {
	t.Helper()
	p, err := repo.Create(context.Background(), CreateProductInput{
		ProducerID: producerID,
		CategoryID: 1,
		BrandID:    1,
		Name:       name,
		PriceMinor: 12000,
		Currency:   "GHS",
	})
	require.NoError(t, err)
	return p.ID
}

func TestAddImage_SortOrderContinuesAcrossBatches(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := seedProduct(t, repo, 7, "Kente Tote")

	// first batch
	im1, err := repo.AddImage(ctx, id, "7/1/a.png")
	require.NoError(t, err)
	im2, err := repo.AddImage(ctx, id, "7/1/b.png")
	require.NoError(t, err)
	assert.Equal(t, 0, im1.SortOrder)
	assert.Equal(t, 1, im2.SortOrder)

	// a later batch must not restart the ordering
	im3, err := repo.AddImage(ctx, id, "7/1/c.png")
	require.NoError(t, err)
	assert.Equal(t, 2, im3.SortOrder)

	imgs, err := repo.ListImages(ctx, id)
	require.NoError(t, err)
	require.Len(t, imgs, 3)
	assert.Equal(t, []string{"7/1/a.png", "7/1/b.png", "7/1/c.png"},
		[]string{imgs[0].FilePath, imgs[1].FilePath, imgs[2].FilePath})
}

func TestDelete_RemovesRowAndReportsImages(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := seedProduct(t, repo, 7, "Beaded Sandals")

	_, err := repo.AddImage(ctx, id, "7/1/a.png")
	require.NoError(t, err)
	_, err = repo.AddImage(ctx, id, "7/1/b.png")
	require.NoError(t, err)

	owner := int64(7)
	imgs, err := repo.Delete(ctx, id, &owner)
	require.NoError(t, err)
	require.Len(t, imgs, 2, "caller needs the paths for file cleanup")

	_, err = repo.Owner(ctx, id)
	assert.Error(t, err, "product row must be gone")

	// image rows went with the product
	left, err := repo.ListImages(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, left)

	_, err = repo.Delete(ctx, id, &owner)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDelete_OwnershipEnforced(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	id := seedProduct(t, repo, 7, "Shea Butter")

	other := int64(8)
	_, err := repo.Delete(ctx, id, &other)
	assert.ErrorIs(t, err, ErrNotOwner)

	// still there
	producerID, err := repo.Owner(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(7), producerID)

	// admin (no ownership filter) may delete anyone's product
	_, err = repo.Delete(ctx, id, nil)
	require.NoError(t, err)
}
