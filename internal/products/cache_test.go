package products

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/product"
)

func testCache(t *testing.T) (*ListingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewListingCache(rdb, time.Minute), mr
}

func TestListingCache_RoundTrip(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()
	f := ListFilter{CategorySlug: "bags"}

	_, err := cache.Get(ctx, f)
	assert.ErrorIs(t, err, ErrCacheMiss)

	items := []product.Product{{ID: 1, Name: "Kente Tote", PriceMinor: 12000, Currency: "GHS"}}
	require.NoError(t, cache.Set(ctx, f, items))

	got, err := cache.Get(ctx, f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Kente Tote", got[0].Name)
	assert.Equal(t, int64(12000), got[0].PriceMinor)
}

func TestListingCache_FiltersAreSeparate(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, ListFilter{CategorySlug: "bags"}, []product.Product{{ID: 1}}))

	_, err := cache.Get(ctx, ListFilter{CategorySlug: "shoes"})
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestListingCache_InvalidateBustsEverything(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, ListFilter{}, []product.Product{{ID: 1}}))
	require.NoError(t, cache.Set(ctx, ListFilter{CategorySlug: "bags"}, []product.Product{{ID: 2}}))

	cache.Invalidate(ctx)

	_, err := cache.Get(ctx, ListFilter{})
	assert.ErrorIs(t, err, ErrCacheMiss)
	_, err = cache.Get(ctx, ListFilter{CategorySlug: "bags"})
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestListingCache_EntriesExpire(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, ListFilter{}, []product.Product{{ID: 1}}))
	mr.FastForward(2 * time.Minute)

	_, err := cache.Get(ctx, ListFilter{})
	assert.ErrorIs(t, err, ErrCacheMiss)
}
