package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotal(t *testing.T) {
	// 120.00 x1 + 80.00 x2 = 280.00
	items := []Item{
		{Qty: 1, UnitPriceMinor: 12000},
		{Qty: 2, UnitPriceMinor: 8000},
	}
	total, err := Total(items)
	require.NoError(t, err)
	assert.Equal(t, int64(28000), total)
}

func TestTotal_Empty(t *testing.T) {
	total, err := Total(nil)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTotal_ZeroPriceIsError(t *testing.T) {
	_, err := Total([]Item{{Qty: 1, UnitPriceMinor: 0}})
	assert.ErrorIs(t, err, ErrBadPrice)
}

func TestTotal_NegativePriceIsError(t *testing.T) {
	_, err := Total([]Item{{Qty: 3, UnitPriceMinor: -500}})
	assert.ErrorIs(t, err, ErrBadPrice)
}

func TestSummaryEmpty(t *testing.T) {
	assert.True(t, Summary{}.Empty())
	assert.False(t, Summary{Items: []Item{{Qty: 1, UnitPriceMinor: 100}}}.Empty())

	// unavailable lines alone do not make a cart checkout-able
	s := Summary{Unavailable: []UnavailableItem{{ProductID: 1, Qty: 1}}}
	assert.True(t, s.Empty())
}
