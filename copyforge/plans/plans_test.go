package plans

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByPriceID_ResolvesConfiguredPrices(t *testing.T) {
	catalog := NewCatalog("price_basic_123", "price_pro_456")

	basic, err := catalog.ByPriceID("price_basic_123")
	require.NoError(t, err)
	assert.Equal(t, "basic", basic.Tier)
	assert.Equal(t, 1000, basic.MonthlyCredits)

	pro, err := catalog.ByPriceID("price_pro_456")
	require.NoError(t, err)
	assert.Equal(t, "pro", pro.Tier)
	assert.Equal(t, 5000, pro.MonthlyCredits)
}

func TestByPriceID_UnknownPriceRejected(t *testing.T) {
	catalog := NewCatalog("price_basic_123", "price_pro_456")

	_, err := catalog.ByPriceID("price_other")
	assert.ErrorIs(t, err, ErrUnknownPrice)

	_, err = catalog.ByPriceID("")
	assert.ErrorIs(t, err, ErrUnknownPrice)
}

func TestByPriceID_EmptyConfiguredPriceNotResolvable(t *testing.T) {
	// a deployment without a pro price must not resolve "" to the pro plan
	catalog := NewCatalog("price_basic_123", "")

	_, err := catalog.ByPriceID("")
	assert.ErrorIs(t, err, ErrUnknownPrice)
}

func TestByTier(t *testing.T) {
	catalog := NewCatalog("price_basic_123", "price_pro_456")

	plan, ok := catalog.ByTier("pro")
	require.True(t, ok)
	assert.Equal(t, "price_pro_456", plan.PriceID)

	_, ok = catalog.ByTier("free")
	assert.False(t, ok, "free is not a purchasable plan")
}
