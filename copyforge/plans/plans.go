package plans

import "errors"

// credits granted to a profile on creation and on downgrade to free
const FreeMonthlyCredits = 100

var ErrUnknownPrice = errors.New("unknown price id")

// builds the catalog with the Stripe price identifiers configured for this
// deployment (price IDs differ between live and test mode)
func NewCatalog(basicPriceID, proPriceID string) *Catalog {
	all := []Plan{
		{
			Tier:           "basic",
			Name:           "Basic",
			MonthlyCredits: 1000,
			PriceID:        basicPriceID,
			PriceCents:     900,
			Features: []string{
				"1,000 credits per month",
				"Unlimited chats and exports",
				"Model selection",
				"Markdown export",
			},
		},
		{
			Tier:           "pro",
			Name:           "Pro",
			MonthlyCredits: 5000,
			PriceID:        proPriceID,
			PriceCents:     2900,
			Features: []string{
				"5,000 credits per month",
				"Everything in Basic",
				"HD image generation",
				"Advanced models",
				"All export formats",
			},
		},
	}

	c := &Catalog{
		byPriceID: make(map[string]Plan, len(all)),
		byTier:    make(map[string]Plan, len(all)),
	}

	for _, p := range all {
		c.byTier[p.Tier] = p

		if p.PriceID != "" {
			c.byPriceID[p.PriceID] = p
		}
	}

	return c
}

// resolves a Stripe price identifier to a plan
func (c *Catalog) ByPriceID(priceID string) (Plan, error) {
	plan, ok := c.byPriceID[priceID]

	if !ok {
		return Plan{}, ErrUnknownPrice
	}

	return plan, nil
}

// looks up a plan by tier name
func (c *Catalog) ByTier(tier string) (Plan, bool) {
	plan, ok := c.byTier[tier]
	return plan, ok
}

// returns all purchasable plans for display
func (c *Catalog) All() []Plan {
	return []Plan{c.byTier["basic"], c.byTier["pro"]}
}
