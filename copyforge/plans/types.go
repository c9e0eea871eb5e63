package plans

// Plan is a static reference record joining a Stripe price to a tier and its
// monthly credit allotment. The catalog is read-only at runtime.
type Plan struct {
	Tier           string   `json:"tier"`
	Name           string   `json:"name"`
	MonthlyCredits int      `json:"monthly_credits"`
	PriceID        string   `json:"-"`
	PriceCents     int      `json:"price_cents"`
	Features       []string `json:"features"`
}

// resolves Stripe price identifiers to plans
type Catalog struct {
	byPriceID map[string]Plan
	byTier    map[string]Plan
}
