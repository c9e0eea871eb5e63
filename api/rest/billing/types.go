package billing

import "codeberg.org/copyforge/server/copyforge/plans"

// CheckoutRequest picks the plan to subscribe to
type CheckoutRequest struct {
	Tier string `json:"tier" binding:"required"`
}

// SessionResponse carries a hosted Stripe page URL
type SessionResponse struct {
	URL string `json:"url"`
}

// PlansResponse lists the purchasable plans
type PlansResponse struct {
	Plans []plans.Plan `json:"plans"`
}
