package billing

import (
	"context"

	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/copyforge/profiles"
)

// ProfileStore is the slice of the profile repository the billing service
// writes through.
type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID string) (*profiles.Profile, error)
	FindByCustomerID(ctx context.Context, customerID string) (*profiles.Profile, error)
	SetStripeCustomer(ctx context.Context, userID, customerID string) error
	ApplySubscription(ctx context.Context, userID string, update profiles.SubscriptionUpdate) error
	RevertToFree(ctx context.Context, userID string, freeCredits int) error
}

// Ledger records webhook-driven credit grants.
type Ledger interface {
	Grant(ctx context.Context, userID string, amount int, transactionType, description, stripeEventID string) error
}

// translates Stripe lifecycle events into profile and ledger writes
type Service struct {
	profiles      ProfileStore
	ledger        Ledger
	catalog       *plans.Catalog
	webhookSecret string
	frontendURL   string
}

func NewService(profileStore ProfileStore, ledger Ledger, catalog *plans.Catalog, webhookSecret, frontendURL string) *Service {
	return &Service{
		profiles:      profileStore,
		ledger:        ledger,
		catalog:       catalog,
		webhookSecret: webhookSecret,
		frontendURL:   frontendURL,
	}
}
