package profiles

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles profile database operations
type Repository struct {
	db *pgxpool.Pool
}

// Profile is the per-user billing state. It has two independent writers: the
// webhook state machine (tier, credit resets, billing period) and the credit
// ledger (credits_remaining decrements). Both write through conditional
// single-statement updates so neither clobbers the other's fields.
type Profile struct {
	UserID               string     `json:"user_id"`
	Tier                 string     `json:"tier"`
	CreditsRemaining     int        `json:"credits_remaining"`
	CreditsTotal         int        `json:"credits_total"`
	SubscriptionStart    *time.Time `json:"subscription_start,omitempty"`
	SubscriptionEnd      *time.Time `json:"subscription_end,omitempty"`
	StripeSubscriptionID *string    `json:"-"`
	StripeCustomerID     *string    `json:"-"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// full-state replacement applied by the webhook state machine. Nil period
// timestamps mean the provider sent nothing usable and the stored value is kept.
type SubscriptionUpdate struct {
	Tier                 string
	MonthlyCredits       int
	SubscriptionStart    *time.Time
	SubscriptionEnd      *time.Time
	StripeSubscriptionID string
}
