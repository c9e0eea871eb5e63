package profiles

import (
	"context"
	"errors"

	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrProfileNotFound = errors.New("profile not found")

// creates a new profile repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// returns the user's profile, creating a default free-tier profile on first
// authenticated access
func (r *Repository) GetOrCreate(ctx context.Context, userID string) (*Profile, error) {
	if _, err := r.db.Exec(ctx, queryInsertDefault, userID, plans.FreeMonthlyCredits); err != nil {
		return nil, err
	}

	return r.FindByID(ctx, userID)
}

// finds a profile by user ID
func (r *Repository) FindByID(ctx context.Context, userID string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryFindByID, userID))
}

// finds a profile by its Stripe customer reference
func (r *Repository) FindByCustomerID(ctx context.Context, customerID string) (*Profile, error) {
	return r.scanOne(r.db.QueryRow(ctx, queryFindByCustomerID, customerID))
}

// persists the Stripe customer reference on the profile
func (r *Repository) SetStripeCustomer(ctx context.Context, userID, customerID string) error {
	tag, err := r.db.Exec(ctx, querySetStripeCustomer, userID, customerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// applies a webhook-driven subscription change as a full-state replace
func (r *Repository) ApplySubscription(ctx context.Context, userID string, update SubscriptionUpdate) error {
	tag, err := r.db.Exec(
		ctx,
		queryApplySubscription,
		userID,
		update.Tier,
		update.MonthlyCredits,
		update.SubscriptionStart,
		update.SubscriptionEnd,
		update.StripeSubscriptionID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

// reverts a cancelled subscriber to the free tier
func (r *Repository) RevertToFree(ctx context.Context, userID string, freeCredits int) error {
	tag, err := r.db.Exec(ctx, queryRevertToFree, userID, freeCredits)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*Profile, error) {
	var profile Profile

	err := row.Scan(
		&profile.UserID,
		&profile.Tier,
		&profile.CreditsRemaining,
		&profile.CreditsTotal,
		&profile.SubscriptionStart,
		&profile.SubscriptionEnd,
		&profile.StripeSubscriptionID,
		&profile.StripeCustomerID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProfileNotFound
	}

	if err != nil {
		return nil, err
	}

	// malformed upstream data can leave remaining above total; surface it
	// instead of clamping so a billing data error is not masked
	if profile.CreditsRemaining > profile.CreditsTotal {
		logger.Warn("profile credits_remaining exceeds credits_total",
			"user_id", profile.UserID,
			"credits_remaining", profile.CreditsRemaining,
			"credits_total", profile.CreditsTotal,
		)
	}

	return &profile, nil
}
