package profiles

const (
	queryInsertDefault = `
		INSERT INTO profiles (user_id, tier, credits_remaining, credits_total)
		VALUES ($1, 'free', $2, $2)
		ON CONFLICT (user_id) DO NOTHING
	`

	queryFindByID = `
		SELECT user_id, tier, credits_remaining, credits_total,
		       subscription_start, subscription_end,
		       stripe_subscription_id, stripe_customer_id,
		       created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	queryFindByCustomerID = `
		SELECT user_id, tier, credits_remaining, credits_total,
		       subscription_start, subscription_end,
		       stripe_subscription_id, stripe_customer_id,
		       created_at, updated_at
		FROM profiles
		WHERE stripe_customer_id = $1
	`

	querySetStripeCustomer = `
		UPDATE profiles
		SET stripe_customer_id = $2, updated_at = NOW()
		WHERE user_id = $1
	`

	// full-state replace driven by a webhook event. Credits are reset, not
	// topped up, so redelivery of the same event is a no-op. COALESCE keeps
	// stored period timestamps when the provider sent none.
	queryApplySubscription = `
		UPDATE profiles
		SET tier = $2,
		    credits_remaining = $3,
		    credits_total = $3,
		    subscription_start = COALESCE($4, subscription_start),
		    subscription_end = COALESCE($5, subscription_end),
		    stripe_subscription_id = $6,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	// cancellation keeps stripe_customer_id so a resubscribe reuses the
	// same external customer
	queryRevertToFree = `
		UPDATE profiles
		SET tier = 'free',
		    credits_remaining = $2,
		    credits_total = $2,
		    subscription_end = NOW(),
		    stripe_subscription_id = NULL,
		    updated_at = NOW()
		WHERE user_id = $1
	`
)
