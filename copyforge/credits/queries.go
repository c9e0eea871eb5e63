package credits

const (
	queryBalance = `
		SELECT credits_remaining
		FROM profiles
		WHERE user_id = $1 AND tier <> 'free'
	`

	// the conditional decrement is the single hard guarantee in the billing
	// core: the WHERE clause makes overdraw impossible regardless of how many
	// requests race past the advisory check
	queryConditionalDecrement = `
		UPDATE profiles
		SET credits_remaining = credits_remaining - $2, updated_at = NOW()
		WHERE user_id = $1 AND tier <> 'free' AND credits_remaining >= $2
		RETURNING credits_remaining
	`

	queryInsertTransaction = `
		INSERT INTO credit_transactions (user_id, amount, transaction_type, description)
		VALUES ($1, $2, $3, $4)
	`

	// grants carry the provider event id; the unique index on
	// (user_id, stripe_event_id) makes webhook redelivery append nothing
	queryInsertGrant = `
		INSERT INTO credit_transactions (user_id, amount, transaction_type, description, stripe_event_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, stripe_event_id) DO NOTHING
	`

	queryHistory = `
		SELECT id, user_id, amount, transaction_type, description, created_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
)
