package usage

const (
	queryCount = `
		SELECT COUNT(*)
		FROM feature_usage
		WHERE user_id = $1 AND feature_type = $2
	`

	queryRecord = `
		INSERT INTO feature_usage (user_id, feature_type, credits_used, metadata)
		VALUES ($1, $2, $3, $4)
	`
)
