package credits

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles credit balance and transaction-log database operations
type Ledger struct {
	db *pgxpool.Pool
}

// Transaction is an immutable ledger entry. Negative amounts are consumption,
// positive amounts are grants. The log is audit history only - the balance is
// denormalized on the profile row, never re-aggregated from here.
type Transaction struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Amount          int       `json:"amount"`
	TransactionType string    `json:"transaction_type"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"created_at"`
}

// ledger transaction types
const (
	TypeTextGeneration      = "text_generation"
	TypeImageGeneration     = "image_generation"
	TypeTextExport          = "text_export"
	TypeSubscriptionRenewal = "subscription_renewal"
)
