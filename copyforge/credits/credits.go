package credits

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// expected outcome, distinct from infrastructure failure so callers can tell
// "you're out of credits" apart from "something broke"
var ErrInsufficientCredits = errors.New("insufficient credits")

// creates a new credit ledger
func NewLedger(db *pgxpool.Pool) *Ledger {
	return &Ledger{db: db}
}

// Check is the advisory pre-check: it reads the current balance and reports
// whether it covers the amount. The answer can be stale the moment it
// returns - it exists to short-circuit obviously doomed requests before the
// expensive external call, never as the authoritative gate.
func (l *Ledger) Check(ctx context.Context, userID string, amount int) (bool, error) {
	if amount <= 0 {
		return false, nil
	}

	var remaining int

	err := l.db.QueryRow(ctx, queryBalance, userID).Scan(&remaining)

	if errors.Is(err, pgx.ErrNoRows) {
		// no paid profile
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return amount <= remaining, nil
}

// Use performs the authoritative deduction: a single conditional decrement
// that succeeds only if the balance still covers the amount at write time,
// plus one ledger entry, committed together. Returns ErrInsufficientCredits
// when the condition fails (also covers free-tier and missing profiles).
func (l *Ledger) Use(ctx context.Context, userID string, amount int, transactionType, description string) error {
	if amount <= 0 {
		return fmt.Errorf("invalid deduction amount %d", amount)
	}

	tx, err := l.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin ledger transaction: %w", err)
	}

	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var remaining int

	err = tx.QueryRow(ctx, queryConditionalDecrement, userID, amount).Scan(&remaining)

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrInsufficientCredits
	}

	if err != nil {
		return fmt.Errorf("failed to decrement credits: %w", err)
	}

	if _, err := tx.Exec(ctx, queryInsertTransaction, userID, -amount, transactionType, description); err != nil {
		return fmt.Errorf("failed to log credit transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit ledger transaction: %w", err)
	}

	return nil
}

// Grant logs a positive ledger entry for a webhook-driven credit reset. The
// balance itself is written by the profile's full-state replace; this only
// records the audit row, keyed on the provider event id so redelivery of the
// same event appends nothing.
func (l *Ledger) Grant(ctx context.Context, userID string, amount int, transactionType, description, stripeEventID string) error {
	if amount <= 0 {
		return fmt.Errorf("invalid grant amount %d", amount)
	}

	_, err := l.db.Exec(ctx, queryInsertGrant, userID, amount, transactionType, description, stripeEventID)
	if err != nil {
		return fmt.Errorf("failed to log credit grant: %w", err)
	}

	return nil
}

// History returns the user's most recent ledger entries for display
func (l *Ledger) History(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	rows, err := l.db.Query(ctx, queryHistory, userID, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var transactions []Transaction

	for rows.Next() {
		var t Transaction

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Amount,
			&t.TransactionType,
			&t.Description,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
