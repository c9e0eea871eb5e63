package usage

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new usage store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// returns how many times the user has performed the limited action
func (s *Store) Count(ctx context.Context, userID string, featureType FeatureType) (int, error) {
	var count int

	if err := s.db.QueryRow(ctx, queryCount, userID, featureType).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// appends one usage row. Callers treat failure as non-blocking: the side
// effect already happened, so a failed record is logged and surfaced as a
// warning, never rolled back.
func (s *Store) Record(ctx context.Context, userID string, featureType FeatureType, creditsUsed int, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}

	_, err := s.db.Exec(ctx, queryRecord, userID, featureType, creditsUsed, metadata)
	return err
}
