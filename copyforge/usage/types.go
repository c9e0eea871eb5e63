package usage

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// counts and records free-tier-limited actions. This store enforces nothing:
// caps are compared at the call site by the action gate.
type Store struct {
	db *pgxpool.Pool
}

// feature types tracked per user
type FeatureType string

const (
	FeatureImageGeneration FeatureType = "image_generation"
	FeatureTextExport      FeatureType = "text_export"
	FeatureRegeneration    FeatureType = "regeneration"
)

// Record is one occurrence of a limited action. Append-only; counts are
// derived by counting rows, not by maintaining a running counter.
type Record struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	FeatureType FeatureType    `json:"feature_type"`
	CreditsUsed int            `json:"credits_used"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
