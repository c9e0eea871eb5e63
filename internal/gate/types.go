package gate

import (
	"context"
	"errors"

	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/internal/entitlements"
)

// denial outcomes - expected business results, not infrastructure errors
var (
	ErrUpgradeRequired     = errors.New("feature requires a higher tier")
	ErrLimitReached        = errors.New("plan limit reached")
	ErrInsufficientCredits = errors.New("insufficient credits")
)

// gated action types
type Action string

const (
	ActionNewChat         Action = "new_chat"
	ActionChatMessage     Action = "chat_message"
	ActionRegeneration    Action = "regeneration"
	ActionImageGeneration Action = "image_generation"
	ActionTextExport      Action = "text_export"
)

// credit costs per paid-tier action
const (
	CostChatMessage       = 1
	CostRegeneration      = 1
	CostImageGeneration   = 5
	CostImageGenerationHD = 10
	CostTextExport        = 1
)

// Request describes the action a handler wants to perform on a user's behalf
type Request struct {
	Action Action
	ChatID string // chat the message/regeneration belongs to
	Model  string // requested model, empty means the tier default
	HD     bool   // high-quality image generation
	Format string // export format: txt, md, pdf, docx, html
}

type ProfileStore interface {
	GetOrCreate(ctx context.Context, userID string) (*profiles.Profile, error)
}

type UsageCounter interface {
	Count(ctx context.Context, userID string, featureType usage.FeatureType) (int, error)
	Record(ctx context.Context, userID string, featureType usage.FeatureType, creditsUsed int, metadata map[string]any) error
}

type CreditLedger interface {
	Check(ctx context.Context, userID string, amount int) (bool, error)
	Use(ctx context.Context, userID string, amount int, transactionType, description string) error
}

type ChatCounter interface {
	CountActive(ctx context.Context, userID string) (int, error)
	CountMessages(ctx context.Context, chatID string) (int, error)
}

// Gate runs the per-call-site protocol: entitlement check, cap or credit
// check, then a post-success Commit once the external side effect landed
type Gate struct {
	profiles ProfileStore
	usage    UsageCounter
	credits  CreditLedger
	chats    ChatCounter
}

// Grant is permission to perform one action, plus everything Commit needs
// to settle the books afterwards
type Grant struct {
	Tier  entitlements.Tier
	Model string // resolved model for generation actions
	Cost  int    // credits deducted on commit, 0 for free tier

	userID          string
	action          Action
	featureType     usage.FeatureType // free-tier usage row to append, empty = none
	transactionType string
	description     string
	metadata        map[string]any
	gate            *Gate
}
