package gate

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/internal/entitlements"
)

// creates a new action gate
func New(profileStore ProfileStore, usageCounter UsageCounter, creditLedger CreditLedger, chatCounter ChatCounter) *Gate {
	return &Gate{
		profiles: profileStore,
		usage:    usageCounter,
		credits:  creditLedger,
		chats:    chatCounter,
	}
}

// Authorize resolves the user's tier and runs the pre-flight checks for the
// requested action: feature entitlement, free-tier cap, paid-tier advisory
// credit check. A returned Grant means the handler may perform the external
// side effect and must call Commit afterwards. The credit check here is
// advisory only - the hard guarantee lives in the ledger's conditional
// decrement at Commit time.
func (g *Gate) Authorize(ctx context.Context, userID string, req Request) (*Grant, error) {
	profile, err := g.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	tier := entitlements.Normalize(profile.Tier)

	grant := &Grant{
		Tier:   tier,
		userID: userID,
		action: req.Action,
		gate:   g,
	}

	switch req.Action {
	case ActionNewChat:
		if err := g.checkCap(ctx, entitlements.MaxChats(tier), g.countChats(userID)); err != nil {
			return nil, err
		}

	case ActionChatMessage:
		if err := g.resolveModel(grant, tier, req.Model); err != nil {
			return nil, err
		}

		if err := g.checkCap(ctx, entitlements.MaxMessagesPerChat(tier), g.countMessages(req.ChatID)); err != nil {
			return nil, err
		}

		grant.prepareCharge(CostChatMessage, credits.TypeTextGeneration, "chat message generation", "")

	case ActionRegeneration:
		if err := g.resolveModel(grant, tier, req.Model); err != nil {
			return nil, err
		}

		if err := g.checkCap(ctx, entitlements.MaxRegenerations(tier), g.countUsage(userID, usage.FeatureRegeneration)); err != nil {
			return nil, err
		}

		grant.prepareCharge(CostRegeneration, credits.TypeTextGeneration, "message regeneration", usage.FeatureRegeneration)

	case ActionImageGeneration:
		cost := CostImageGeneration
		description := "image generation"

		if req.HD {
			if !entitlements.HasAccess(tier, entitlements.FeatureHDImages) {
				return nil, ErrUpgradeRequired
			}

			cost = CostImageGenerationHD
			description = "image generation (hd)"
		}

		if err := g.checkCap(ctx, entitlements.MaxImageGenerations(tier), g.countUsage(userID, usage.FeatureImageGeneration)); err != nil {
			return nil, err
		}

		grant.prepareCharge(cost, credits.TypeImageGeneration, description, usage.FeatureImageGeneration)

	case ActionTextExport:
		if err := checkExportFormat(tier, req.Format); err != nil {
			return nil, err
		}

		if err := g.checkCap(ctx, entitlements.MaxTextExports(tier), g.countUsage(userID, usage.FeatureTextExport)); err != nil {
			return nil, err
		}

		grant.prepareCharge(CostTextExport, credits.TypeTextExport, "text export ("+req.Format+")", usage.FeatureTextExport)
		grant.metadata = map[string]any{"format": req.Format}

	default:
		return nil, fmt.Errorf("unknown action %q", req.Action)
	}

	// advisory credit pre-check for paid tiers: short-circuits obviously
	// doomed requests before the expensive external call
	if grant.Cost > 0 {
		ok, err := g.credits.Check(ctx, userID, grant.Cost)
		if err != nil {
			return nil, fmt.Errorf("failed to check credits: %w", err)
		}

		if !ok {
			return nil, ErrInsufficientCredits
		}
	}

	return grant, nil
}

// Commit settles the books after the external side effect succeeded: the
// atomic credit deduction for paid tiers, a usage row for free-tier capped
// actions. Callers never roll back the already-produced result on failure
// here - they surface the returned error as an accounting warning.
func (gr *Grant) Commit(ctx context.Context) error {
	if gr.Cost > 0 {
		err := gr.gate.credits.Use(ctx, gr.userID, gr.Cost, gr.transactionType, gr.description)

		if errors.Is(err, credits.ErrInsufficientCredits) {
			// a concurrent request won the race after our advisory check;
			// the result is still delivered, only the deduction is lost
			return fmt.Errorf("%w: balance changed before commit", ErrInsufficientCredits)
		}

		return err
	}

	if gr.featureType != "" {
		return gr.gate.usage.Record(ctx, gr.userID, gr.featureType, 0, gr.metadata)
	}

	return nil
}

// sets the paid-tier charge and the free-tier usage row for an action.
// Free tier never pays credits; paid tiers never consume cap rows.
func (gr *Grant) prepareCharge(cost int, transactionType, description string, featureType usage.FeatureType) {
	if gr.Tier == entitlements.TierFree {
		gr.featureType = featureType
		return
	}

	gr.Cost = cost
	gr.transactionType = transactionType
	gr.description = description
}

// compares a counter against a cap for the free tier. Count-then-act is a
// known soft limit: two racing requests can both pass. Accepted - free caps
// are best-effort, no money is at stake.
func (g *Gate) checkCap(ctx context.Context, limit int, count counterFunc) error {
	if limit == entitlements.Unlimited {
		return nil
	}

	n, err := count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count usage: %w", err)
	}

	if n >= limit {
		return ErrLimitReached
	}

	return nil
}

func (g *Gate) resolveModel(grant *Grant, tier entitlements.Tier, requested string) error {
	if requested == "" || requested == entitlements.DefaultModel(tier) {
		grant.Model = entitlements.DefaultModel(tier)
		return nil
	}

	if !entitlements.HasAccess(tier, entitlements.FeatureModelSelection) {
		return ErrUpgradeRequired
	}

	if !entitlements.ModelAllowed(tier, requested) {
		return ErrUpgradeRequired
	}

	grant.Model = requested
	return nil
}

type counterFunc func(ctx context.Context) (int, error)

func (g *Gate) countChats(userID string) counterFunc {
	return func(ctx context.Context) (int, error) {
		return g.chats.CountActive(ctx, userID)
	}
}

func (g *Gate) countMessages(chatID string) counterFunc {
	return func(ctx context.Context) (int, error) {
		return g.chats.CountMessages(ctx, chatID)
	}
}

func (g *Gate) countUsage(userID string, featureType usage.FeatureType) counterFunc {
	return func(ctx context.Context) (int, error) {
		return g.usage.Count(ctx, userID, featureType)
	}
}

func checkExportFormat(tier entitlements.Tier, format string) error {
	switch format {
	case "", "txt":
		return nil
	case "md", "markdown":
		if !entitlements.HasAccess(tier, entitlements.FeatureMarkdownExport) {
			return ErrUpgradeRequired
		}

		return nil
	default:
		if !entitlements.HasAccess(tier, entitlements.FeatureAllExportFormats) {
			return ErrUpgradeRequired
		}

		return nil
	}
}
