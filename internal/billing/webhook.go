package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"

	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/internal/logger"
)

// VerifyWebhook checks the Stripe-Signature header against the raw payload
// and parses the event.
func (s *Service) VerifyWebhook(payload []byte, signature string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(
		payload,
		signature,
		s.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
}

// HandleEvent applies a verified subscription lifecycle event. Any returned
// error means nothing was partially written and the caller should signal an
// error status so Stripe redelivers. Redelivery of an applied event is safe:
// the profile write is a full-state replacement and the credit grant is
// deduplicated on the event id.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "customer.subscription.created", "customer.subscription.updated":
		return s.handleSubscriptionActive(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	default:
		logger.Debug("ignoring stripe event", "type", event.Type, "event_id", event.ID)
		return nil
	}
}

func (s *Service) handleSubscriptionActive(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("invalid subscription payload: %w", err)
	}

	if sub.Customer == nil || sub.Customer.ID == "" {
		return fmt.Errorf("event %s: missing customer id", event.ID)
	}

	priceID := ""
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		priceID = sub.Items.Data[0].Price.ID
	}

	// an unknown price rejects the whole event rather than guessing a tier
	plan, err := s.catalog.ByPriceID(priceID)
	if err != nil {
		return fmt.Errorf("event %s: price %q: %w", event.ID, priceID, err)
	}

	profile, err := s.profiles.FindByCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("event %s: customer %s: %w", event.ID, sub.Customer.ID, err)
	}

	update := profiles.SubscriptionUpdate{
		Tier:                 plan.Tier,
		MonthlyCredits:       plan.MonthlyCredits,
		StripeSubscriptionID: sub.ID,
	}

	// zero or negative epoch values mean the provider sent nothing usable
	if sub.CurrentPeriodStart > 0 {
		start := time.Unix(sub.CurrentPeriodStart, 0).UTC()
		update.SubscriptionStart = &start
	}

	if sub.CurrentPeriodEnd > 0 {
		end := time.Unix(sub.CurrentPeriodEnd, 0).UTC()
		update.SubscriptionEnd = &end
	}

	if err := s.profiles.ApplySubscription(ctx, profile.UserID, update); err != nil {
		return fmt.Errorf("event %s: failed to apply subscription: %w", event.ID, err)
	}

	description := fmt.Sprintf("%s plan credits", plan.Tier)

	if err := s.ledger.Grant(ctx, profile.UserID, plan.MonthlyCredits, credits.TypeSubscriptionRenewal, description, event.ID); err != nil {
		return fmt.Errorf("event %s: failed to record grant: %w", event.ID, err)
	}

	logger.Info("subscription applied",
		"user_id", profile.UserID,
		"tier", plan.Tier,
		"event_id", event.ID,
	)

	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return fmt.Errorf("invalid subscription payload: %w", err)
	}

	if sub.Customer == nil || sub.Customer.ID == "" {
		return fmt.Errorf("event %s: missing customer id", event.ID)
	}

	profile, err := s.profiles.FindByCustomerID(ctx, sub.Customer.ID)
	if err != nil {
		return fmt.Errorf("event %s: customer %s: %w", event.ID, sub.Customer.ID, err)
	}

	// the customer id stays on the profile so a later resubscribe reuses it
	if err := s.profiles.RevertToFree(ctx, profile.UserID, plans.FreeMonthlyCredits); err != nil {
		return fmt.Errorf("event %s: failed to revert to free: %w", event.ID, err)
	}

	logger.Info("subscription cancelled",
		"user_id", profile.UserID,
		"event_id", event.ID,
	)

	return nil
}
