package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	portal "github.com/stripe/stripe-go/v79/billingportal/session"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/customer"
)

var ErrNoCustomer = errors.New("no billing customer for user")

// InitStripe wires the Stripe API key. Call once at startup.
func InitStripe(secretKey string) {
	stripe.Key = secretKey
}

// EnsureCustomer finds or creates the Stripe customer for a user. The customer
// id is persisted before the id is returned, so a checkout session can never
// reference a customer the database does not know about.
func (s *Service) EnsureCustomer(ctx context.Context, userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("missing user id")
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.StripeCustomerID != nil && *profile.StripeCustomerID != "" {
		return *profile.StripeCustomerID, nil
	}

	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Metadata: map[string]string{
			"user_id": userID,
		},
	}

	cust, err := customer.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create stripe customer: %w", err)
	}

	if err := s.profiles.SetStripeCustomer(ctx, userID, cust.ID); err != nil {
		return "", fmt.Errorf("failed to persist stripe customer: %w", err)
	}

	return cust.ID, nil
}

// CreateCheckoutSession starts a subscription checkout for the given price and
// returns the hosted checkout URL.
func (s *Service) CreateCheckoutSession(ctx context.Context, userID, email, priceID string) (string, error) {
	if _, err := s.catalog.ByPriceID(priceID); err != nil {
		return "", err
	}

	customerID, err := s.EnsureCustomer(ctx, userID, email)
	if err != nil {
		return "", err
	}

	frontendURL := strings.TrimRight(s.frontendURL, "/")

	params := &stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(frontendURL + "/billing/success"),
		CancelURL:  stripe.String(frontendURL + "/billing/cancel"),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return sess.URL, nil
}

// CreatePortalSession opens the Stripe customer portal for an existing
// customer. Users who never checked out get ErrNoCustomer.
func (s *Service) CreatePortalSession(ctx context.Context, userID string) (string, error) {
	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to load profile: %w", err)
	}

	if profile.StripeCustomerID == nil || *profile.StripeCustomerID == "" {
		return "", ErrNoCustomer
	}

	frontendURL := strings.TrimRight(s.frontendURL, "/")

	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*profile.StripeCustomerID),
		ReturnURL: stripe.String(frontendURL + "/settings/billing"),
	}

	sess, err := portal.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create portal session: %w", err)
	}

	return sess.URL, nil
}
