package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v79"

	"codeberg.org/copyforge/server/copyforge/plans"
	"codeberg.org/copyforge/server/copyforge/profiles"
)

// implements ProfileStore for testing
type mockProfiles struct {
	byCustomer map[string]*profiles.Profile
	applied    []profiles.SubscriptionUpdate
	reverted   []string
}

func (m *mockProfiles) GetOrCreate(_ context.Context, userID string) (*profiles.Profile, error) {
	return &profiles.Profile{UserID: userID, Tier: "free"}, nil
}

func (m *mockProfiles) FindByCustomerID(_ context.Context, customerID string) (*profiles.Profile, error) {
	p, ok := m.byCustomer[customerID]
	if !ok {
		return nil, profiles.ErrProfileNotFound
	}

	return p, nil
}

func (m *mockProfiles) SetStripeCustomer(_ context.Context, userID, customerID string) error {
	return nil
}

func (m *mockProfiles) ApplySubscription(_ context.Context, userID string, update profiles.SubscriptionUpdate) error {
	m.applied = append(m.applied, update)

	p := m.byCustomer["cus_1"]
	p.Tier = update.Tier
	p.CreditsRemaining = update.MonthlyCredits
	p.CreditsTotal = update.MonthlyCredits

	return nil
}

func (m *mockProfiles) RevertToFree(_ context.Context, userID string, freeCredits int) error {
	m.reverted = append(m.reverted, userID)

	p := m.byCustomer["cus_1"]
	p.Tier = "free"
	p.CreditsRemaining = freeCredits
	p.CreditsTotal = freeCredits

	return nil
}

// implements Ledger for testing, deduplicating on event id like the
// database unique index does
type mockLedger struct {
	grants  []int
	seenIDs map[string]bool
}

func (m *mockLedger) Grant(_ context.Context, _ string, amount int, _, _, stripeEventID string) error {
	if m.seenIDs == nil {
		m.seenIDs = map[string]bool{}
	}

	if m.seenIDs[stripeEventID] {
		return nil
	}

	m.seenIDs[stripeEventID] = true
	m.grants = append(m.grants, amount)

	return nil
}

func newTestService() (*Service, *mockProfiles, *mockLedger) {
	customerID := "cus_1"
	profileStore := &mockProfiles{byCustomer: map[string]*profiles.Profile{
		"cus_1": {UserID: "u1", Tier: "free", StripeCustomerID: &customerID},
	}}
	ledger := &mockLedger{}
	catalog := plans.NewCatalog("price_basic", "price_pro")

	return NewService(profileStore, ledger, catalog, "whsec_test", "https://app.test"), profileStore, ledger
}

func subscriptionEvent(t *testing.T, eventID, eventType, priceID string, periodStart, periodEnd int64) stripe.Event {
	t.Helper()

	payload := fmt.Sprintf(`{
		"id": "sub_1",
		"customer": "cus_1",
		"current_period_start": %d,
		"current_period_end": %d,
		"items": {"data": [{"price": {"id": %q}}]}
	}`, periodStart, periodEnd, priceID)

	return stripe.Event{
		ID:   eventID,
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: json.RawMessage(payload)},
	}
}

func TestHandleEvent_SubscriptionCreated(t *testing.T) {
	svc, profileStore, ledger := newTestService()

	event := subscriptionEvent(t, "evt_1", "customer.subscription.created", "price_basic", 1700000000, 1702592000)

	require.NoError(t, svc.HandleEvent(context.Background(), event))

	require.Len(t, profileStore.applied, 1)
	update := profileStore.applied[0]
	assert.Equal(t, "basic", update.Tier)
	assert.Equal(t, 1000, update.MonthlyCredits)
	assert.Equal(t, "sub_1", update.StripeSubscriptionID)
	require.NotNil(t, update.SubscriptionStart)
	assert.Equal(t, int64(1700000000), update.SubscriptionStart.Unix())

	assert.Equal(t, []int{1000}, ledger.grants)
}

func TestHandleEvent_ReplayIsIdempotent(t *testing.T) {
	svc, profileStore, ledger := newTestService()

	event := subscriptionEvent(t, "evt_1", "customer.subscription.updated", "price_pro", 1700000000, 1702592000)

	require.NoError(t, svc.HandleEvent(context.Background(), event))
	require.NoError(t, svc.HandleEvent(context.Background(), event))

	// the profile write is a full-state replace, so applying twice lands in
	// the same state, and the grant deduplicates on event id
	profile := profileStore.byCustomer["cus_1"]
	assert.Equal(t, "pro", profile.Tier)
	assert.Equal(t, 5000, profile.CreditsRemaining)
	assert.Equal(t, []int{5000}, ledger.grants)
}

func TestHandleEvent_UnknownPriceRejectsWholeEvent(t *testing.T) {
	svc, profileStore, ledger := newTestService()

	event := subscriptionEvent(t, "evt_1", "customer.subscription.updated", "price_unknown", 1700000000, 1702592000)

	err := svc.HandleEvent(context.Background(), event)
	require.ErrorIs(t, err, plans.ErrUnknownPrice)

	assert.Empty(t, profileStore.applied, "no partial update on unknown price")
	assert.Empty(t, ledger.grants)
}

func TestHandleEvent_MissingCustomerRejected(t *testing.T) {
	svc, profileStore, _ := newTestService()

	event := stripe.Event{
		ID:   "evt_1",
		Type: "customer.subscription.updated",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id": "sub_1", "items": {"data": [{"price": {"id": "price_basic"}}]}}`)},
	}

	assert.Error(t, svc.HandleEvent(context.Background(), event))
	assert.Empty(t, profileStore.applied)
}

func TestHandleEvent_UnresolvableCustomerRejected(t *testing.T) {
	svc, profileStore, _ := newTestService()

	event := subscriptionEvent(t, "evt_1", "customer.subscription.updated", "price_basic", 1700000000, 1702592000)
	event.Data.Raw = json.RawMessage(`{"id": "sub_1", "customer": "cus_stranger", "items": {"data": [{"price": {"id": "price_basic"}}]}}`)

	err := svc.HandleEvent(context.Background(), event)
	require.ErrorIs(t, err, profiles.ErrProfileNotFound)
	assert.Empty(t, profileStore.applied)
}

func TestHandleEvent_InvalidTimestampsSkipped(t *testing.T) {
	svc, profileStore, _ := newTestService()

	event := subscriptionEvent(t, "evt_1", "customer.subscription.created", "price_basic", 0, 0)

	require.NoError(t, svc.HandleEvent(context.Background(), event))

	require.Len(t, profileStore.applied, 1)
	assert.Nil(t, profileStore.applied[0].SubscriptionStart)
	assert.Nil(t, profileStore.applied[0].SubscriptionEnd)
}

func TestHandleEvent_DeletedRevertsToFreeKeepingCustomer(t *testing.T) {
	svc, profileStore, _ := newTestService()

	event := subscriptionEvent(t, "evt_1", "customer.subscription.deleted", "price_pro", 0, 0)

	require.NoError(t, svc.HandleEvent(context.Background(), event))

	assert.Equal(t, []string{"u1"}, profileStore.reverted)

	profile := profileStore.byCustomer["cus_1"]
	assert.Equal(t, "free", profile.Tier)
	assert.Equal(t, plans.FreeMonthlyCredits, profile.CreditsRemaining)
	require.NotNil(t, profile.StripeCustomerID, "customer id survives for resubscribe")
	assert.Equal(t, "cus_1", *profile.StripeCustomerID)
}

func TestHandleEvent_UnhandledTypeIgnored(t *testing.T) {
	svc, profileStore, ledger := newTestService()

	event := stripe.Event{
		ID:   "evt_1",
		Type: "invoice.payment_succeeded",
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}

	require.NoError(t, svc.HandleEvent(context.Background(), event))
	assert.Empty(t, profileStore.applied)
	assert.Empty(t, ledger.grants)
}
