package gate

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/copyforge/server/copyforge/credits"
	"codeberg.org/copyforge/server/copyforge/profiles"
	"codeberg.org/copyforge/server/copyforge/usage"
	"codeberg.org/copyforge/server/internal/entitlements"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// implements ProfileStore for testing
type mockProfiles struct {
	profile *profiles.Profile
	err     error
}

func (m *mockProfiles) GetOrCreate(_ context.Context, userID string) (*profiles.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}

	if m.profile != nil {
		return m.profile, nil
	}

	return &profiles.Profile{UserID: userID, Tier: "free", CreditsRemaining: 100, CreditsTotal: 100}, nil
}

// implements UsageCounter for testing
type mockUsage struct {
	counts    map[usage.FeatureType]int
	recorded  []usage.FeatureType
	recordErr error
}

func (m *mockUsage) Count(_ context.Context, _ string, featureType usage.FeatureType) (int, error) {
	return m.counts[featureType], nil
}

func (m *mockUsage) Record(_ context.Context, _ string, featureType usage.FeatureType, _ int, _ map[string]any) error {
	if m.recordErr != nil {
		return m.recordErr
	}

	m.recorded = append(m.recorded, featureType)
	return nil
}

// implements CreditLedger for testing
type mockLedger struct {
	balance  int
	checkErr error
	useErr   error
	used     []int
}

func (m *mockLedger) Check(_ context.Context, _ string, amount int) (bool, error) {
	if m.checkErr != nil {
		return false, m.checkErr
	}

	return amount <= m.balance, nil
}

func (m *mockLedger) Use(_ context.Context, _ string, amount int, _, _ string) error {
	if m.useErr != nil {
		return m.useErr
	}

	if amount > m.balance {
		return credits.ErrInsufficientCredits
	}

	m.balance -= amount
	m.used = append(m.used, amount)
	return nil
}

// implements ChatCounter for testing
type mockChats struct {
	active   int
	messages int
}

func (m *mockChats) CountActive(_ context.Context, _ string) (int, error) {
	return m.active, nil
}

func (m *mockChats) CountMessages(_ context.Context, _ string) (int, error) {
	return m.messages, nil
}

func newTestGate(tier string, balance int) (*Gate, *mockUsage, *mockLedger, *mockChats) {
	profileStore := &mockProfiles{profile: &profiles.Profile{
		UserID:           "u1",
		Tier:             tier,
		CreditsRemaining: balance,
		CreditsTotal:     balance,
	}}
	usageCounter := &mockUsage{counts: map[usage.FeatureType]int{}}
	ledger := &mockLedger{balance: balance}
	chatCounter := &mockChats{}

	return New(profileStore, usageCounter, ledger, chatCounter), usageCounter, ledger, chatCounter
}

func TestAuthorize_FreeImageCapAllowThenDeny(t *testing.T) {
	g, usageCounter, _, _ := newTestGate("free", 0)

	// zero prior generations: allowed
	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration})
	require.NoError(t, err)
	assert.Equal(t, entitlements.TierFree, grant.Tier)
	assert.Equal(t, 0, grant.Cost, "free tier is never charged credits")

	require.NoError(t, grant.Commit(context.Background()))
	assert.Equal(t, []usage.FeatureType{usage.FeatureImageGeneration}, usageCounter.recorded)

	// the recorded row pushes the count to the cap; second attempt is denied
	usageCounter.counts[usage.FeatureImageGeneration] = 1

	_, err = g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration})
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestAuthorize_FreeChatCap(t *testing.T) {
	g, _, _, chatCounter := newTestGate("free", 0)

	chatCounter.active = entitlements.MaxChats(entitlements.TierFree)

	_, err := g.Authorize(context.Background(), "u1", Request{Action: ActionNewChat})
	assert.ErrorIs(t, err, ErrLimitReached)
}

func TestAuthorize_PaidTierIgnoresFreeCaps(t *testing.T) {
	g, _, _, chatCounter := newTestGate("pro", 500)

	chatCounter.active = 1000
	chatCounter.messages = 1000

	_, err := g.Authorize(context.Background(), "u1", Request{Action: ActionNewChat})
	require.NoError(t, err)

	_, err = g.Authorize(context.Background(), "u1", Request{Action: ActionChatMessage, ChatID: "c1"})
	require.NoError(t, err)
}

func TestAuthorize_HDImagesProOnly(t *testing.T) {
	for _, tier := range []string{"free", "basic"} {
		g, _, _, _ := newTestGate(tier, 500)

		_, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration, HD: true})
		assert.ErrorIs(t, err, ErrUpgradeRequired, "tier %s should not get hd images", tier)
	}

	g, _, _, _ := newTestGate("pro", 500)

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration, HD: true})
	require.NoError(t, err)
	assert.Equal(t, CostImageGenerationHD, grant.Cost)
}

func TestAuthorize_ModelSelection(t *testing.T) {
	g, _, _, _ := newTestGate("free", 0)

	// free may use the default model only
	_, err := g.Authorize(context.Background(), "u1", Request{
		Action: ActionChatMessage,
		ChatID: "c1",
		Model:  "claude-sonnet-4-20250514",
	})
	assert.ErrorIs(t, err, ErrUpgradeRequired)

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionChatMessage, ChatID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, entitlements.DefaultModel(entitlements.TierFree), grant.Model)

	// basic gets the mid-tier model but not the top one
	g, _, _, _ = newTestGate("basic", 500)

	grant, err = g.Authorize(context.Background(), "u1", Request{
		Action: ActionChatMessage,
		ChatID: "c1",
		Model:  "claude-sonnet-4-20250514",
	})
	require.NoError(t, err)
	assert.Equal(t, "claude-sonnet-4-20250514", grant.Model)

	_, err = g.Authorize(context.Background(), "u1", Request{
		Action: ActionChatMessage,
		ChatID: "c1",
		Model:  "claude-opus-4-20250514",
	})
	assert.ErrorIs(t, err, ErrUpgradeRequired)
}

func TestAuthorize_ExportFormats(t *testing.T) {
	free, _, _, _ := newTestGate("free", 0)

	_, err := free.Authorize(context.Background(), "u1", Request{Action: ActionTextExport, Format: "txt"})
	require.NoError(t, err)

	_, err = free.Authorize(context.Background(), "u1", Request{Action: ActionTextExport, Format: "md"})
	assert.ErrorIs(t, err, ErrUpgradeRequired)

	basic, _, _, _ := newTestGate("basic", 500)

	_, err = basic.Authorize(context.Background(), "u1", Request{Action: ActionTextExport, Format: "md"})
	require.NoError(t, err)

	_, err = basic.Authorize(context.Background(), "u1", Request{Action: ActionTextExport, Format: "pdf"})
	assert.ErrorIs(t, err, ErrUpgradeRequired)

	pro, _, _, _ := newTestGate("pro", 500)

	_, err = pro.Authorize(context.Background(), "u1", Request{Action: ActionTextExport, Format: "pdf"})
	require.NoError(t, err)
}

func TestAuthorize_AdvisoryCreditCheck(t *testing.T) {
	g, _, _, _ := newTestGate("basic", 3)

	// image costs 5, balance 3: denied before the external call
	_, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration})
	assert.ErrorIs(t, err, ErrInsufficientCredits)

	// chat message costs 1: allowed
	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionChatMessage, ChatID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, CostChatMessage, grant.Cost)
}

func TestCommit_PaidDeductsCredits(t *testing.T) {
	g, usageCounter, ledger, _ := newTestGate("pro", 10)

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration})
	require.NoError(t, err)

	require.NoError(t, grant.Commit(context.Background()))

	assert.Equal(t, 5, ledger.balance)
	assert.Empty(t, usageCounter.recorded, "paid tier must not consume free-cap rows")
}

func TestCommit_RaceLostAfterAdvisoryCheck(t *testing.T) {
	g, _, ledger, _ := newTestGate("basic", 5)

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration})
	require.NoError(t, err)

	// a concurrent request drains the balance between check and commit
	ledger.balance = 0

	err = grant.Commit(context.Background())
	assert.ErrorIs(t, err, ErrInsufficientCredits)
	assert.Equal(t, 0, ledger.balance, "balance never goes negative")
}

func TestCommit_RecordFailureSurfacedNotFatal(t *testing.T) {
	g, usageCounter, _, _ := newTestGate("free", 0)

	usageCounter.recordErr = errors.New("connection reset")

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionImageGeneration})
	require.NoError(t, err)

	err = grant.Commit(context.Background())
	assert.Error(t, err, "commit failure is reported so the handler can warn the user")
}

func TestCommit_FreeChatMessageRecordsNothing(t *testing.T) {
	g, usageCounter, ledger, _ := newTestGate("free", 0)

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionChatMessage, ChatID: "c1"})
	require.NoError(t, err)

	require.NoError(t, grant.Commit(context.Background()))

	// message counts come from chat_messages rows, not the usage store
	assert.Empty(t, usageCounter.recorded)
	assert.Empty(t, ledger.used)
}

func TestAuthorize_UnknownTierTreatedAsFree(t *testing.T) {
	profileStore := &mockProfiles{profile: &profiles.Profile{UserID: "u1", Tier: "enterprise"}}
	g := New(profileStore, &mockUsage{counts: map[usage.FeatureType]int{}}, &mockLedger{}, &mockChats{})

	grant, err := g.Authorize(context.Background(), "u1", Request{Action: ActionNewChat})
	require.NoError(t, err)
	assert.Equal(t, entitlements.TierFree, grant.Tier)
}

func TestAuthorize_UnknownAction(t *testing.T) {
	g, _, _, _ := newTestGate("free", 0)

	_, err := g.Authorize(context.Background(), "u1", Request{Action: "teleport"})
	assert.Error(t, err)
}
