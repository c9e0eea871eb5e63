package entitlements

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasAccess_FreeHasNoFeatures(t *testing.T) {
	features := []Feature{
		FeatureModelSelection,
		FeatureMarkdownExport,
		FeatureHDImages,
		FeatureAdvancedModels,
		FeatureAllExportFormats,
	}

	for _, f := range features {
		assert.False(t, HasAccess(TierFree, f), "free should not have %s", f)
	}
}

func TestHasAccess_ProSupersetOfBasic(t *testing.T) {
	features := []Feature{
		FeatureModelSelection,
		FeatureMarkdownExport,
		FeatureHDImages,
		FeatureAdvancedModels,
		FeatureAllExportFormats,
	}

	for _, f := range features {
		if HasAccess(TierBasic, f) {
			assert.True(t, HasAccess(TierPro, f), "pro should include basic feature %s", f)
		}
	}
}

func TestHasAccess_ProExclusives(t *testing.T) {
	assert.True(t, HasAccess(TierPro, FeatureHDImages))
	assert.True(t, HasAccess(TierPro, FeatureAdvancedModels))
	assert.False(t, HasAccess(TierBasic, FeatureHDImages))
	assert.False(t, HasAccess(TierBasic, FeatureAdvancedModels))
}

func TestHasAccess_UnknownTierSameAsFree(t *testing.T) {
	features := []Feature{
		FeatureModelSelection,
		FeatureMarkdownExport,
		FeatureHDImages,
		FeatureAdvancedModels,
		FeatureAllExportFormats,
	}

	for _, tier := range []Tier{"", "enterprise", "FREE", "Pro"} {
		for _, f := range features {
			assert.Equal(t, HasAccess(TierFree, f), HasAccess(tier, f),
				"tier %q feature %s should match free", tier, f)
		}
	}
}

func TestHasAccess_Deterministic(t *testing.T) {
	first := HasAccess(TierPro, FeatureHDImages)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, HasAccess(TierPro, FeatureHDImages))
	}
}

func TestAvailableModels_OrderAndGrowth(t *testing.T) {
	free := AvailableModels(TierFree)
	basic := AvailableModels(TierBasic)
	pro := AvailableModels(TierPro)

	assert.Len(t, free, 1)
	assert.Len(t, basic, 2)
	assert.Len(t, pro, 3)

	// first element is the default selection and stays stable across tiers
	assert.Equal(t, free[0], basic[0])
	assert.Equal(t, basic[0], pro[0])
	assert.Equal(t, free[0], DefaultModel(TierFree))

	// each tier's list is a prefix of the next one up
	assert.Equal(t, basic, pro[:2])
}

func TestAvailableModels_UnknownTierGetsFreeList(t *testing.T) {
	assert.Equal(t, AvailableModels(TierFree), AvailableModels("platinum"))
}

func TestAvailableModels_ReturnsCopy(t *testing.T) {
	first := AvailableModels(TierPro)
	first[0] = "mutated"

	assert.NotEqual(t, "mutated", AvailableModels(TierPro)[0])
}

func TestModelAllowed(t *testing.T) {
	assert.True(t, ModelAllowed(TierFree, DefaultModel(TierFree)))
	assert.False(t, ModelAllowed(TierFree, "claude-opus-4-20250514"))
	assert.True(t, ModelAllowed(TierPro, "claude-opus-4-20250514"))
	assert.False(t, ModelAllowed(TierPro, "gpt-4o"))
}

func TestLimits_FiniteForFreeUnlimitedForPaid(t *testing.T) {
	limits := []func(Tier) int{
		MaxChats,
		MaxMessagesPerChat,
		MaxImageGenerations,
		MaxTextExports,
		MaxRegenerations,
	}

	for _, limit := range limits {
		assert.Greater(t, limit(TierFree), 0)
		assert.Equal(t, Unlimited, limit(TierBasic))
		assert.Equal(t, Unlimited, limit(TierPro))
		assert.Equal(t, limit(TierFree), limit("mystery"), "unknown tier should get free limits")
	}
}
