package entitlements

// Tier is a subscription level. Unknown values degrade to TierFree everywhere
// in this package - limits and feature checks never error.
type Tier string

const (
	TierFree  Tier = "free"
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// Feature is a gated capability beyond the baseline product.
type Feature string

const (
	// choose a non-default model for generation
	FeatureModelSelection Feature = "model_selection"
	// export drafts as markdown in addition to plain text
	FeatureMarkdownExport Feature = "markdown_export"
	// high-quality image generation
	FeatureHDImages Feature = "hd_images"
	// top-tier generation models
	FeatureAdvancedModels Feature = "advanced_models"
	// every export format, including pdf and docx
	FeatureAllExportFormats Feature = "all_export_formats"
)

// Unlimited is the cap sentinel for paid tiers.
const Unlimited = -1

// free has no feature flags at all: free-tier actions are governed purely by
// usage caps, paid extras are governed by these allow-lists
var featureSets = map[Tier]map[Feature]bool{
	TierBasic: {
		FeatureModelSelection: true,
		FeatureMarkdownExport: true,
	},
	TierPro: {
		FeatureModelSelection:   true,
		FeatureMarkdownExport:   true,
		FeatureHDImages:         true,
		FeatureAdvancedModels:   true,
		FeatureAllExportFormats: true,
	},
}

// model lists are display-ordered, first element is the default selection
var modelLists = map[Tier][]string{
	TierFree:  {"claude-3-haiku-20240307"},
	TierBasic: {"claude-3-haiku-20240307", "claude-sonnet-4-20250514"},
	TierPro:   {"claude-3-haiku-20240307", "claude-sonnet-4-20250514", "claude-opus-4-20250514"},
}

// maps an arbitrary tier string onto a known tier, defaulting to free
func Normalize(tier string) Tier {
	switch Tier(tier) {
	case TierBasic:
		return TierBasic
	case TierPro:
		return TierPro
	default:
		return TierFree
	}
}

// reports whether the tier's allow-list contains the feature
func HasAccess(tier Tier, feature Feature) bool {
	return featureSets[Normalize(string(tier))][feature]
}

// returns the models the tier may generate with, in display order
func AvailableModels(tier Tier) []string {
	models := modelLists[Normalize(string(tier))]

	// callers may reorder for display; never hand them the shared backing array
	out := make([]string, len(models))
	copy(out, models)

	return out
}

// returns the default model for the tier
func DefaultModel(tier Tier) string {
	return modelLists[Normalize(string(tier))][0]
}

// reports whether the tier may generate with the given model
func ModelAllowed(tier Tier, model string) bool {
	for _, m := range modelLists[Normalize(string(tier))] {
		if m == model {
			return true
		}
	}

	return false
}

func MaxChats(tier Tier) int {
	if Normalize(string(tier)) == TierFree {
		return 3
	}

	return Unlimited
}

func MaxMessagesPerChat(tier Tier) int {
	if Normalize(string(tier)) == TierFree {
		return 20
	}

	return Unlimited
}

func MaxImageGenerations(tier Tier) int {
	if Normalize(string(tier)) == TierFree {
		return 1
	}

	return Unlimited
}

func MaxTextExports(tier Tier) int {
	if Normalize(string(tier)) == TierFree {
		return 3
	}

	return Unlimited
}

func MaxRegenerations(tier Tier) int {
	if Normalize(string(tier)) == TierFree {
		return 3
	}

	return Unlimited
}
