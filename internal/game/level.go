package game

import "time"

// Tier is the named reading-level bucket shown to users. Levels are stored
// as a numeric ordinal 1-10 and converted to a tier at the boundary.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierElementary   Tier = "elementary"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierExpert       Tier = "expert"
)

const (
	MinLevel = 1
	MaxLevel = 10
)

// TierForLevel maps the numeric ordinal onto its named tier.
// Levels outside 1-10 clamp to the nearest tier.
func TierForLevel(level int) Tier {
	switch {
	case level <= 2:
		return TierBeginner
	case level <= 4:
		return TierElementary
	case level <= 6:
		return TierIntermediate
	case level <= 8:
		return TierAdvanced
	default:
		return TierExpert
	}
}

// AutoAdvance reports whether sessions at this level advance automatically.
// Intermediate and above auto-advance; beginner and elementary are
// tap-to-advance.
func AutoAdvance(level int) bool {
	switch TierForLevel(level) {
	case TierIntermediate, TierAdvanced, TierExpert:
		return true
	default:
		return false
	}
}

// AdvanceDelay returns the inter-word delay for auto-advancing tiers.
// Manual tiers return 0.
func AdvanceDelay(level int) time.Duration {
	switch TierForLevel(level) {
	case TierIntermediate:
		return 1500 * time.Millisecond
	case TierAdvanced:
		return 1000 * time.Millisecond
	case TierExpert:
		return 800 * time.Millisecond
	default:
		return 0
	}
}
