package enums

import "fmt"

// MatchLevel classifies how closely a dealer stock unit matches the shopper's
// current configuration.
type MatchLevel string

const (
	MatchLevelFull     MatchLevel = "FULL_MATCH"
	MatchLevelSameTrim MatchLevel = "SAME_TRIM"
	MatchLevelSimilar  MatchLevel = "SIMILAR"
)

var validMatchLevels = []MatchLevel{
	MatchLevelFull,
	MatchLevelSameTrim,
	MatchLevelSimilar,
}

// String implements fmt.Stringer.
func (m MatchLevel) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MatchLevel.
func (m MatchLevel) IsValid() bool {
	for _, candidate := range validMatchLevels {
		if candidate == m {
			return true
		}
	}
	return false
}

// Label returns the shopper-facing label shown on stock cards.
func (m MatchLevel) Label() string {
	switch m {
	case MatchLevelFull:
		return "完全符合"
	case MatchLevelSameTrim:
		return "相同車款"
	default:
		return "相似車款"
	}
}

// Rank orders levels best-first for sorting stock results.
func (m MatchLevel) Rank() int {
	switch m {
	case MatchLevelFull:
		return 0
	case MatchLevelSameTrim:
		return 1
	default:
		return 2
	}
}

// ParseMatchLevel converts raw input into a MatchLevel.
func ParseMatchLevel(value string) (MatchLevel, error) {
	for _, candidate := range validMatchLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid match level %q", value)
}
