package config

import "goalcast/internal/model"

// FixedSet returns the fixed-expense categories as a lookup set keyed by
// normalized name.
func (c ForecastConfig) FixedSet() map[string]struct{} {
	return toSet(c.FixedCategories)
}

// DiscretionarySet returns the discretionary categories as a lookup set
// keyed by normalized name.
func (c ForecastConfig) DiscretionarySet() map[string]struct{} {
	return toSet(c.DiscretionaryCategories)
}

func toSet(categories []string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[model.NormalizeCategory(c)] = struct{}{}
	}
	return set
}
