package model

// Goal is a savings goal as supplied by the caller. Either the structured
// fields (TargetAmount + MonthsToDeadline) are usable, or FreeText must
// resolve through the goal text parser. Resolution failure is a hard error,
// never a default.
type Goal struct {
	TargetAmount        float64  `json:"targetAmount"`
	MonthsToDeadline    int      `json:"monthsToDeadline"`
	CurrentSavings      float64  `json:"currentSavings"`
	Buffer              float64  `json:"buffer"`
	ProtectedCategories []string `json:"protectedCategories,omitempty"`
	FreeText            string   `json:"freeText,omitempty"`
}

// Structured reports whether the structured fields alone are usable.
func (g Goal) Structured() bool {
	return g.TargetAmount >= 1 && g.MonthsToDeadline >= 1
}

// ProtectedSet returns the protected categories as a normalized lookup set.
func (g Goal) ProtectedSet() map[string]struct{} {
	if len(g.ProtectedCategories) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(g.ProtectedCategories))
	for _, c := range g.ProtectedCategories {
		set[NormalizeCategory(c)] = struct{}{}
	}
	return set
}
