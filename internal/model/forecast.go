package model

import "context"

// Goal status values. Exactly one holds for any forecast.
const (
	StatusOnTrack    = "on_track"
	StatusBorderline = "borderline"
	StatusOffTrack   = "off_track"
)

// Suggestion lever types.
const (
	LeverVariableTrim        = "variable_trim"
	LeverSubscriptionCleanup = "subscription_cleanup"
	LeverIncome              = "income"
	LeverTimeline            = "timeline"
)

// MonthlyAggregate holds one baseline month's cash-flow totals.
// CategorySpend maps normalized category name to that month's outflow sum
// (negated, so values are positive).
type MonthlyAggregate struct {
	Month         Month              `json:"month"`
	Income        float64            `json:"income"`
	Fixed         float64            `json:"fixed"`
	Variable      float64            `json:"variable"`
	CategorySpend map[string]float64 `json:"categorySpend"`
}

// Capacity is the month's discretionary saving capacity.
func (a MonthlyAggregate) Capacity() float64 {
	return a.Income - a.Fixed - a.Variable
}

// Suggestion is a single actionable behavior change emitted by the
// suggestion engine or the external augmentation service.
type Suggestion struct {
	Title          string  `json:"title"`
	Action         string  `json:"action"`
	Rationale      string  `json:"rationale"`
	LeverType      string  `json:"leverType"`
	ImpactPerMonth float64 `json:"impactPerMonth"`

	// Timeline lever only.
	NewMonthsToDeadline *int     `json:"newMonthsToDeadline,omitempty"`
	NewRequiredMonthly  *float64 `json:"newRequiredMonthly,omitempty"`
}

// ForecastResult is the full analysis output, computed fresh per request.
// All currency fields are rounded to two decimals, half-up.
type ForecastResult struct {
	Status  string `json:"status"`
	OnTrack bool   `json:"onTrack"`

	RequiredMonthly float64 `json:"requiredMonthly"`

	// Echoed when the goal was resolved from free text.
	ParsedTargetAmount     *float64 `json:"parsedTargetAmount,omitempty"`
	ParsedMonthsToDeadline *int     `json:"parsedMonthsToDeadline,omitempty"`

	P10 float64 `json:"p10"`
	P50 float64 `json:"p50"`
	P90 float64 `json:"p90"`

	ProjectedMonthlyToGoal         float64 `json:"projectedMonthlyToGoal"`
	ForecastedBalanceAtDeadlineP50 float64 `json:"forecastedBalanceAtDeadlineP50"`
	MonthlyGap                     float64 `json:"monthlyGap"`

	Suggestions []Suggestion `json:"suggestions"`
}

// SuggestionContext is everything the suggestion engine (and the external
// augmentation collaborator) gets to work with.
type SuggestionContext struct {
	Goal             Goal
	MonthsToDeadline int
	TargetAmount     float64
	CurrentSavings   float64
	CategoryHistory  map[string][]float64
	BaselineMonths   []Month
	P50              float64
	Gap              float64
}

// SuggestionSource produces ordered suggestions for a funding gap.
// Implementations must not fail the forecast: errors are absorbed and
// surface as an empty (or shorter) suggestion list.
type SuggestionSource interface {
	Generate(ctx context.Context, sc SuggestionContext) []Suggestion
}
