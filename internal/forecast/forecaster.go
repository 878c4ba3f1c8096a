package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"goalcast/internal/config"
	"goalcast/internal/goaltext"
	"goalcast/internal/model"
	"goalcast/internal/money"
	"goalcast/internal/stats"
)

// ErrGoalResolution indicates that neither the structured goal fields nor
// the free text yielded a usable target amount and month count.
var ErrGoalResolution = errors.New("goal could not be resolved")

// resolvedGoal is a goal after free-text resolution, guaranteed usable.
type resolvedGoal struct {
	model.Goal
	fromText bool
}

// Forecaster computes savings-goal forecasts. It is stateless: independent
// Analyze calls may run fully in parallel with no coordination.
type Forecaster struct {
	cfg         config.Config
	suggestions model.SuggestionSource
}

// New returns a Forecaster. suggestions may be nil, in which case gap
// analysis produces no suggestions.
func New(cfg config.Config, suggestions model.SuggestionSource) *Forecaster {
	return &Forecaster{cfg: cfg, suggestions: suggestions}
}

// ResolveGoal validates the structured goal fields or, failing that,
// routes the free text through the goal text parser.
func (f *Forecaster) ResolveGoal(goal model.Goal, today time.Time) (model.Goal, bool, error) {
	if goal.Structured() {
		return goal, false, nil
	}
	if goal.FreeText == "" {
		return model.Goal{}, false, fmt.Errorf("%w: no usable structured fields and no goal text", ErrGoalResolution)
	}

	parsed, err := goaltext.Parse(goal.FreeText, today)
	if err != nil {
		return model.Goal{}, false, fmt.Errorf("%w: %v", ErrGoalResolution, err)
	}

	resolved := goal
	resolved.TargetAmount = parsed.TargetAmount
	resolved.MonthsToDeadline = parsed.MonthsToDeadline
	return resolved, true, nil
}

// Analyze runs the full forecast: aggregate the baseline window, estimate
// capacity percentiles, classify the goal, and generate suggestions for
// any funding gap.
func (f *Forecaster) Analyze(ctx context.Context, txns []model.Transaction, goal model.Goal, now time.Time) (model.ForecastResult, error) {
	resolved, fromText, err := f.ResolveGoal(goal, now)
	if err != nil {
		return model.ForecastResult{}, err
	}

	fixed := f.cfg.Forecast.FixedSet()
	aggs := AggregateMonthly(txns, f.cfg.Forecast.BaselineMonths, fixed)
	capacities := Capacities(aggs)

	p10 := stats.Quantile(capacities, 10)
	p50 := stats.Quantile(capacities, 50)
	p90 := stats.Quantile(capacities, 90)

	// MonthsToDeadline is validated >= 1 at resolution, so the divisions
	// below are safe.
	remaining := resolved.TargetAmount - resolved.CurrentSavings
	required := money.DivRound2(remaining, resolved.MonthsToDeadline)

	projected := max(0, p50) - resolved.Buffer
	projected = money.Round2(max(0, projected))

	status := classify(p50, p90, required)

	balance := money.Round2(projected*float64(resolved.MonthsToDeadline) + resolved.CurrentSavings)

	gap := money.Round2(max(0, required-projected))

	result := model.ForecastResult{
		Status:                         status,
		OnTrack:                        status == model.StatusOnTrack,
		RequiredMonthly:                required,
		P10:                            money.Round2(p10),
		P50:                            money.Round2(p50),
		P90:                            money.Round2(p90),
		ProjectedMonthlyToGoal:         projected,
		ForecastedBalanceAtDeadlineP50: balance,
		MonthlyGap:                     gap,
		Suggestions:                    []model.Suggestion{},
	}

	if fromText {
		target := money.Round2(resolved.TargetAmount)
		months := resolved.MonthsToDeadline
		result.ParsedTargetAmount = &target
		result.ParsedMonthsToDeadline = &months
	}

	if gap > 0 && f.suggestions != nil {
		result.Suggestions = f.suggestions.Generate(ctx, model.SuggestionContext{
			Goal:             resolved,
			MonthsToDeadline: resolved.MonthsToDeadline,
			TargetAmount:     resolved.TargetAmount,
			CurrentSavings:   resolved.CurrentSavings,
			CategoryHistory:  CategoryHistory(aggs),
			BaselineMonths:   BaselineMonths(aggs),
			P50:              p50,
			Gap:              gap,
		})
	}

	return result, nil
}

// classify applies the status ladder: on_track when the median capacity
// covers the requirement, borderline when only the optimistic p90 does,
// off_track otherwise. Mutually exclusive by construction.
func classify(p50, p90, required float64) string {
	switch {
	case p50 >= required:
		return model.StatusOnTrack
	case p90 >= required:
		return model.StatusBorderline
	default:
		return model.StatusOffTrack
	}
}
