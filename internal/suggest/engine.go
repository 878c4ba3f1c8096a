package suggest

import (
	"context"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"goalcast/internal/config"
	"goalcast/internal/model"
	"goalcast/internal/money"
	"goalcast/internal/stats"
)

// subscriptionCategory is the category the cleanup lever looks for.
const subscriptionCategory = "Subscriptions"

// Engine produces ordered suggestions for a positive monthly gap:
// variable trims, subscription cleanup, a timeline extension, an income
// boost, then whatever the external augmentation service adds.
type Engine struct {
	cfg       config.Config
	augmenter Augmenter
	logger    *logrus.Logger
}

// NewEngine returns an Engine. augmenter may be nil to disable
// augmentation; logger may be nil to silence augmentation warnings.
func NewEngine(cfg config.Config, augmenter Augmenter, logger *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, augmenter: augmenter, logger: logger}
}

// Generate implements model.SuggestionSource.
func (e *Engine) Generate(ctx context.Context, sc model.SuggestionContext) []model.Suggestion {
	out := e.variableTrims(sc)

	if s, ok := e.subscriptionCleanup(sc); ok {
		out = append(out, s)
	}
	out = append(out, e.timelineLever(sc))
	out = append(out, e.incomeLever())

	// Augmentation is best-effort: any failure contributes nothing and
	// never blocks the forecast.
	if e.augmenter != nil {
		extra, err := e.augmenter.Generate(ctx, sc)
		if err != nil {
			if e.logger != nil {
				e.logger.WithError(err).Warn("suggestion augmentation failed")
			}
		} else {
			out = append(out, extra...)
		}
	}

	return out
}

type categoryMedian struct {
	category string
	median   float64
	months   int
}

// variableTrims greedily allocates the gap across discretionary
// categories, largest median spend first, skipping protected categories.
// Each suggestion trims a flat percentage of the category's median; the
// walk stops once the running gap is covered or categories run out. The
// gap is not guaranteed to be fully closed.
func (e *Engine) variableTrims(sc model.SuggestionContext) []model.Suggestion {
	discretionary := e.cfg.Forecast.DiscretionarySet()
	protected := sc.Goal.ProtectedSet()

	medians := make([]categoryMedian, 0, len(sc.CategoryHistory))
	for cat, values := range sc.CategoryHistory {
		if _, ok := discretionary[model.NormalizeCategory(cat)]; !ok {
			continue
		}
		medians = append(medians, categoryMedian{
			category: cat,
			median:   stats.Median(values),
			months:   len(values),
		})
	}
	sort.Slice(medians, func(i, j int) bool {
		if medians[i].median != medians[j].median {
			return medians[i].median > medians[j].median
		}
		return medians[i].category < medians[j].category
	})

	out := []model.Suggestion{}
	remaining := sc.Gap
	for _, cm := range medians {
		if remaining <= 0 {
			break
		}
		if _, ok := protected[model.NormalizeCategory(cm.category)]; ok {
			continue
		}

		impact := money.Round2(cm.median * e.cfg.Levers.TrimPercent)
		t := tipFor(cm.category, e.cfg.Levers.TrimPercent)
		out = append(out, model.Suggestion{
			Title:          t.title,
			Action:         fmt.Sprintf(t.action, fmt.Sprintf("%.2f", impact)),
			Rationale:      fmt.Sprintf("Based on the last %d months of median %s spend", cm.months, cm.category),
			LeverType:      model.LeverVariableTrim,
			ImpactPerMonth: impact,
		})
		remaining -= impact
	}
	return out
}

// subscriptionCleanup emits one fixed suggestion when subscription spend
// history exists, regardless of the remaining-gap state.
func (e *Engine) subscriptionCleanup(sc model.SuggestionContext) (model.Suggestion, bool) {
	history, ok := sc.CategoryHistory[subscriptionCategory]
	if !ok || len(history) == 0 {
		return model.Suggestion{}, false
	}

	median := stats.Median(history)
	impact := max(e.cfg.Levers.SubscriptionFloor, median*e.cfg.Levers.SubscriptionPercent)
	impact = money.Round2(min(impact, e.cfg.Levers.SubscriptionCap))

	return model.Suggestion{
		Title:          "Audit your subscriptions",
		Action:         fmt.Sprintf("Cancel one or two services you rarely use for about $%.2f/month back", impact),
		Rationale:      fmt.Sprintf("Recurring subscriptions run about $%.2f/month at the median", money.Round2(median)),
		LeverType:      model.LeverSubscriptionCleanup,
		ImpactPerMonth: impact,
	}, true
}

// timelineLever proposes extending the deadline by one month; it changes
// the timeline rather than monthly cash flow, so its impact is zero.
func (e *Engine) timelineLever(sc model.SuggestionContext) model.Suggestion {
	newMonths := sc.MonthsToDeadline + 1
	newRequired := money.DivRound2(sc.TargetAmount-sc.CurrentSavings, newMonths)

	return model.Suggestion{
		Title:               "Move the deadline by +1 month",
		Action:              fmt.Sprintf("Extending the timeline lowers the monthly requirement to $%.2f", newRequired),
		Rationale:           "Spreads the remaining amount over more months",
		LeverType:           model.LeverTimeline,
		ImpactPerMonth:      0,
		NewMonthsToDeadline: &newMonths,
		NewRequiredMonthly:  &newRequired,
	}
}

// incomeLever is a fixed, optional suggestion; the boost amount is
// configuration, not a computation.
func (e *Engine) incomeLever() model.Suggestion {
	boost := money.Round2(e.cfg.Levers.IncomeBoost)
	return model.Suggestion{
		Title:          fmt.Sprintf("Add one extra shift / freelance (+$%.0f)", boost),
		Action:         "If feasible, add a small monthly income boost",
		Rationale:      "Only if income seems flexible",
		LeverType:      model.LeverIncome,
		ImpactPerMonth: boost,
	}
}
