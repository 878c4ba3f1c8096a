// Package forecast turns transaction history plus a savings goal into a
// probabilistic on-track forecast.
package forecast

import (
	"sort"

	"goalcast/internal/model"
)

// AggregateMonthly partitions transactions into calendar months, keeps the
// most recent baselineMonths months present (fewer if history is shorter),
// and returns per-month aggregates ordered chronologically ascending.
//
// Per month: income = sum of positive amounts; fixed = negated negative
// amounts whose normalized category is in the fixed set; variable = negated
// negative amounts outside the fixed set; CategorySpend = negated sums of
// all negative amounts grouped by normalized category. Pure transformation.
func AggregateMonthly(txns []model.Transaction, baselineMonths int, fixed map[string]struct{}) []model.MonthlyAggregate {
	byMonth := make(map[model.Month][]model.Transaction)
	for _, t := range txns {
		key := model.MonthOf(t.Date)
		byMonth[key] = append(byMonth[key], t)
	}

	months := make([]model.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[j].Before(months[i]) })
	if len(months) > baselineMonths {
		months = months[:baselineMonths]
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	aggs := make([]model.MonthlyAggregate, 0, len(months))
	for _, m := range months {
		agg := model.MonthlyAggregate{
			Month:         m,
			CategorySpend: make(map[string]float64),
		}
		for _, t := range byMonth[m] {
			if t.Amount > 0 {
				agg.Income += t.Amount
				continue
			}
			if t.Amount < 0 {
				cat := model.NormalizeCategory(t.Category)
				if _, isFixed := fixed[cat]; isFixed {
					agg.Fixed += -t.Amount
				} else {
					agg.Variable += -t.Amount
				}
				agg.CategorySpend[cat] += -t.Amount
			}
		}
		aggs = append(aggs, agg)
	}

	return aggs
}

// CategoryHistory flattens per-month category spend into per-category
// monthly series, in baseline month order. A category absent in a given
// month contributes no entry for that month.
func CategoryHistory(aggs []model.MonthlyAggregate) map[string][]float64 {
	history := make(map[string][]float64)
	for _, agg := range aggs {
		for cat, spend := range agg.CategorySpend {
			history[cat] = append(history[cat], spend)
		}
	}
	return history
}

// BaselineMonths lists the months covered by the aggregates, ascending.
func BaselineMonths(aggs []model.MonthlyAggregate) []model.Month {
	months := make([]model.Month, len(aggs))
	for i, agg := range aggs {
		months[i] = agg.Month
	}
	return months
}

// Capacities extracts each baseline month's saving capacity.
func Capacities(aggs []model.MonthlyAggregate) []float64 {
	caps := make([]float64, len(aggs))
	for i, agg := range aggs {
		caps[i] = agg.Capacity()
	}
	return caps
}
