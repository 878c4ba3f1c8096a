package forecast

import (
	"testing"
	"time"

	"goalcast/internal/model"
)

func tx(date string, amount float64, category string) model.Transaction {
	d, _ := time.Parse("2006-01-02", date)
	return model.Transaction{Date: d, Amount: amount, Category: category}
}

func fixedSet(categories ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[model.NormalizeCategory(c)] = struct{}{}
	}
	return set
}

func TestAggregateMonthly_SplitsIncomeFixedVariable(t *testing.T) {
	txns := []model.Transaction{
		tx("2025-03-01", 3000, "Salary"),
		tx("2025-03-02", -1500, "Rent"),
		tx("2025-03-10", -200, "Dining"),
		tx("2025-03-12", -100, "Shopping"),
	}

	aggs := AggregateMonthly(txns, 3, fixedSet("Rent"))
	if len(aggs) != 1 {
		t.Fatalf("len(aggs) = %d, want 1", len(aggs))
	}

	agg := aggs[0]
	if agg.Income != 3000 {
		t.Errorf("Income = %v, want 3000", agg.Income)
	}
	if agg.Fixed != 1500 {
		t.Errorf("Fixed = %v, want 1500", agg.Fixed)
	}
	if agg.Variable != 300 {
		t.Errorf("Variable = %v, want 300", agg.Variable)
	}
	if got := agg.Capacity(); got != 1200 {
		t.Errorf("Capacity = %v, want 1200", got)
	}
	if agg.CategorySpend["Dining"] != 200 {
		t.Errorf("CategorySpend[Dining] = %v, want 200", agg.CategorySpend["Dining"])
	}
}

func TestAggregateMonthly_KeepsMostRecentMonths(t *testing.T) {
	txns := []model.Transaction{
		tx("2025-01-05", 100, "Salary"),
		tx("2025-02-05", 200, "Salary"),
		tx("2025-03-05", 300, "Salary"),
		tx("2025-04-05", 400, "Salary"),
	}

	aggs := AggregateMonthly(txns, 3, nil)
	if len(aggs) != 3 {
		t.Fatalf("len(aggs) = %d, want 3", len(aggs))
	}

	// Oldest month dropped, remainder in ascending order.
	wantIncome := []float64{200, 300, 400}
	for i, want := range wantIncome {
		if aggs[i].Income != want {
			t.Errorf("aggs[%d].Income = %v, want %v", i, aggs[i].Income, want)
		}
	}
}

func TestAggregateMonthly_GapMonthsNotSynthesized(t *testing.T) {
	// January and April present, nothing between. Only months that have
	// transactions count toward the baseline.
	txns := []model.Transaction{
		tx("2025-01-05", 100, "Salary"),
		tx("2025-04-05", 400, "Salary"),
	}

	aggs := AggregateMonthly(txns, 3, nil)
	if len(aggs) != 2 {
		t.Fatalf("len(aggs) = %d, want 2", len(aggs))
	}
	if aggs[0].Month.String() != "2025-01" || aggs[1].Month.String() != "2025-04" {
		t.Errorf("months = %s, %s; want 2025-01, 2025-04", aggs[0].Month, aggs[1].Month)
	}
}

func TestAggregateMonthly_Empty(t *testing.T) {
	if aggs := AggregateMonthly(nil, 3, nil); len(aggs) != 0 {
		t.Errorf("len(aggs) = %d, want 0", len(aggs))
	}
}

func TestCategoryHistory(t *testing.T) {
	txns := []model.Transaction{
		tx("2025-02-10", -100, "Dining"),
		tx("2025-03-10", -150, "Dining"),
		tx("2025-03-12", -50, "Shopping"),
	}

	history := CategoryHistory(AggregateMonthly(txns, 3, nil))

	if got := history["Dining"]; len(got) != 2 || got[0] != 100 || got[1] != 150 {
		t.Errorf("history[Dining] = %v, want [100 150]", got)
	}
	if got := history["Shopping"]; len(got) != 1 || got[0] != 50 {
		t.Errorf("history[Shopping] = %v, want [50]", got)
	}
}

func TestCapacities(t *testing.T) {
	txns := []model.Transaction{
		tx("2025-02-01", 2000, "Salary"),
		tx("2025-02-02", -1200, "Rent"),
		tx("2025-03-01", 2000, "Salary"),
		tx("2025-03-02", -1000, "Rent"),
	}

	caps := Capacities(AggregateMonthly(txns, 3, fixedSet("Rent")))
	if len(caps) != 2 || caps[0] != 800 || caps[1] != 1000 {
		t.Errorf("Capacities = %v, want [800 1000]", caps)
	}
}
