package forecast

import (
	"context"
	"errors"
	"testing"
	"time"

	"goalcast/internal/config"
	"goalcast/internal/model"
)

var testNow = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// baselineTxns yields monthly capacities of 800, 1000, 1200, so p10=840,
// p50=1000, p90=1160.
func baselineTxns() []model.Transaction {
	return []model.Transaction{
		tx("2025-01-01", 3000, "Salary"),
		tx("2025-01-02", -2000, "Rent"),
		tx("2025-01-10", -200, "Dining"),
		tx("2025-02-01", 3000, "Salary"),
		tx("2025-02-02", -1800, "Rent"),
		tx("2025-02-10", -200, "Dining"),
		tx("2025-03-01", 3000, "Salary"),
		tx("2025-03-02", -1600, "Rent"),
		tx("2025-03-10", -200, "Dining"),
	}
}

type stubSource struct {
	called bool
	got    model.SuggestionContext
}

func (s *stubSource) Generate(_ context.Context, sc model.SuggestionContext) []model.Suggestion {
	s.called = true
	s.got = sc
	return []model.Suggestion{{Title: "stub", LeverType: model.LeverVariableTrim}}
}

func TestAnalyze_OnTrack(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	goal := model.Goal{TargetAmount: 12000, MonthsToDeadline: 12}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.StatusOnTrack {
		t.Errorf("Status = %q, want on_track", result.Status)
	}
	if !result.OnTrack {
		t.Error("OnTrack = false, want true")
	}
	if result.RequiredMonthly != 1000 {
		t.Errorf("RequiredMonthly = %v, want 1000", result.RequiredMonthly)
	}
	if result.P50 != 1000 {
		t.Errorf("P50 = %v, want 1000", result.P50)
	}
	if result.ProjectedMonthlyToGoal != 1000 {
		t.Errorf("ProjectedMonthlyToGoal = %v, want 1000", result.ProjectedMonthlyToGoal)
	}
	if result.MonthlyGap != 0 {
		t.Errorf("MonthlyGap = %v, want 0", result.MonthlyGap)
	}
	if result.ForecastedBalanceAtDeadlineP50 != 12000 {
		t.Errorf("ForecastedBalanceAtDeadlineP50 = %v, want 12000", result.ForecastedBalanceAtDeadlineP50)
	}
	if result.ParsedTargetAmount != nil || result.ParsedMonthsToDeadline != nil {
		t.Error("parsed echoes set for a structured goal")
	}
}

func TestAnalyze_Borderline(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	// required 1100: above p50 (1000) but within p90 (1160).
	goal := model.Goal{TargetAmount: 13200, MonthsToDeadline: 12}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.StatusBorderline {
		t.Errorf("Status = %q, want borderline", result.Status)
	}
	if result.OnTrack {
		t.Error("OnTrack = true, want false")
	}
	if result.MonthlyGap != 100 {
		t.Errorf("MonthlyGap = %v, want 100", result.MonthlyGap)
	}
}

func TestAnalyze_OffTrack(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	// required 1200: above even p90 (1160).
	goal := model.Goal{TargetAmount: 14400, MonthsToDeadline: 12}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.StatusOffTrack {
		t.Errorf("Status = %q, want off_track", result.Status)
	}
	if result.MonthlyGap != 200 {
		t.Errorf("MonthlyGap = %v, want 200", result.MonthlyGap)
	}
}

func TestAnalyze_BufferReducesProjection(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	goal := model.Goal{TargetAmount: 12000, MonthsToDeadline: 12, Buffer: 300}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ProjectedMonthlyToGoal != 700 {
		t.Errorf("ProjectedMonthlyToGoal = %v, want 700", result.ProjectedMonthlyToGoal)
	}
	if result.MonthlyGap != 300 {
		t.Errorf("MonthlyGap = %v, want 300", result.MonthlyGap)
	}
}

func TestAnalyze_SavingsReduceRequirement(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	goal := model.Goal{TargetAmount: 12000, MonthsToDeadline: 12, CurrentSavings: 6000}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.RequiredMonthly != 500 {
		t.Errorf("RequiredMonthly = %v, want 500", result.RequiredMonthly)
	}
	if result.ForecastedBalanceAtDeadlineP50 != 18000 {
		t.Errorf("ForecastedBalanceAtDeadlineP50 = %v, want 18000", result.ForecastedBalanceAtDeadlineP50)
	}
	// Projection exceeds the requirement; the gap clamps at zero.
	if result.MonthlyGap != 0 {
		t.Errorf("MonthlyGap = %v, want 0", result.MonthlyGap)
	}
}

func TestAnalyze_OffTrackLowCapacity(t *testing.T) {
	f := New(config.DefaultConfig(), nil)

	// Capacities 200, 400, 600: even the optimistic p90 misses required 1000.
	txns := []model.Transaction{
		tx("2025-01-01", 2000, "Salary"),
		tx("2025-01-02", -1800, "Rent"),
		tx("2025-02-01", 2000, "Salary"),
		tx("2025-02-02", -1600, "Rent"),
		tx("2025-03-01", 2000, "Salary"),
		tx("2025-03-02", -1400, "Rent"),
	}
	goal := model.Goal{TargetAmount: 12000, MonthsToDeadline: 12}

	result, err := f.Analyze(context.Background(), txns, goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.StatusOffTrack {
		t.Errorf("Status = %q, want off_track", result.Status)
	}
	if result.MonthlyGap != 600 {
		t.Errorf("MonthlyGap = %v, want 600", result.MonthlyGap)
	}
}

func TestAnalyze_EmptyHistory(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	goal := model.Goal{TargetAmount: 6000, MonthsToDeadline: 6, CurrentSavings: 100}

	result, err := f.Analyze(context.Background(), nil, goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != model.StatusOffTrack {
		t.Errorf("Status = %q, want off_track", result.Status)
	}
	if result.P50 != 0 {
		t.Errorf("P50 = %v, want 0", result.P50)
	}
	if result.ForecastedBalanceAtDeadlineP50 != 100 {
		t.Errorf("ForecastedBalanceAtDeadlineP50 = %v, want 100 (savings only)", result.ForecastedBalanceAtDeadlineP50)
	}
}

func TestAnalyze_FreeTextGoal(t *testing.T) {
	f := New(config.DefaultConfig(), nil)
	goal := model.Goal{FreeText: "Save $12,000 by 2026-06-15"}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ParsedTargetAmount == nil || *result.ParsedTargetAmount != 12000 {
		t.Errorf("ParsedTargetAmount = %v, want 12000", result.ParsedTargetAmount)
	}
	if result.ParsedMonthsToDeadline == nil || *result.ParsedMonthsToDeadline != 12 {
		t.Errorf("ParsedMonthsToDeadline = %v, want 12", result.ParsedMonthsToDeadline)
	}
	if result.RequiredMonthly != 1000 {
		t.Errorf("RequiredMonthly = %v, want 1000", result.RequiredMonthly)
	}
}

func TestAnalyze_UnresolvableGoal(t *testing.T) {
	f := New(config.DefaultConfig(), nil)

	_, err := f.Analyze(context.Background(), baselineTxns(), model.Goal{FreeText: "save lots"}, testNow)
	if !errors.Is(err, ErrGoalResolution) {
		t.Errorf("err = %v, want ErrGoalResolution", err)
	}

	_, err = f.Analyze(context.Background(), baselineTxns(), model.Goal{}, testNow)
	if !errors.Is(err, ErrGoalResolution) {
		t.Errorf("empty goal: err = %v, want ErrGoalResolution", err)
	}
}

func TestAnalyze_SuggestionsOnlyForPositiveGap(t *testing.T) {
	src := &stubSource{}
	f := New(config.DefaultConfig(), src)
	goal := model.Goal{TargetAmount: 12000, MonthsToDeadline: 12}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.called {
		t.Error("suggestion source called with zero gap")
	}
	if result.Suggestions == nil || len(result.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want empty non-nil slice", result.Suggestions)
	}
}

func TestAnalyze_SuggestionContextWiring(t *testing.T) {
	src := &stubSource{}
	f := New(config.DefaultConfig(), src)
	goal := model.Goal{TargetAmount: 14400, MonthsToDeadline: 12}

	result, err := f.Analyze(context.Background(), baselineTxns(), goal, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !src.called {
		t.Fatal("suggestion source not called despite positive gap")
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0].Title != "stub" {
		t.Errorf("Suggestions = %v, want the stub suggestion", result.Suggestions)
	}
	if src.got.Gap != 200 {
		t.Errorf("context Gap = %v, want 200", src.got.Gap)
	}
	if len(src.got.BaselineMonths) != 3 {
		t.Errorf("context BaselineMonths = %v, want 3 months", src.got.BaselineMonths)
	}
	if len(src.got.CategoryHistory["Dining"]) != 3 {
		t.Errorf("context CategoryHistory[Dining] = %v, want 3 entries", src.got.CategoryHistory["Dining"])
	}
}
