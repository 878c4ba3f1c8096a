// Package goaltext heuristically parses plain-English savings goals like:
//   - "Save $5,000 by 2026-06-15"
//   - "Put aside 3k in 6 months"
//   - "$1200 for a trip within 180 days"
//   - "$2.5k by December 2026"
package goaltext

import (
	"errors"
	"strings"
	"time"
)

// ErrUnresolved is returned when the text does not yield both a positive
// target amount and a deadline strictly in the future.
var ErrUnresolved = errors.New("goal text did not resolve to an amount and deadline")

// Result is a successfully parsed goal.
type Result struct {
	TargetAmount     float64
	MonthsToDeadline int
	Deadline         time.Time
}

// Amount matchers are tried in this order; first match wins.
var amountMatchers = []amountMatcher{
	dollarAmount{},
	currencyWordAmount{},
	suffixAmount{},
}

// Absolute deadline matchers, tried in order before any relative fallback.
var deadlineMatchers = []deadlineMatcher{
	isoDate{},
	slashDate{},
	monthName{},
	endOfMonth{},
	nextMonth{},
}

// Parse extracts a target amount and deadline from free text, evaluated
// against the given "today". Whole-month counting and the 30-day month
// approximation are deliberate heuristics; suggestion impacts depend on
// the exact month count, so they stay as-is.
func Parse(text string, today time.Time) (Result, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return Result{}, ErrUnresolved
	}

	amount, haveAmount := extractAmount(s)

	deadline, haveDeadline := extractAbsoluteDeadline(s, today)
	var months int
	if haveDeadline {
		if !deadline.After(dateOnly(today)) {
			return Result{}, ErrUnresolved
		}
		months = monthsBetween(today, deadline)
	} else if n, ok := (relativeWindow{}).Extract(s); ok {
		months = n
		deadline = lastDayOfMonth(addMonths(today, n))
		haveDeadline = true
	}

	if !haveAmount || amount <= 0 || !haveDeadline || months < 1 {
		return Result{}, ErrUnresolved
	}

	return Result{
		TargetAmount:     amount,
		MonthsToDeadline: months,
		Deadline:         deadline,
	}, nil
}

func extractAmount(s string) (float64, bool) {
	for _, m := range amountMatchers {
		if v, ok := m.Extract(s); ok {
			return v, true
		}
	}
	return 0, false
}

func extractAbsoluteDeadline(s string, today time.Time) (time.Time, bool) {
	for _, m := range deadlineMatchers {
		if d, ok := m.Extract(s, today); ok {
			return d, true
		}
	}
	return time.Time{}, false
}

// monthsBetween counts whole months from today to the deadline, rounding
// up once the deadline's day-of-month passes today's, floored at 1.
// From 2025-06-15, "by 2026-06-15" is 12 months and "by 2026-06-16" is 13.
func monthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() > start.Day() {
		months++
	}
	if months < 1 {
		months = 1
	}
	return months
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonths advances by whole calendar months without day-overflow
// normalization; the day is discarded by lastDayOfMonth anyway.
func addMonths(t time.Time, n int) time.Time {
	total := int(t.Month()) - 1 + n
	year := t.Year() + total/12
	month := time.Month(total%12 + 1)
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(t time.Time) time.Time {
	// Day 0 of the following month.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}
