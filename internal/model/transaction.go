// Package model defines the core value types shared across goalcast.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Transaction is a single account movement. Amount is signed:
// positive = inflow, negative = outflow. Immutable once parsed.
type Transaction struct {
	Date     time.Time `json:"date"`
	Amount   float64   `json:"amount"`
	Merchant string    `json:"merchant"`
	Category string    `json:"category"`
	Account  string    `json:"account"`
}

// NormalizeCategory trims surrounding whitespace. Case is preserved so
// "Dining" and "dining" stay distinct, matching the closed category sets.
func NormalizeCategory(s string) string {
	return strings.TrimSpace(s)
}

// Month is a calendar month key (year + month, day discarded).
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the Month containing t.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Before reports whether m is chronologically before other.
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
