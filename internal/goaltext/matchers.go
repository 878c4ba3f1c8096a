package goaltext

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

type amountMatcher interface {
	Extract(s string) (float64, bool)
}

type deadlineMatcher interface {
	Extract(s string, today time.Time) (time.Time, bool)
}

const monthNames = "January|February|March|April|May|June|July|August|September|October|November|December"

var monthByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var (
	// Comma-grouped alternative first so "$5,000" captures the full token.
	reDollar   = regexp.MustCompile(`\$\s*((?:[0-9]{1,3}(?:,[0-9]{3})+|[0-9]+)(?:\.[0-9]{1,2})?)`)
	reCurrency = regexp.MustCompile(`(?i)([0-9]+(?:\.[0-9]{1,2})?)\s*(?:usd|dollars|bucks)`)
	reSuffix   = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*([kmbKMB])`)

	reRelative = regexp.MustCompile(`(?i)(?:in|within)\s+([0-9]{1,4})\s*(day|days|month|months|year|years)`)

	reISO   = regexp.MustCompile(`(?i)by\s+([0-9]{4}-[0-9]{2}-[0-9]{2})`)
	reSlash = regexp.MustCompile(`(?i)by\s+([0-9]{1,2}/[0-9]{1,2}/[0-9]{2,4})`)
	// Tail alternatives ordered so a 4-digit year is never split into a
	// 2-digit day: "March 5 2026" | "March 2026" | "March 5".
	reMonthName = regexp.MustCompile(`(?i)by\s+(` + monthNames + `)\s*(?:([0-9]{1,2})\s*,?\s*([0-9]{4})|([0-9]{4})|([0-9]{1,2}))?`)
	reEndOf     = regexp.MustCompile(`(?i)by\s+end\s+of\s+(` + monthNames + `)\s*([0-9]{4})?`)
	reNext      = regexp.MustCompile(`(?i)by\s+next\s+(` + monthNames + `)`)
)

// dollarAmount matches a dollar-sign-prefixed number, optionally
// comma-grouped, with up to two decimal places. A candidate immediately
// followed by another digit is a truncated read of a longer token
// ("$300" inside "$3000") and is skipped; a trailing k/m/b defers to the
// magnitude-suffix matcher so "$2.5k" resolves to 2500.
type dollarAmount struct{}

func (dollarAmount) Extract(s string) (float64, bool) {
	for start := 0; start < len(s); {
		loc := reDollar.FindStringSubmatchIndex(s[start:])
		if loc == nil {
			return 0, false
		}

		matchEnd := start + loc[1]
		if matchEnd < len(s) && isAmountContinuation(s[matchEnd]) {
			start += loc[0] + 1
			continue
		}

		raw := strings.ReplaceAll(s[start+loc[2]:start+loc[3]], ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return 0, false
}

func isAmountContinuation(b byte) bool {
	switch b {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9',
		'k', 'K', 'm', 'M', 'b', 'B':
		return true
	}
	return false
}

// currencyWordAmount matches a bare number followed by a currency word.
type currencyWordAmount struct{}

func (currencyWordAmount) Extract(s string) (float64, bool) {
	m := reCurrency.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// suffixAmount matches a number with a k/m/b magnitude suffix.
type suffixAmount struct{}

func (suffixAmount) Extract(s string) (float64, bool) {
	m := reSuffix.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch strings.ToLower(m[2]) {
	case "k":
		return v * 1e3, true
	case "m":
		return v * 1e6, true
	case "b":
		return v * 1e9, true
	}
	return 0, false
}

// isoDate matches "by YYYY-MM-DD".
type isoDate struct{}

func (isoDate) Extract(s string, _ time.Time) (time.Time, bool) {
	m := reISO.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// slashDate matches "by M/D/YYYY" or "by M/D/YY"; the layout is chosen by
// the literal length of the matched token.
type slashDate struct{}

func (slashDate) Extract(s string, _ time.Time) (time.Time, bool) {
	m := reSlash.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	layout := "1/2/06"
	if len(m[1]) == 10 {
		layout = "1/2/2006"
	}
	d, err := time.Parse(layout, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// monthName matches "by <Month>", "by <Month> <day> <year>", "by <Month>
// <year>", or "by <Month> <day>". A missing year defaults to the current
// year; a missing day defaults to the last day of the month.
type monthName struct{}

func (monthName) Extract(s string, today time.Time) (time.Time, bool) {
	m := reMonthName.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}

	month := monthByName[strings.ToLower(m[1])]

	dayStr := m[2]
	yearStr := m[3]
	if yearStr == "" {
		yearStr = m[4]
	}
	if dayStr == "" {
		dayStr = m[5]
	}

	year := today.Year()
	if yearStr != "" {
		year, _ = strconv.Atoi(yearStr)
	}
	if dayStr == "" {
		return lastDayOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)), true
	}
	day, _ := strconv.Atoi(dayStr)
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
}

// endOfMonth matches "by end of <Month> [<year>]" and always resolves to
// the last day of that month.
type endOfMonth struct{}

func (endOfMonth) Extract(s string, today time.Time) (time.Time, bool) {
	m := reEndOf.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month := monthByName[strings.ToLower(m[1])]
	year := today.Year()
	if m[2] != "" {
		year, _ = strconv.Atoi(m[2])
	}
	return lastDayOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)), true
}

// nextMonth matches "by next <Month>", rolling to next year when the
// named month's numeric value is at or before the current month.
type nextMonth struct{}

func (nextMonth) Extract(s string, today time.Time) (time.Time, bool) {
	m := reNext.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	month := monthByName[strings.ToLower(m[1])]
	year := today.Year()
	if month <= today.Month() {
		year++
	}
	return lastDayOfMonth(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)), true
}

// relativeWindow matches "in|within <N> day(s)/month(s)/year(s)" and
// converts the window to whole months: days use a ceiling over 30-day
// months, months pass through, years multiply by 12. Always at least 1.
type relativeWindow struct{}

func (relativeWindow) Extract(s string) (int, bool) {
	m := reRelative.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}

	var months int
	switch strings.ToLower(m[2]) {
	case "day", "days":
		months = (n + 29) / 30
	case "month", "months":
		months = n
	case "year", "years":
		months = n * 12
	}
	if months < 1 {
		months = 1
	}
	return months, true
}
