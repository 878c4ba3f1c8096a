// Package ingest decodes uploaded transaction files into model values.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"goalcast/internal/model"
)

// Date formats accepted for the date column, tried in order.
var dateFormats = []string{"2006-01-02", "01/02/2006", "02/01/2006"}

// ReadTransactions parses a header-mapped CSV with columns
// date,amount,merchant,category,account. Column order is free; header
// names are matched case-insensitively and all fields are trimmed. A blank
// or unparsable date falls back to now; an unparsable amount is an error
// carrying the row number.
func ReadTransactions(r io.Reader, now time.Time) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var txns []model.Transaction
	for row := 2; ; row++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		amountStr := field(record, cols, "amount")
		amount, err := strconv.ParseFloat(amountStr, 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse amount %q: %w", row, amountStr, err)
		}

		txns = append(txns, model.Transaction{
			Date:     parseDate(field(record, cols, "date"), now),
			Amount:   amount,
			Merchant: field(record, cols, "merchant"),
			Category: field(record, cols, "category"),
			Account:  field(record, cols, "account"),
		})
	}

	return txns, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseDate(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	for _, layout := range dateFormats {
		if d, err := time.Parse(layout, s); err == nil {
			return d
		}
	}
	return now
}
