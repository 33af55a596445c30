package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Spreadsheet cells arrive as whatever the sheet author typed: currency
// symbols, thousands separators, stray spaces. Parsing is deliberately
// lenient; a cell that cannot be read becomes a neutral value instead of
// failing the whole import.

// ParseAmount reads a money cell. Unreadable cells become 0.
func ParseAmount(cell string) decimal.Decimal {
	return parseNumeric(cell, decimal.Zero)
}

// ParseRate reads an exchange-rate cell. Unreadable or non-positive cells
// become 1 so the ARS/USD pair stays computable.
func ParseRate(cell string) decimal.Decimal {
	rate := parseNumeric(cell, decimal.NewFromInt(1))
	if !rate.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return rate
}

// ParseProgress reads a percentage cell, clamped to [0,100].
func ParseProgress(cell string) int {
	n := parseNumeric(cell, decimal.Zero).IntPart()
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return int(n)
}

func parseNumeric(cell string, fallback decimal.Decimal) decimal.Decimal {
	cleaned := stripNonNumeric(cell)
	if cleaned == "" {
		return fallback
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return fallback
	}
	return d
}

// stripNonNumeric drops everything that is not a digit, sign or separator,
// then normalizes the decimal separator. "$ 1.234,56" becomes "1234.56",
// "$5.000" becomes "5000". A lone separator followed by exactly three
// digits is read as a thousands separator, otherwise as a decimal point.
func stripNonNumeric(cell string) string {
	var b strings.Builder
	for _, r := range cell {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	s := b.String()

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = normalizeLoneSeparator(s, ",", lastComma)
	case lastDot >= 0:
		s = normalizeLoneSeparator(s, ".", lastDot)
	}
	return s
}

func normalizeLoneSeparator(s, sep string, last int) string {
	if strings.Count(s, sep) == 1 && len(s)-last-1 != 3 {
		// decimal separator
		return strings.Replace(s, sep, ".", 1)
	}
	// thousands separators
	return strings.ReplaceAll(s, sep, "")
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	time.RFC3339,
}

// ParseDate tries the date formats sheets commonly produce. Unreadable
// cells become the zero time; the caller decides what that means.
func ParseDate(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseDependencies splits a pipe-separated dependency cell.
func ParseDependencies(cell string) []string {
	deps := []string{}
	for _, part := range strings.Split(cell, "|") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			deps = append(deps, trimmed)
		}
	}
	return deps
}
