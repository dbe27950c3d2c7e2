// Package format renders raw numeric and date property values for display.
// All functions are pure: same input, same output, no catalog involved.
package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.New(1, 3)
	million  = decimal.New(1, 6)
	billion  = decimal.New(1, 9)
)

// Number renders a numeric string with a magnitude suffix: K for thousands,
// M for millions, B for billions, always with exactly one decimal digit
// ("250000000" -> "250.0M"). Values below 1000 and non-numeric input pass
// through unchanged. Negative numbers keep their leading minus.
func Number(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return raw
	}

	abs := d.Abs()
	var unit decimal.Decimal
	var suffix string
	switch {
	case abs.GreaterThanOrEqual(billion):
		unit, suffix = billion, "B"
	case abs.GreaterThanOrEqual(million):
		unit, suffix = million, "M"
	case abs.GreaterThanOrEqual(thousand):
		unit, suffix = thousand, "K"
	default:
		return raw
	}

	return d.Div(unit).StringFixed(1) + suffix
}

// Date renders an epoch-millisecond timestamp string as YYYY-MM-DD in UTC.
// HubSpot date and datetime properties carry these as digit-only strings of
// 12-13 digits; anything else passes through unchanged.
func Date(raw string) string {
	ms, ok := epochMillis(strings.TrimSpace(raw))
	if !ok {
		return raw
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

func epochMillis(s string) (int64, bool) {
	if len(s) < 12 || len(s) > 13 {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return ms, true
}
