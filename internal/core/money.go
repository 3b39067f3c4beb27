// Package core holds the ledger domain: transactions, calendar dates,
// currency text handling and the monthly aggregation engine.
//
// This file converts between user-typed currency text and numeric amounts.
// The form accepts a raw digit stream ("12345" means R$ 123,45); display
// uses Brazilian formatting with '.' thousands separators and a decimal
// comma.
package core

import (
	"math"
	"strconv"
	"strings"
)

// maxAmountDigits caps the keystroke stream; anything past it is dropped.
const maxAmountDigits = 12

// AmountFromDigits interprets a keystroke stream as cents: every non-digit
// is stripped, the remaining digits (at most 12) form an integer number of
// cents. An empty stream yields 0. The result is never negative.
func AmountFromDigits(s string) float64 {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			if b.Len() == maxAmountDigits {
				break
			}
		}
	}
	if b.Len() == 0 {
		return 0
	}
	cents, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0
	}
	return float64(cents) / 100
}

// FormatAmount renders an amount the way the dashboard shows money:
// thousands separated by '.', decimal comma, exactly two fraction digits.
// Negative amounts keep their sign (the balance can go below zero).
func FormatAmount(v float64) string {
	cents := int64(math.Round(v * 100))
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := strconv.FormatInt(cents/100, 10)
	frac := cents % 100

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
		if len(whole) > 3 {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(whole); i += 3 {
		b.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			b.WriteByte('.')
		}
	}
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))
	return b.String()
}

// ParseAmount is the inverse of FormatAmount: thousands separators are
// removed and the decimal comma becomes a dot. Empty or malformed input
// yields 0 — the formatter upstream is expected to have produced
// well-formed text, so no error is signaled here.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
