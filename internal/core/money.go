// Package core holds the expense domain: the category enumeration, the form
// validator, the list filter/aggregator and the presentation helpers used by
// the card view.
//
// This file contains amount parsing and the locale-aware currency and date
// formatting used for display.
package core

import (
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DateLayout is the wire and storage format of Expense.Date.
const DateLayout = "2006-01-02"

// displayDateLayout renders dates like "Sep 10, 2025".
const displayDateLayout = "Jan 2, 2006"

var displayLocale = language.AmericanEnglish

// Amounts are capped well below anything decimal arithmetic struggles with.
const (
	maxIntegerDigits  = 12
	maxFractionDigits = 6
)

// ParseAmount parses a user-entered amount into an exact decimal.
//
// Input is trimmed. Anything that is not a plain decimal number is rejected
// instead of being coerced, exponent notation included, and the result must
// be strictly positive with at most 12 integer and 6 fractional digits.
//
// Examples:
//
//	ParseAmount("12.50") -> 12.5, nil
//	ParseAmount("")      -> 0, ErrMissingAmount
//	ParseAmount("abc")   -> 0, ErrInvalidAmount
//	ParseAmount("1e5")   -> 0, ErrInvalidAmount
//	ParseAmount("-5")    -> 0, ErrNonPositiveAmount
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrMissingAmount
	}
	intDigits, fracDigits, ok := scanPlainDecimal(s)
	if !ok {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !d.IsPositive() {
		return decimal.Zero, ErrNonPositiveAmount
	}
	if intDigits > maxIntegerDigits || fracDigits > maxFractionDigits {
		return decimal.Zero, ErrAmountTooLarge
	}
	return d, nil
}

// scanPlainDecimal accepts an optional sign, digits and an optional
// fraction, and reports the significant integer digits and the fraction
// digits. Leading zeros do not count.
func scanPlainDecimal(s string) (intDigits, fracDigits int, ok bool) {
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, 0, false
	}
	if hasDot && frac == "" {
		return 0, 0, false
	}
	if !allDigits(whole) || !allDigits(frac) {
		return 0, 0, false
	}
	return len(strings.TrimLeft(whole, "0")), len(frac), true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// amountInBounds applies the digit caps of ParseAmount to a decimal that
// arrived by another route, without rescaling it.
func amountInBounds(d decimal.Decimal) bool {
	coef := d.Coefficient()
	digits := coef.Abs(coef).String()
	exp := int64(d.Exponent())
	if exp < -maxFractionDigits {
		// Trailing zeros past the cap are harmless.
		excess := -exp - maxFractionDigits
		if excess >= int64(len(digits)) {
			return false
		}
		cut := len(digits) - int(excess)
		if strings.TrimRight(digits[cut:], "0") != "" {
			return false
		}
		digits, exp = digits[:cut], exp+excess
	}
	return int64(len(digits))+exp <= maxIntegerDigits
}

// FormatUSD renders d as US dollars rounded to cents, e.g. "$1,234.50".
// Rounding only happens here; stored amounts and sums keep full precision.
func FormatUSD(d decimal.Decimal) string {
	rounded := d.Round(2)
	whole, cents, _ := strings.Cut(rounded.Abs().StringFixed(2), ".")
	s := groupThousands(whole) + "." + cents
	if rounded.IsNegative() {
		return "-$" + s
	}
	return "$" + s
}

// groupThousands inserts the locale's digit grouping into a run of digits.
// Values that fit an int64 go through the locale printer; larger ones are
// grouped by three.
func groupThousands(digits string) string {
	if n, ok := new(big.Int).SetString(digits, 10); ok && n.IsInt64() {
		return message.NewPrinter(displayLocale).Sprint(number.Decimal(n.Int64()))
	}
	var b strings.Builder
	head := len(digits) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(digits[:head])
	for i := head; i < len(digits); i += 3 {
		b.WriteByte(',')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders s for display, falling back to the raw string when it
// cannot be parsed.
func FormatDate(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format(displayDateLayout)
}

// Today returns now as a form date value.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
