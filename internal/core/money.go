// Package core holds the club directory domain: records, money parsing,
// filtering and the cost calculations behind the comparison and savings views.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDollarsToCents converts a dollar amount string to cents.
//
// It tolerates the currency formatting found in the source data: a leading
// dollar sign, thousands separators and up to two decimal places. Half-up
// rounding is applied to a third decimal digit. Zero is valid (municipal
// courses charge no dues); negative amounts are not.
//
// Examples:
//
//	ParseDollarsToCents("1500")    -> 150000, nil
//	ParseDollarsToCents("$1,500")  -> 150000, nil
//	ParseDollarsToCents("350.25")  -> 35025, nil
//	ParseDollarsToCents("abc")     -> 0, ErrInvalidAmount
func ParseDollarsToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// FormatDollars renders cents as a dollar string with thousands separators,
// e.g. 150000 -> "$1,500". Fractional cents are shown only when present.
func FormatDollars(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100

	s := strconv.FormatInt(dollars, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := "$" + b.String()
	if rem != 0 {
		out += "." + strconv.FormatInt(rem/10, 10) + strconv.FormatInt(rem%10, 10)
	}
	if neg {
		return "-" + out
	}
	return out
}

// String implements fmt.Stringer using FormatDollars.
func (m Money) String() string {
	return FormatDollars(m.Cents)
}
