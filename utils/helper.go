package utils

import (
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func NewTrue() *bool {
	b := true
	return &b
}

func NewFalse() *bool {
	b := false
	return &b
}

func NewString(s string) *string {
	return &s
}

// IsBlank treats whitespace-only strings the same as empty ones.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// StringValue dereferences an optional field. Blank and nil both mean "absent".
func StringValue(p *string) (string, bool) {
	if p == nil || IsBlank(*p) {
		return "", false
	}
	return strings.TrimSpace(*p), true
}

// NormalizeToken canonicalizes a value for list/range membership so numeric
// fields ("1", "1.0", "01") and enumerated code fields compare uniformly.
func NormalizeToken(s string) string {
	s = strings.TrimSpace(s)
	if d, err := decimal.NewFromString(s); err == nil {
		return d.String()
	}
	return s
}

func ToDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func IsAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// dateLayouts covers the datetime spellings seen in intake files.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseTimestampMillis resolves a timestamp field to epoch milliseconds.
// All-digit values are epoch nanoseconds; anything else must parse as a date.
func ParseTimestampMillis(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if IsAllDigits(s) {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return 0, false
		}
		return d.IntPart() / 1_000_000, true
	}
	if t, ok := ParseISODate(s); ok {
		return t.UnixMilli(), true
	}
	return 0, false
}

func IsValidEmail(email string) bool {
	return validate.Var(email, "email") == nil
}
