package transaction

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount accepts both "12.34" and "12,34" and rounds to cents.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: amount required", ErrInvalid)
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: amount %q: %v", ErrInvalid, s, err)
	}
	return d.Round(2), nil
}

// ParseDate parses a DateLayout date, defaulting to today when s is empty.
func ParseDate(s string, today func() time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Day(today()), nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrInvalid, s, err)
	}
	return t, nil
}
