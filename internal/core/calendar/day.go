// Package calendar provides timezone-safe calendar-day arithmetic.
//
// All ledger dates are handled as DayKey values ("YYYY-MM-DD" in the
// viewer's local calendar), never as instants. Truncating an instant via
// UTC silently shifts the day near midnight in non-UTC timezones; every
// conversion here therefore goes through local date components.
package calendar

import (
	"fmt"
	"regexp"
	"time"

	"github.com/DhimiMohamed/stock-management/internal/core/apperror"
)

// Layout is the canonical day-key format.
const Layout = "2006-01-02"

var dayKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DayKey identifies one calendar day in the viewer's local timezone.
// Two DayKeys are equal iff they denote the same local calendar day.
// Lexicographic order matches chronological order.
type DayKey string

// Normalize converts any supported date representation into a DayKey.
// Accepted inputs:
//   - time.Time: truncated to the calendar day of loc
//   - "YYYY-MM-DD" string: validated and passed through unchanged
//   - RFC3339 datetime string: parsed, then truncated to the day of loc
//
// Unparseable input is an error, never a coerced value. A nil loc means
// the process-local timezone.
func Normalize(v any, loc *time.Location) (DayKey, error) {
	if loc == nil {
		loc = time.Local
	}

	switch d := v.(type) {
	case DayKey:
		return d, d.Validate()
	case time.Time:
		if d.IsZero() {
			return "", apperror.NewInvalidDate(v)
		}
		return FromTime(d.In(loc)), nil
	case string:
		if dayKeyPattern.MatchString(d) {
			key := DayKey(d)
			if err := key.Validate(); err != nil {
				return "", err
			}
			return key, nil
		}
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.ParseInLocation(layout, d, loc); err == nil {
				return FromTime(t.In(loc)), nil
			}
		}
		return "", apperror.NewInvalidDate(v)
	default:
		return "", apperror.NewInvalidDate(v)
	}
}

// FromTime derives the DayKey from t's own local date components.
func FromTime(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey(fmt.Sprintf("%04d-%02d-%02d", y, int(m), d))
}

// Today returns the current DayKey in loc (process-local when nil).
func Today(loc *time.Location) DayKey {
	if loc == nil {
		loc = time.Local
	}
	return FromTime(time.Now().In(loc))
}

// Validate checks that the key denotes a real calendar day.
func (k DayKey) Validate() error {
	if !dayKeyPattern.MatchString(string(k)) {
		return apperror.NewInvalidDate(string(k))
	}
	if _, err := time.Parse(Layout, string(k)); err != nil {
		return apperror.NewInvalidDate(string(k))
	}
	return nil
}

// Time returns midnight of the day in loc (process-local when nil).
func (k DayKey) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t, _ := time.ParseInLocation(Layout, string(k), loc)
	return t
}

// AddDays returns the key n calendar days away (n may be negative).
func (k DayKey) AddDays(n int) DayKey {
	return FromTime(k.Time(time.UTC).AddDate(0, 0, n))
}

// Before reports whether k is an earlier calendar day than other.
func (k DayKey) Before(other DayKey) bool { return string(k) < string(other) }

// After reports whether k is a later calendar day than other.
func (k DayKey) After(other DayKey) bool { return string(k) > string(other) }

// String implements fmt.Stringer.
func (k DayKey) String() string { return string(k) }
