// Package domain contains the core data types for the truck logbook application.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the canonical wire and storage format for dates.
// All dates are normalized to this zero-padded form at the storage boundary,
// so string ordering and date ordering agree for persisted values.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component.
// The zero value is the zero date and reports IsZero() == true.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month, day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time.Time to its calendar date in UTC.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO date string. Unpadded month or day values
// ("2024-3-5") are accepted and normalized; anything else is rejected.
func ParseDate(s string) (Date, error) {
	for _, layout := range []string{dateLayout, "2006-1-2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: invalid date %q, want YYYY-MM-DD", ErrValidation, s)
}

// String returns the canonical zero-padded YYYY-MM-DD form.
func (d Date) String() string {
	return d.t.Format(dateLayout)
}

// Time returns the date as a UTC midnight time.Time, for database DATE columns.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is strictly before o.
func (d Date) Before(o Date) bool {
	return d.t.Before(o.t)
}

// After reports whether d is strictly after o.
func (d Date) After(o Date) bool {
	return d.t.After(o.t)
}

// Equal reports whether d and o are the same calendar date.
func (d Date) Equal(o Date) bool {
	return d.t.Equal(o.t)
}

// MarshalJSON writes the date as a "YYYY-MM-DD" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON reads a "YYYY-MM-DD" JSON string, accepting unpadded input.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MonthRange returns the first and last day of the given calendar month.
// Month lengths and leap years are handled by time.Date's normalization:
// day 0 of the following month is the last day of this one.
func MonthRange(year int, month time.Month) (first, last Date) {
	return NewDate(year, month, 1), NewDate(year, month+1, 0)
}
