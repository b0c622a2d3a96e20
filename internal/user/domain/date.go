package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// Date is a calendar date with day granularity, anchored at midnight UTC.
type Date struct {
	t time.Time
}

// NewDate returns the date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected format yyyy-MM-dd", s)
	}
	return Date{t: t}, nil
}

// Time returns the instant of the date's midnight in UTC.
func (d Date) Time() time.Time {
	return d.t
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String formats the date as yyyy-MM-dd.
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// MarshalJSON encodes the date as a yyyy-MM-dd string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a yyyy-MM-dd string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in format yyyy-MM-dd: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
