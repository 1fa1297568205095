package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeString is returned when a value is not a valid HH:MM wall-clock time
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow is returned when arithmetic leaves the 00:00-23:59 range
	ErrTimeOverflow = errors.New("time string overflow")
)

// TimeString is a wall-clock time of day in HH:MM format.
// It is stored as TIME/VARCHAR in the database and serialized as "HH:MM" in the API.
type TimeString string

// NewTimeString builds a TimeString from the hour and minute of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and normalizes an HH:MM value ("9:30" becomes "09:30")
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// допускаем однозначные часы, как в исходных записях ("9:30")
		t, err = time.Parse("3:04", s)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
	}
	return NewTimeString(t), nil
}

// FromMinutes builds a TimeString from minutes since midnight
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOverflow, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String implements fmt.Stringer
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero reports whether the value is empty
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks the HH:MM format
func (ts TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(ts)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return nil
}

// Minutes returns minutes since midnight, or -1 for an invalid value
func (ts TimeString) Minutes() int {
	t, err := time.Parse(timeLayout, string(ts))
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

// AddMinutes returns the time shifted by the given number of minutes.
// The result must stay within the same day.
func (ts TimeString) AddMinutes(minutes int) (TimeString, error) {
	current := ts.Minutes()
	if current < 0 {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return FromMinutes(current + minutes)
}

// IsBefore reports whether ts is strictly earlier than other
func (ts TimeString) IsBefore(other TimeString) bool {
	return ts.Minutes() < other.Minutes()
}

// IsAfter reports whether ts is strictly later than other
func (ts TimeString) IsAfter(other TimeString) bool {
	return ts.Minutes() > other.Minutes()
}

// On places the wall-clock time on the calendar day of date, in date's location
func (ts TimeString) On(date time.Time) time.Time {
	m := ts.Minutes()
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, date.Location())
}

// Scan implements sql.Scanner
func (ts *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*ts = ""
		return nil
	case string:
		return ts.parseDB(v)
	case []byte:
		return ts.parseDB(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, value)
	}
}

// parseDB принимает как "HH:MM", так и формат TIME из Postgres ("HH:MM:SS")
func (ts *TimeString) parseDB(s string) error {
	if len(s) >= 8 {
		if t, err := time.Parse("15:04:05", s[:8]); err == nil {
			*ts = NewTimeString(t)
			return nil
		}
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

// Value implements driver.Valuer
func (ts TimeString) Value() (driver.Value, error) {
	if ts.IsZero() {
		return nil, nil
	}
	return string(ts), nil
}
