package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString is a wall-clock time of day in canonical 24-hour "HH:MM" form.
// It is stored and compared as a plain string, which keeps it free of any
// date or timezone component.
type TimeString string

var (
	// ErrInvalidTimeString is returned when a value cannot be parsed as a time of day
	ErrInvalidTimeString = errors.New("invalid time string format")
)

// NewTimeString builds a TimeString from the clock portion of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format("15:04"))
}

// NewTimeStringFromString parses s into a canonical TimeString.
// Accepts 24-hour input ("09:00", "9:00", "17:30") and 12-hour input
// ("9:00 AM", "5:30pm"); everything is normalized to "HH:MM".
func NewTimeStringFromString(s string) (TimeString, error) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidTimeString)
	}

	upper := strings.ToUpper(raw)
	// 12-hour variants first: "3:04 PM", "3:04PM"
	for _, layout := range []string{"3:04 PM", "3:04PM", "03:04 PM", "03:04PM"} {
		if t, err := time.Parse(layout, upper); err == nil {
			return NewTimeString(t), nil
		}
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return NewTimeString(t), nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// String returns the canonical "HH:MM" representation.
func (ts TimeString) String() string {
	return string(ts)
}

// IsZero reports whether the value is empty.
func (ts TimeString) IsZero() bool {
	return ts == ""
}

// Validate checks that the value is a canonical "HH:MM" time.
func (ts TimeString) Validate() error {
	_, err := ts.minutes()
	return err
}

// Minutes returns the value as minutes since midnight.
func (ts TimeString) Minutes() (int, error) {
	return ts.minutes()
}

// AddMinutes returns the time shifted forward by m minutes.
// The result wraps around midnight.
func (ts TimeString) AddMinutes(m int) (TimeString, error) {
	total, err := ts.minutes()
	if err != nil {
		return "", err
	}
	total = (total + m) % (24 * 60)
	if total < 0 {
		total += 24 * 60
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether ts is strictly earlier in the day than other.
// Invalid values compare as equal.
func (ts TimeString) IsBefore(other TimeString) bool {
	a, err1 := ts.minutes()
	b, err2 := other.minutes()
	if err1 != nil || err2 != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether ts is strictly later in the day than other.
func (ts TimeString) IsAfter(other TimeString) bool {
	return other.IsBefore(ts)
}

// At anchors the time of day onto the given calendar date in loc.
func (ts TimeString) At(date time.Time, loc *time.Location) (time.Time, error) {
	total, err := ts.minutes()
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, total/60, total%60, 0, 0, loc), nil
}

// Value implements driver.Valuer so the type can be written directly by database/sql.
func (ts TimeString) Value() (driver.Value, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}
	return string(ts), nil
}

// Scan implements sql.Scanner. Postgres TIME columns come back as "HH:MM:SS".
func (ts *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case []byte:
		return ts.Scan(string(v))
	case time.Time:
		*ts = NewTimeString(v)
		return nil
	case nil:
		*ts = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidTimeString, src)
	}
}

func (ts TimeString) minutes() (int, error) {
	parts := strings.Split(string(ts), ":")
	if len(parts) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(ts))
	}
	return h*60 + m, nil
}
