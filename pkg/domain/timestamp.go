package domain

import (
	"fmt"
	"strconv"
	"time"
)

// timestampLayout matches the ISO-8601 form clients expect, e.g. 2023-08-22T19:27:26.270Z
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a UTC instant with millisecond precision
type Timestamp struct {
	time.Time
}

// NewTimestamp normalizes t to UTC and truncates it to milliseconds
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Millisecond)}
}

// ParseTimestamp parses an RFC 3339 string
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return NewTimestamp(t), nil
}

// AddDays returns the timestamp shifted by n whole days
func (t Timestamp) AddDays(n int) Timestamp {
	return Timestamp{Time: t.Time.Add(time.Duration(n) * 24 * time.Hour)}
}

// String returns the ISO-8601 form
func (t Timestamp) String() string {
	return t.Time.UTC().Format(timestampLayout)
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(t.String())), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
