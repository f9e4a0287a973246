package core

import (
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp in UTC
func Now() Timestamp {
	return Timestamp(time.Now().UTC())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero checks if the timestamp is zero
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// String formats the timestamp as RFC3339 with nanoseconds
func (t Timestamp) String() string {
	return time.Time(t).Format(time.RFC3339Nano)
}

// JSON marshaling for Timestamp
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tm time.Time
	if err := tm.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tm)
	return nil
}

// MarshalYAML renders the timestamp as a YAML string
func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// Elapsed is a solve duration reported in milliseconds
type Elapsed time.Duration

// Since measures the time elapsed from start
func Since(start time.Time) Elapsed {
	return Elapsed(time.Since(start))
}

// Milliseconds returns the duration as fractional milliseconds
func (e Elapsed) Milliseconds() float64 {
	return float64(time.Duration(e).Nanoseconds()) / 1e6
}
