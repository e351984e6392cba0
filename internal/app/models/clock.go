package models

import (
	"encoding/json"
	"fmt"
)

// Clock is a time of day expressed as minutes since midnight. All window
// and slot time comparisons happen on this scale; the "HH:MM" string form
// only exists at the JSON boundary.
type Clock int

// ParseClock parses an "HH:MM" string into minutes since midnight.
func ParseClock(s string) (Clock, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return Clock(h*60 + m), nil
}

// MustParseClock is ParseClock for trusted literals; it panics on
// malformed input.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Valid reports whether the value falls within a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < 24*60
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalJSON renders the clock as an "HH:MM" string.
func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts an "HH:MM" string.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
