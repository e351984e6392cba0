package models

import (
	"fmt"
	"time"
)

// Weekday is the canonical day-of-week encoding used everywhere in the
// application: 0=Sunday .. 6=Saturday, matching time.Weekday.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var weekdayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// NormalizeWeekday converts an incoming day-of-week value to the canonical
// 0-based scale. Data sources disagree on the encoding: some send 0-6
// (Sunday first), others send 1-7 with 7 meaning Sunday. Both collapse to
// the same value under mod 7.
func NormalizeWeekday(raw int) (Weekday, error) {
	if raw < 0 || raw > 7 {
		return 0, fmt.Errorf("weekday out of range: %d", raw)
	}
	return Weekday(raw % 7), nil
}

// Matches reports whether the weekday equals the calendar weekday of t.
func (w Weekday) Matches(t time.Time) bool {
	return time.Weekday(w) == t.Weekday()
}

// Valid reports whether the weekday is on the canonical 0-6 scale.
func (w Weekday) Valid() bool {
	return w >= Sunday && w <= Saturday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w]
}
