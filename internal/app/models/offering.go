package models

// DefaultCapacity is used when an offering has no configured capacity.
const DefaultCapacity = 5

// AvailabilityWindow is an explicit per-weekday booking window.
type AvailabilityWindow struct {
	Weekdays []Weekday `json:"weekdays"`
	Start    Clock     `json:"start"`
	End      Clock     `json:"end"`
}

// Covers reports whether the window applies to the weekday and fully
// contains the [start, end] interval.
func (w AvailabilityWindow) Covers(weekday Weekday, start, end Clock) bool {
	for _, d := range w.Weekdays {
		if d == weekday {
			return start >= w.Start && end <= w.End
		}
	}
	return false
}

// TimeRange is a generic daily time range ("morning", "afternoon") used by
// offerings that predate explicit per-weekday windows. It applies across
// the offering's configured weekday set.
type TimeRange struct {
	Label string `json:"label,omitempty"`
	Start Clock  `json:"start"`
	End   Clock  `json:"end"`
}

// Offering represents a bookable class type.
type Offering struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Color       string `json:"color" db:"color"`
	DurationMin int    `json:"durationMin" db:"duration_min"`
	Capacity    int    `json:"capacity" db:"capacity"`

	// Windows is the explicit per-weekday window list. When present it
	// takes priority over TimeRanges.
	Windows []AvailabilityWindow `json:"windows,omitempty" db:"windows"`
	// TimeRanges is the fallback generic representation, interpreted
	// against Weekdays.
	TimeRanges []TimeRange `json:"timeRanges,omitempty" db:"time_ranges"`
	Weekdays   []Weekday   `json:"weekdays,omitempty" db:"weekdays"`
}

// EffectiveCapacity returns the configured capacity, falling back to
// DefaultCapacity when it was never set.
func (o *Offering) EffectiveCapacity() int {
	if o == nil || o.Capacity <= 0 {
		return DefaultCapacity
	}
	return o.Capacity
}

// HasConfiguredWindows reports whether the offering restricts booking
// times at all. Offerings without any configuration are permissive.
func (o *Offering) HasConfiguredWindows() bool {
	return o != nil && (len(o.Windows) > 0 || len(o.TimeRanges) > 0)
}
