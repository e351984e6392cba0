package domain

import "github.com/emre/studioclass/internal/app/models"

// IsAllowed reports whether a candidate (weekday, start, end) fits the
// offering's configured availability.
//
// Two window representations exist and are checked in priority order:
// the explicit per-weekday window list first, then the fallback generic
// time ranges applied across the offering's configured weekdays. An
// offering with no configuration at all is permissive.
func IsAllowed(offering *models.Offering, weekday models.Weekday, start, end models.Clock) bool {
	if offering == nil || !offering.HasConfiguredWindows() {
		return true
	}

	if len(offering.Windows) > 0 {
		for _, w := range offering.Windows {
			if w.Covers(weekday, start, end) {
				return true
			}
		}
		return false
	}

	if !containsWeekday(offering.Weekdays, weekday) {
		return false
	}
	for _, r := range offering.TimeRanges {
		if start >= r.Start && end <= r.End {
			return true
		}
	}
	return false
}

func containsWeekday(days []models.Weekday, d models.Weekday) bool {
	for _, x := range days {
		if x == d {
			return true
		}
	}
	return false
}
