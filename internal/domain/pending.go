package domain

import (
	"time"

	"github.com/emre/studioclass/internal/app/models"
)

// PendingOccurrence is a past slot occurrence whose attendance was never
// submitted.
type PendingOccurrence struct {
	Slot *models.ScheduleSlot `json:"slot"`
	Date time.Time            `json:"date"`
}

// PendingOccurrences enumerates every (active slot, date) pair inside
// [from, to] whose weekday matches and which is missing from the
// submitted set. The range is clamped below by platformStart (nothing
// before the studio went live can be pending) and above by today (future
// occurrences are never pending). The submitted set is keyed by
// models.SubmissionKey.
func PendingOccurrences(slots []*models.ScheduleSlot, from, to, platformStart, today time.Time, submitted map[string]bool) []PendingOccurrence {
	from = dateOnly(from)
	to = dateOnly(to)
	if ps := dateOnly(platformStart); from.Before(ps) {
		from = ps
	}
	if td := dateOnly(today); to.After(td) {
		to = td
	}

	var pending []PendingOccurrence
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		for _, slot := range slots {
			if !slot.Active || !slot.Weekday.Matches(d) {
				continue
			}
			if submitted[models.SubmissionKey(slot.ID, d)] {
				continue
			}
			pending = append(pending, PendingOccurrence{Slot: slot, Date: d})
		}
	}
	return pending
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
