package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/models"
)

func TestPendingOccurrences(t *testing.T) {
	slot := testSlot(1, models.Monday)
	platformStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	// Friday, June 7th
	today := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

	t.Run("finds unsubmitted matching occurrences", func(t *testing.T) {
		from := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC) // Monday
		to := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

		pending := PendingOccurrences([]*models.ScheduleSlot{slot}, from, to, platformStart, today, nil)

		// Two Mondays in range: May 27 and June 3
		require.Len(t, pending, 2)
		assert.Equal(t, "2024-05-27", pending[0].Date.Format("2006-01-02"))
		assert.Equal(t, "2024-06-03", pending[1].Date.Format("2006-01-02"))
	})

	t.Run("submitted occurrences are excluded", func(t *testing.T) {
		from := time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
		submitted := map[string]bool{
			models.SubmissionKey(1, time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)): true,
		}

		pending := PendingOccurrences([]*models.ScheduleSlot{slot}, from, to, platformStart, today, submitted)

		require.Len(t, pending, 1)
		assert.Equal(t, "2024-06-03", pending[0].Date.Format("2006-01-02"))
	})

	t.Run("range is clamped to the platform start", func(t *testing.T) {
		start := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC) // Tuesday after the June 3 class
		from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)

		pending := PendingOccurrences([]*models.ScheduleSlot{slot}, from, to, start, today, nil)

		assert.Empty(t, pending)
	})

	t.Run("future occurrences are never pending", func(t *testing.T) {
		from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

		pending := PendingOccurrences([]*models.ScheduleSlot{slot}, from, to, platformStart, today, nil)

		// Only June 3 precedes today; June 10, 17, 24 are clamped away
		require.Len(t, pending, 1)
		assert.Equal(t, "2024-06-03", pending[0].Date.Format("2006-01-02"))
	})

	t.Run("inactive slots are skipped", func(t *testing.T) {
		retired := testSlot(2, models.Monday)
		retired.Active = false
		from := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
		to := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

		pending := PendingOccurrences([]*models.ScheduleSlot{slot, retired}, from, to, platformStart, today, nil)

		require.Len(t, pending, 1)
		assert.Equal(t, int64(1), pending[0].Slot.ID)
	})
}
