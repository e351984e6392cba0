package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emre/studioclass/internal/app/models"
)

func clock(s string) models.Clock {
	return models.MustParseClock(s)
}

func TestIsAllowed_PermissiveWithoutConfiguration(t *testing.T) {
	assert.True(t, IsAllowed(nil, models.Monday, clock("10:00"), clock("11:00")))

	bare := &models.Offering{ID: 1, Name: "Private"}
	assert.True(t, IsAllowed(bare, models.Sunday, clock("03:00"), clock("04:00")))
}

func TestIsAllowed_ExplicitWindows(t *testing.T) {
	offering := &models.Offering{
		Name: "Reformer",
		Windows: []models.AvailabilityWindow{
			{Weekdays: []models.Weekday{models.Monday, models.Wednesday}, Start: clock("09:00"), End: clock("12:00")},
			{Weekdays: []models.Weekday{models.Saturday}, Start: clock("10:00"), End: clock("16:00")},
		},
	}

	tests := []struct {
		name    string
		weekday models.Weekday
		start   string
		end     string
		want    bool
	}{
		{"inside first window", models.Monday, "09:00", "09:50", true},
		{"exact window bounds", models.Wednesday, "09:00", "12:00", true},
		{"wrong weekday", models.Tuesday, "09:00", "09:50", false},
		{"starts before window", models.Monday, "08:30", "09:30", false},
		{"ends after window", models.Monday, "11:30", "12:30", false},
		{"second window weekday", models.Saturday, "14:00", "15:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAllowed(offering, tt.weekday, clock(tt.start), clock(tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsAllowed_TimeRangeFallback(t *testing.T) {
	offering := &models.Offering{
		Name:     "Mat",
		Weekdays: []models.Weekday{models.Monday, models.Friday},
		TimeRanges: []models.TimeRange{
			{Label: "morning", Start: clock("08:00"), End: clock("12:00")},
			{Label: "evening", Start: clock("17:00"), End: clock("21:00")},
		},
	}

	assert.True(t, IsAllowed(offering, models.Monday, clock("08:00"), clock("08:50")))
	assert.True(t, IsAllowed(offering, models.Friday, clock("19:00"), clock("20:00")))
	assert.False(t, IsAllowed(offering, models.Tuesday, clock("08:00"), clock("08:50")))
	assert.False(t, IsAllowed(offering, models.Monday, clock("13:00"), clock("14:00")))
	// Straddling two ranges does not qualify
	assert.False(t, IsAllowed(offering, models.Monday, clock("11:00"), clock("18:00")))
}

func TestIsAllowed_WindowsTakePriorityOverRanges(t *testing.T) {
	// A range would allow Tuesday evening, but explicit windows exist and
	// only cover Monday morning.
	offering := &models.Offering{
		Name: "Reformer",
		Windows: []models.AvailabilityWindow{
			{Weekdays: []models.Weekday{models.Monday}, Start: clock("09:00"), End: clock("12:00")},
		},
		Weekdays: []models.Weekday{models.Tuesday},
		TimeRanges: []models.TimeRange{
			{Start: clock("17:00"), End: clock("21:00")},
		},
	}

	assert.True(t, IsAllowed(offering, models.Monday, clock("10:00"), clock("11:00")))
	assert.False(t, IsAllowed(offering, models.Tuesday, clock("18:00"), clock("19:00")))
}
