package dto

import (
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
)

// WindowPayload is an explicit per-weekday availability window in a
// request body. Weekdays accept both the 0-6 and 1-7 encodings.
type WindowPayload struct {
	Weekdays []int        `json:"weekdays" binding:"required,min=1,dive,min=0,max=7"`
	Start    models.Clock `json:"start" binding:"required"`
	End      models.Clock `json:"end" binding:"required"`
}

// TimeRangePayload is a generic daily time range in a request body
type TimeRangePayload struct {
	Label string       `json:"label,omitempty"`
	Start models.Clock `json:"start" binding:"required"`
	End   models.Clock `json:"end" binding:"required"`
}

// OfferingRequest represents offering create and update payloads
type OfferingRequest struct {
	Name        string `json:"name" binding:"required"`
	Color       string `json:"color" binding:"omitempty,hexcolor6"`
	DurationMin int    `json:"durationMin" binding:"required,min=1"`
	Capacity    int    `json:"capacity" binding:"omitempty,min=0"`

	Windows    []WindowPayload    `json:"windows" binding:"omitempty,dive"`
	TimeRanges []TimeRangePayload `json:"timeRanges" binding:"omitempty,dive"`
	Weekdays   []int              `json:"weekdays" binding:"omitempty,dive,min=0,max=7"`
}

// ToModel converts the payload into an offering, normalizing every
// weekday onto the canonical 0-6 scale.
func (r *OfferingRequest) ToModel() (*models.Offering, error) {
	offering := &models.Offering{
		Name:        r.Name,
		Color:       r.Color,
		DurationMin: r.DurationMin,
		Capacity:    r.Capacity,
	}

	for _, w := range r.Windows {
		days, err := normalizeWeekdays(w.Weekdays)
		if err != nil {
			return nil, err
		}
		offering.Windows = append(offering.Windows, models.AvailabilityWindow{
			Weekdays: days,
			Start:    w.Start,
			End:      w.End,
		})
	}
	for _, tr := range r.TimeRanges {
		offering.TimeRanges = append(offering.TimeRanges, models.TimeRange{
			Label: tr.Label,
			Start: tr.Start,
			End:   tr.End,
		})
	}

	days, err := normalizeWeekdays(r.Weekdays)
	if err != nil {
		return nil, err
	}
	offering.Weekdays = days
	return offering, nil
}

func normalizeWeekdays(raw []int) ([]models.Weekday, error) {
	var days []models.Weekday
	for _, d := range raw {
		day, err := models.NormalizeWeekday(d)
		if err != nil {
			return nil, fmt.Errorf("weekday %d: %w", d, err)
		}
		days = append(days, day)
	}
	return days, nil
}
