package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

func TestValidateOffering(t *testing.T) {
	svc := &offeringServiceImpl{}

	valid := func() *models.Offering {
		return &models.Offering{
			Name:        "Reformer",
			DurationMin: 50,
			Capacity:    4,
			Windows: []models.AvailabilityWindow{
				{Weekdays: []models.Weekday{models.Monday}, Start: models.MustParseClock("09:00"), End: models.MustParseClock("12:00")},
			},
		}
	}

	t.Run("accepts a well-formed offering", func(t *testing.T) {
		assert.NoError(t, svc.validateOffering(valid()))
	})

	t.Run("trims and requires a name", func(t *testing.T) {
		o := valid()
		o.Name = "  Reformer  "
		assert.NoError(t, svc.validateOffering(o))
		assert.Equal(t, "Reformer", o.Name)

		o.Name = "   "
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})

	t.Run("rejects a non-positive duration", func(t *testing.T) {
		o := valid()
		o.DurationMin = 0
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})

	t.Run("rejects a negative capacity", func(t *testing.T) {
		o := valid()
		o.Capacity = -1
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})

	t.Run("rejects a window without weekdays", func(t *testing.T) {
		o := valid()
		o.Windows[0].Weekdays = nil
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		o := valid()
		o.Windows[0].Start, o.Windows[0].End = o.Windows[0].End, o.Windows[0].Start
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})

	t.Run("rejects an inverted time range", func(t *testing.T) {
		o := valid()
		o.Windows = nil
		o.TimeRanges = []models.TimeRange{{Start: models.MustParseClock("12:00"), End: models.MustParseClock("09:00")}}
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})

	t.Run("rejects an out-of-range weekday", func(t *testing.T) {
		o := valid()
		o.Weekdays = []models.Weekday{models.Weekday(9)}
		assert.ErrorIs(t, svc.validateOffering(o), apperrors.ErrValidationFailed)
	})
}

func TestValidateSlotTimes(t *testing.T) {
	svc := &scheduleServiceImpl{}

	offering := &models.Offering{
		Name: "Reformer",
		Windows: []models.AvailabilityWindow{
			{Weekdays: []models.Weekday{models.Monday}, Start: models.MustParseClock("09:00"), End: models.MustParseClock("12:00")},
		},
	}
	mkSlot := func(weekday models.Weekday, start, end string) *models.ScheduleSlot {
		return &models.ScheduleSlot{
			OfferingID: 1,
			Weekday:    weekday,
			Start:      models.MustParseClock(start),
			End:        models.MustParseClock(end),
		}
	}

	t.Run("accepts a slot inside the window", func(t *testing.T) {
		assert.NoError(t, svc.validateSlotTimes(mkSlot(models.Monday, "10:00", "10:50"), offering))
	})

	t.Run("rejects an inverted interval", func(t *testing.T) {
		err := svc.validateSlotTimes(mkSlot(models.Monday, "11:00", "10:00"), offering)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects a slot outside the offering windows", func(t *testing.T) {
		err := svc.validateSlotTimes(mkSlot(models.Monday, "14:00", "14:50"), offering)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects a weekday the offering does not cover", func(t *testing.T) {
		err := svc.validateSlotTimes(mkSlot(models.Tuesday, "10:00", "10:50"), offering)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unconfigured offerings are permissive", func(t *testing.T) {
		bare := &models.Offering{Name: "Private"}
		assert.NoError(t, svc.validateSlotTimes(mkSlot(models.Sunday, "06:00", "07:00"), bare))
	})
}
