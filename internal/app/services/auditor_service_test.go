package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

type fakeSlotLister struct {
	slots []*models.ScheduleSlot
}

func (f *fakeSlotLister) ListActive(ctx context.Context) ([]*models.ScheduleSlot, error) {
	return f.slots, nil
}

type fakeSubmissionLister struct {
	submitted map[string]bool
}

func (f *fakeSubmissionLister) ListSubmittedKeys(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	return f.submitted, nil
}

func newAuditorFixture(platformStart time.Time, slots []*models.ScheduleSlot, submitted map[string]bool) *auditorServiceImpl {
	svc := NewAuditorService(&fakeSlotLister{slots: slots}, &fakeSubmissionLister{submitted: submitted}, platformStart)
	impl := svc.(*auditorServiceImpl)
	impl.now = func() time.Time { return testToday }
	return impl
}

func TestAuditorPendingOccurrences(t *testing.T) {
	slot := &models.ScheduleSlot{
		ID: 1, OfferingID: 1, Weekday: models.Monday,
		Start: models.MustParseClock("10:00"), End: models.MustParseClock("10:50"),
		Active: true,
	}
	platformStart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("reports unsubmitted mondays", func(t *testing.T) {
		svc := newAuditorFixture(platformStart, []*models.ScheduleSlot{slot}, map[string]bool{
			models.SubmissionKey(1, time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)): true,
		})

		pending, err := svc.PendingOccurrences(context.Background(),
			time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		// May 27 was submitted; only June 3 remains
		require.Len(t, pending, 1)
		assert.Equal(t, "2024-06-03", pending[0].Date.Format("2006-01-02"))
	})

	t.Run("range extending past today is clamped", func(t *testing.T) {
		svc := newAuditorFixture(platformStart, []*models.ScheduleSlot{slot}, nil)

		pending, err := svc.PendingOccurrences(context.Background(),
			time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 7, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		require.Len(t, pending, 1)
		assert.Equal(t, "2024-06-03", pending[0].Date.Format("2006-01-02"))
	})

	t.Run("range before the platform start is clamped", func(t *testing.T) {
		svc := newAuditorFixture(time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC), []*models.ScheduleSlot{slot}, nil)

		pending, err := svc.PendingOccurrences(context.Background(),
			time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)

		assert.Empty(t, pending)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		svc := newAuditorFixture(platformStart, []*models.ScheduleSlot{slot}, nil)

		_, err := svc.PendingOccurrences(context.Background(),
			time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestExceptionIsNoOp(t *testing.T) {
	svc := &exceptionServiceImpl{}
	date := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	sameSlot := int64(1)
	otherSlot := int64(2)
	start := models.MustParseClock("11:00")

	tests := []struct {
		name string
		exc  *models.RescheduleException
		want bool
	}{
		{
			"same slot same date",
			&models.RescheduleException{OriginSlotID: 1, OriginDate: date, DestSlotID: &sameSlot, DestDate: date},
			true,
		},
		{
			"same date different slot",
			&models.RescheduleException{OriginSlotID: 1, OriginDate: date, DestSlotID: &otherSlot, DestDate: date},
			false,
		},
		{
			"same date no destination details",
			&models.RescheduleException{OriginSlotID: 1, OriginDate: date, DestDate: date},
			true,
		},
		{
			"same date with a new time",
			&models.RescheduleException{OriginSlotID: 1, OriginDate: date, DestDate: date, DestStart: &start},
			false,
		},
		{
			"different date",
			&models.RescheduleException{OriginSlotID: 1, OriginDate: date, DestSlotID: &sameSlot, DestDate: date.AddDate(0, 0, 2)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.isNoOp(tt.exc))
		})
	}
}
