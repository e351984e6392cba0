package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// classDate is a Monday; the origin slot meets on Mondays and the
// destination slot two days later.
var (
	rescheduleWednesday = classDate.AddDate(0, 0, 2)
	rescheduleSaturday  = classDate.AddDate(0, 0, 5)
)

type fakeExceptionStore struct {
	byID       map[int64]*models.RescheduleException
	nextID     int64
	activeDupe bool
}

func newFakeExceptionStore() *fakeExceptionStore {
	return &fakeExceptionStore{byID: make(map[int64]*models.RescheduleException)}
}

func (f *fakeExceptionStore) Create(ctx context.Context, exc *models.RescheduleException) error {
	f.nextID++
	exc.ID = f.nextID
	f.byID[exc.ID] = exc
	return nil
}

func (f *fakeExceptionStore) GetByID(ctx context.Context, id int64) (*models.RescheduleException, error) {
	exc, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrExceptionNotFound
	}
	return exc, nil
}

func (f *fakeExceptionStore) List(ctx context.Context, status *models.ExceptionStatus) ([]*models.RescheduleException, error) {
	var out []*models.RescheduleException
	for _, exc := range f.byID {
		if status == nil || exc.Status == *status {
			out = append(out, exc)
		}
	}
	return out, nil
}

func (f *fakeExceptionStore) ExistsActive(ctx context.Context, participantID, originSlotID int64, originDate string) (bool, error) {
	return f.activeDupe, nil
}

func (f *fakeExceptionStore) UpdateStatus(ctx context.Context, id int64, status models.ExceptionStatus) error {
	exc, ok := f.byID[id]
	if !ok {
		return apperrors.ErrExceptionNotFound
	}
	exc.Status = status
	now := time.Now()
	exc.DecidedAt = &now
	return nil
}

func (f *fakeExceptionStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrExceptionNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeSlotFinder struct {
	slots       map[int64]*models.ScheduleSlot
	enrollments map[int64]*models.Enrollment
}

func (f *fakeSlotFinder) GetByID(ctx context.Context, id int64) (*models.ScheduleSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, apperrors.ErrSlotNotFound
	}
	return slot, nil
}

func (f *fakeSlotFinder) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return enrollment, nil
}

type fakeParticipantFinder struct {
	participants map[int64]*models.Participant
}

func (f *fakeParticipantFinder) GetByID(ctx context.Context, id int64) (*models.Participant, error) {
	participant, ok := f.participants[id]
	if !ok {
		return nil, apperrors.ErrParticipantNotFound
	}
	return participant, nil
}

type exceptionFixture struct {
	service    *exceptionServiceImpl
	exceptions *fakeExceptionStore
	slots      *fakeSlotFinder
	resolver   *fakeResolver
}

// newExceptionFixture wires an origin slot (Monday) and a destination
// slot (Wednesday) sharing an offering whose windows allow 09:00-12:00
// on both days, an eligible member (100) and a frozen one (101).
func newExceptionFixture() *exceptionFixture {
	offering := &models.Offering{
		ID: 1, Name: "Reformer", Capacity: 2,
		Windows: []models.AvailabilityWindow{{
			Weekdays: []models.Weekday{models.Monday, models.Wednesday},
			Start:    models.MustParseClock("09:00"),
			End:      models.MustParseClock("12:00"),
		}},
	}
	origin := &models.ScheduleSlot{
		ID: 1, OfferingID: 1, Weekday: models.Monday,
		Start: models.MustParseClock("10:00"), End: models.MustParseClock("10:50"),
		Active: true, Offering: offering,
	}
	dest := &models.ScheduleSlot{
		ID: 2, OfferingID: 1, Weekday: models.Wednesday,
		Start: models.MustParseClock("10:00"), End: models.MustParseClock("10:50"),
		Active: true, Offering: offering,
	}

	f := &exceptionFixture{
		exceptions: newFakeExceptionStore(),
		slots: &fakeSlotFinder{
			slots:       map[int64]*models.ScheduleSlot{1: origin, 2: dest},
			enrollments: map[int64]*models.Enrollment{},
		},
		resolver: &fakeResolver{occ: &domain.Occurrence{Slot: dest, Date: rescheduleWednesday}},
	}
	participants := &fakeParticipantFinder{participants: map[int64]*models.Participant{
		100: {ID: 100, Name: "Derya Aksoy"},
		101: {ID: 101, Name: "Kaan Yildirim", Frozen: true},
	}}

	svc := NewExceptionService(f.exceptions, f.slots, participants, f.resolver)
	f.service = svc.(*exceptionServiceImpl)
	return f
}

func rescheduleRequest() *models.RescheduleException {
	dest := int64(2)
	return &models.RescheduleException{
		OriginSlotID:  1,
		OriginDate:    classDate,
		DestSlotID:    &dest,
		DestDate:      rescheduleWednesday,
		ParticipantID: 100,
	}
}

func TestExceptionCreate(t *testing.T) {
	t.Run("files a pending request", func(t *testing.T) {
		f := newExceptionFixture()

		exc := rescheduleRequest()
		require.NoError(t, f.service.Create(context.Background(), exc))

		assert.Equal(t, models.ExceptionPending, exc.Status)
		assert.NotZero(t, exc.ID)
		require.NotNil(t, exc.Participant)
		assert.Equal(t, int64(100), exc.Participant.ID)
	})

	t.Run("resolves the participant from an enrollment", func(t *testing.T) {
		f := newExceptionFixture()
		f.slots.enrollments[55] = &models.Enrollment{ID: 55, SlotID: 1, ParticipantID: 100}

		exc := rescheduleRequest()
		exc.ParticipantID = 0
		enrollmentID := int64(55)
		exc.EnrollmentID = &enrollmentID

		require.NoError(t, f.service.Create(context.Background(), exc))
		assert.Equal(t, int64(100), exc.ParticipantID)
	})

	t.Run("enrollment from another slot is rejected", func(t *testing.T) {
		f := newExceptionFixture()
		f.slots.enrollments[55] = &models.Enrollment{ID: 55, SlotID: 2, ParticipantID: 100}

		exc := rescheduleRequest()
		enrollmentID := int64(55)
		exc.EnrollmentID = &enrollmentID

		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrValidationFailed)
	})

	t.Run("frozen participant is refused", func(t *testing.T) {
		f := newExceptionFixture()

		exc := rescheduleRequest()
		exc.ParticipantID = 101

		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrParticipantIneligible)
	})

	t.Run("no-op destination is refused", func(t *testing.T) {
		f := newExceptionFixture()

		exc := rescheduleRequest()
		origin := int64(1)
		exc.DestSlotID = &origin
		exc.DestDate = classDate

		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrNoOpReschedule)
	})

	t.Run("second open request for the occurrence is refused", func(t *testing.T) {
		f := newExceptionFixture()
		f.exceptions.activeDupe = true

		assert.ErrorIs(t, f.service.Create(context.Background(), rescheduleRequest()), apperrors.ErrDuplicateException)
	})

	t.Run("origin date off the slot's weekday is rejected", func(t *testing.T) {
		f := newExceptionFixture()

		exc := rescheduleRequest()
		exc.OriginDate = classDate.AddDate(0, 0, 1)

		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrValidationFailed)
	})

	t.Run("full destination occurrence is refused", func(t *testing.T) {
		f := newExceptionFixture()
		f.resolver.occ.Roster = []domain.RosterEntry{
			{Kind: domain.RosterRegular, Key: "enrollment:20", ParticipantID: 200},
			{Kind: domain.RosterRegular, Key: "enrollment:21", ParticipantID: 201},
		}

		assert.ErrorIs(t, f.service.Create(context.Background(), rescheduleRequest()), apperrors.ErrConflict)
	})

	t.Run("deleted destination slot is a conflict", func(t *testing.T) {
		f := newExceptionFixture()

		exc := rescheduleRequest()
		gone := int64(99)
		exc.DestSlotID = &gone

		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrDestinationSlotGone)
	})

	t.Run("deactivated destination slot is a conflict", func(t *testing.T) {
		f := newExceptionFixture()
		f.slots.slots[2].Active = false

		assert.ErrorIs(t, f.service.Create(context.Background(), rescheduleRequest()), apperrors.ErrDestinationSlotGone)
	})

	t.Run("destination slot outside the offering windows is refused", func(t *testing.T) {
		f := newExceptionFixture()
		f.slots.slots[2].Start = models.MustParseClock("13:00")
		f.slots.slots[2].End = models.MustParseClock("13:50")

		assert.ErrorIs(t, f.service.Create(context.Background(), rescheduleRequest()), apperrors.ErrDestinationUnavailable)
	})
}

func TestExceptionDetachedDestination(t *testing.T) {
	detached := func(start, end *models.Clock, date time.Time) *models.RescheduleException {
		return &models.RescheduleException{
			OriginSlotID:  1,
			OriginDate:    classDate,
			DestDate:      date,
			DestStart:     start,
			DestEnd:       end,
			ParticipantID: 100,
		}
	}
	clockPtr := func(s string) *models.Clock {
		c := models.MustParseClock(s)
		return &c
	}

	t.Run("pure date move needs no time check", func(t *testing.T) {
		f := newExceptionFixture()

		exc := detached(nil, nil, rescheduleWednesday)
		require.NoError(t, f.service.Create(context.Background(), exc))
		assert.Equal(t, models.ExceptionPending, exc.Status)
	})

	t.Run("time inside the origin windows passes", func(t *testing.T) {
		f := newExceptionFixture()

		exc := detached(clockPtr("09:30"), clockPtr("10:20"), rescheduleWednesday)
		assert.NoError(t, f.service.Create(context.Background(), exc))
	})

	t.Run("time outside the origin windows is refused", func(t *testing.T) {
		f := newExceptionFixture()

		exc := detached(clockPtr("13:00"), clockPtr("13:50"), rescheduleWednesday)
		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrDestinationUnavailable)
	})

	t.Run("weekday without a window is refused", func(t *testing.T) {
		f := newExceptionFixture()

		exc := detached(clockPtr("09:30"), clockPtr("10:20"), rescheduleSaturday)
		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrDestinationUnavailable)
	})

	t.Run("end before start is rejected", func(t *testing.T) {
		f := newExceptionFixture()

		exc := detached(clockPtr("11:00"), clockPtr("10:00"), rescheduleWednesday)
		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrValidationFailed)
	})

	t.Run("start without end is rejected", func(t *testing.T) {
		f := newExceptionFixture()

		exc := detached(clockPtr("10:00"), nil, rescheduleWednesday)
		assert.ErrorIs(t, f.service.Create(context.Background(), exc), apperrors.ErrValidationFailed)
	})
}

func TestExceptionDecisions(t *testing.T) {
	file := func(t *testing.T, f *exceptionFixture) *models.RescheduleException {
		t.Helper()
		exc := rescheduleRequest()
		require.NoError(t, f.service.Create(context.Background(), exc))
		return exc
	}

	t.Run("approve moves a pending request to approved", func(t *testing.T) {
		f := newExceptionFixture()
		exc := file(t, f)

		approved, err := f.service.Approve(context.Background(), exc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExceptionApproved, approved.Status)
		assert.NotNil(t, approved.DecidedAt)
	})

	t.Run("approve re-validates the destination", func(t *testing.T) {
		f := newExceptionFixture()
		exc := file(t, f)

		// The destination filled up between request and decision
		f.resolver.occ.Roster = []domain.RosterEntry{
			{Kind: domain.RosterRegular, Key: "enrollment:20", ParticipantID: 200},
			{Kind: domain.RosterRegular, Key: "enrollment:21", ParticipantID: 201},
		}

		_, err := f.service.Approve(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("decided exceptions cannot be approved again", func(t *testing.T) {
		f := newExceptionFixture()
		exc := file(t, f)

		_, err := f.service.Approve(context.Background(), exc.ID)
		require.NoError(t, err)

		_, err = f.service.Approve(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrExceptionNotPending)
	})

	t.Run("reject keeps the row on file", func(t *testing.T) {
		f := newExceptionFixture()
		exc := file(t, f)

		rejected, err := f.service.Reject(context.Background(), exc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExceptionRejected, rejected.Status)

		kept, err := f.service.GetByID(context.Background(), exc.ID)
		require.NoError(t, err)
		assert.Equal(t, models.ExceptionRejected, kept.Status)
	})

	t.Run("approved exceptions cannot be rejected", func(t *testing.T) {
		f := newExceptionFixture()
		exc := file(t, f)

		_, err := f.service.Approve(context.Background(), exc.ID)
		require.NoError(t, err)

		_, err = f.service.Reject(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrExceptionNotPending)
	})
}

func TestExceptionCancel(t *testing.T) {
	t.Run("cancel deletes a pending request", func(t *testing.T) {
		f := newExceptionFixture()
		exc := rescheduleRequest()
		require.NoError(t, f.service.Create(context.Background(), exc))

		require.NoError(t, f.service.Cancel(context.Background(), exc.ID))

		_, err := f.service.GetByID(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrExceptionNotFound)
	})

	t.Run("cancel deletes an approved exception", func(t *testing.T) {
		f := newExceptionFixture()
		exc := rescheduleRequest()
		require.NoError(t, f.service.Create(context.Background(), exc))
		_, err := f.service.Approve(context.Background(), exc.ID)
		require.NoError(t, err)

		require.NoError(t, f.service.Cancel(context.Background(), exc.ID))

		_, err = f.service.GetByID(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrExceptionNotFound)
	})

	t.Run("cancelling a missing exception fails", func(t *testing.T) {
		f := newExceptionFixture()

		assert.ErrorIs(t, f.service.Cancel(context.Background(), 999), apperrors.ErrExceptionNotFound)
	})
}

func TestExceptionResolveDestination(t *testing.T) {
	t.Run("resolves the destination occurrence", func(t *testing.T) {
		f := newExceptionFixture()
		exc := rescheduleRequest()
		require.NoError(t, f.service.Create(context.Background(), exc))

		occ, err := f.service.ResolveDestination(context.Background(), exc.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), occ.Slot.ID)
	})

	t.Run("date-only exception has no destination to resolve", func(t *testing.T) {
		f := newExceptionFixture()
		exc := &models.RescheduleException{
			OriginSlotID:  1,
			OriginDate:    classDate,
			DestDate:      rescheduleWednesday,
			ParticipantID: 100,
		}
		require.NoError(t, f.service.Create(context.Background(), exc))

		_, err := f.service.ResolveDestination(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})

	t.Run("deleted destination slot reports not found", func(t *testing.T) {
		f := newExceptionFixture()
		exc := rescheduleRequest()
		require.NoError(t, f.service.Create(context.Background(), exc))

		f.resolver.occ = nil
		f.resolver.err = apperrors.ErrSlotNotFound

		_, err := f.service.ResolveDestination(context.Background(), exc.ID)
		assert.ErrorIs(t, err, apperrors.ErrSlotNotFound)
	})
}
