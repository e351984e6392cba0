package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/auth"
	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// Monday, June 3rd 2024; "today" in these tests is the following Friday.
var (
	classDate = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	testToday = time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
)

type fakeResolver struct {
	occ *domain.Occurrence
	err error
}

func (f *fakeResolver) GetOccurrence(ctx context.Context, slotID int64, date time.Time) (*domain.Occurrence, error) {
	return f.occ, f.err
}

type fakeRecordStore struct {
	records   map[string]*models.AttendanceRecord
	nextID    int64
	createErr error
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string]*models.AttendanceRecord)}
}

func (f *fakeRecordStore) CreateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	if f.createErr != nil {
		return f.createErr
	}
	key := models.SubmissionKey(record.SlotID, record.Date)
	if _, exists := f.records[key]; exists {
		return apperrors.ErrAlreadySubmitted
	}
	f.nextID++
	record.ID = f.nextID
	record.SubmittedAt = testToday
	f.records[key] = record
	return nil
}

func (f *fakeRecordStore) GetRecord(ctx context.Context, slotID int64, date time.Time) (*models.AttendanceRecord, error) {
	record, ok := f.records[models.SubmissionKey(slotID, date)]
	if !ok {
		return nil, apperrors.ErrNotSubmitted
	}
	return record, nil
}

func (f *fakeRecordStore) DeleteRecord(ctx context.Context, slotID int64, date time.Time) error {
	key := models.SubmissionKey(slotID, date)
	if _, ok := f.records[key]; !ok {
		return apperrors.ErrNotSubmitted
	}
	delete(f.records, key)
	return nil
}

type fakeDraftStore struct {
	marks    map[string]models.AttendanceOutcome
	clearErr error
	cleared  bool
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{marks: make(map[string]models.AttendanceOutcome)}
}

func (f *fakeDraftStore) Upsert(ctx context.Context, mark *models.DraftMark) error {
	f.marks[mark.SubjectKey] = mark.Outcome
	return nil
}

func (f *fakeDraftStore) ListForOccurrence(ctx context.Context, slotID int64, date time.Time) ([]models.DraftMark, error) {
	var out []models.DraftMark
	for key, outcome := range f.marks {
		out = append(out, models.DraftMark{SubjectKey: key, SlotID: slotID, Date: date, Outcome: outcome})
	}
	return out, nil
}

func (f *fakeDraftStore) Clear(ctx context.Context, slotID int64, date time.Time) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	f.cleared = true
	f.marks = make(map[string]models.AttendanceOutcome)
	return nil
}

type fakeOutcomeStore struct {
	outcomes map[int64]models.AttendanceOutcome
	err      error
}

func newFakeOutcomeStore() *fakeOutcomeStore {
	return &fakeOutcomeStore{outcomes: make(map[int64]models.AttendanceOutcome)}
}

func (f *fakeOutcomeStore) RecordOutcome(ctx context.Context, id int64, outcome models.AttendanceOutcome) error {
	if f.err != nil {
		return f.err
	}
	f.outcomes[id] = outcome
	return nil
}

// testOccurrence builds a resolved roster with one regular member, one
// outgoing member, one trial and one credit drop-in.
func testOccurrence() *domain.Occurrence {
	slot := &models.ScheduleSlot{
		ID: 1, OfferingID: 1, Weekday: models.Monday,
		Start: models.MustParseClock("10:00"), End: models.MustParseClock("10:50"),
		Active: true,
	}
	return &domain.Occurrence{
		Slot: slot,
		Date: classDate,
		Roster: []domain.RosterEntry{
			{Kind: domain.RosterRegular, Key: "enrollment:10", ParticipantID: 100},
			{Kind: domain.RosterRegular, Key: "enrollment:11", ParticipantID: 101, Outgoing: true},
			{Kind: domain.RosterTrial, Key: "trial:1", Trial: &models.TrialBooking{ID: 1, SlotID: 1, Date: classDate}},
			{Kind: domain.RosterCredit, Key: "credit:7", ParticipantID: 102, Credit: &models.CreditUsage{ID: 7, SlotID: 1, Date: classDate}},
		},
	}
}

type attendanceFixture struct {
	service        *attendanceServiceImpl
	records        *fakeRecordStore
	drafts         *fakeDraftStore
	trialOutcomes  *fakeOutcomeStore
	creditOutcomes *fakeOutcomeStore
}

func newAttendanceFixture(occ *domain.Occurrence) *attendanceFixture {
	f := &attendanceFixture{
		records:        newFakeRecordStore(),
		drafts:         newFakeDraftStore(),
		trialOutcomes:  newFakeOutcomeStore(),
		creditOutcomes: newFakeOutcomeStore(),
	}
	svc := NewAttendanceService(
		&fakeResolver{occ: occ},
		f.records,
		f.drafts,
		f.trialOutcomes,
		f.creditOutcomes,
		auth.NewAuthorizationService(nil),
	)
	f.service = svc.(*attendanceServiceImpl)
	f.service.now = func() time.Time { return testToday }
	return f
}

func manager() *models.User {
	return &models.User{ID: 1, RoleType: models.RoleManager}
}

func receptionist() *models.User {
	return &models.User{ID: 2, RoleType: models.RoleReceptionist}
}

func TestAttendanceSubmit_DefaultsUnmarkedToAbsent(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())

	result, err := f.service.Submit(context.Background(), 1, classDate, 5, map[string]models.AttendanceOutcome{
		"enrollment:10": models.OutcomePresent,
	})
	require.NoError(t, err)
	require.Empty(t, result.Warnings)

	record := result.Record
	assert.Equal(t, 1, record.PresentCount)
	// Trial and credit were unmarked; outgoing entry is not recorded
	assert.Equal(t, 2, record.AbsentCount)
	require.Len(t, record.Entries, 3)
	for _, entry := range record.Entries {
		assert.NotEqual(t, "enrollment:11", entry.SubjectKey)
	}
	assert.Equal(t, int64(5), record.SubmittedBy)
}

func TestAttendanceSubmit_ExplicitMarksOverrideDrafts(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())
	f.drafts.marks["enrollment:10"] = models.OutcomeAbsent
	f.drafts.marks["trial:1"] = models.OutcomePresent

	result, err := f.service.Submit(context.Background(), 1, classDate, 5, map[string]models.AttendanceOutcome{
		"enrollment:10": models.OutcomePresent,
	})
	require.NoError(t, err)

	marks := make(map[string]models.AttendanceOutcome)
	for _, entry := range result.Record.Entries {
		marks[entry.SubjectKey] = entry.Outcome
	}
	assert.Equal(t, models.OutcomePresent, marks["enrollment:10"], "explicit mark wins over draft")
	assert.Equal(t, models.OutcomePresent, marks["trial:1"], "untouched draft carries through")
	assert.True(t, f.drafts.cleared, "drafts cleared after submit")
}

func TestAttendanceSubmit_WritesTrialAndCreditOutcomes(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())

	_, err := f.service.Submit(context.Background(), 1, classDate, 5, map[string]models.AttendanceOutcome{
		"trial:1":  models.OutcomePresent,
		"credit:7": models.OutcomeAbsent,
	})
	require.NoError(t, err)

	assert.Equal(t, models.OutcomePresent, f.trialOutcomes.outcomes[1])
	assert.Equal(t, models.OutcomeAbsent, f.creditOutcomes.outcomes[7])
}

func TestAttendanceSubmit_SecondSubmitFails(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())

	_, err := f.service.Submit(context.Background(), 1, classDate, 5, nil)
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), 1, classDate, 5, nil)
	assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
}

func TestAttendanceSubmit_FutureDateRejected(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())

	_, err := f.service.Submit(context.Background(), 1, testToday.AddDate(0, 0, 3), 5, nil)
	assert.ErrorIs(t, err, apperrors.ErrFutureDate)
}

func TestAttendanceSubmit_TodayIsSubmittable(t *testing.T) {
	occ := testOccurrence()
	occ.Date = testToday
	f := newAttendanceFixture(occ)

	_, err := f.service.Submit(context.Background(), 1, testToday, 5, nil)
	assert.NoError(t, err)
}

func TestAttendanceSubmit_InvalidMarkRejected(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())

	_, err := f.service.Submit(context.Background(), 1, classDate, 5, map[string]models.AttendanceOutcome{
		"enrollment:10": "late",
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestAttendanceSubmit_OutcomeFailuresAreWarnings(t *testing.T) {
	f := newAttendanceFixture(testOccurrence())
	f.trialOutcomes.err = errors.New("trial row gone")
	f.drafts.clearErr = errors.New("draft table locked")

	result, err := f.service.Submit(context.Background(), 1, classDate, 5, nil)
	require.NoError(t, err, "submit succeeds even when follow-up writes fail")

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], "trial 1")
	assert.Contains(t, result.Warnings[1], "draft marks not cleared")
	// The record is locked regardless
	_, err = f.records.GetRecord(context.Background(), 1, classDate)
	assert.NoError(t, err)
}

func TestAttendanceSaveMark(t *testing.T) {
	t.Run("stores a draft for a known roster entry", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())

		mark, err := f.service.SaveMark(context.Background(), 1, classDate, "enrollment:10", models.OutcomePresent)
		require.NoError(t, err)
		assert.Equal(t, models.OutcomePresent, mark.Outcome)
		assert.Equal(t, models.OutcomePresent, f.drafts.marks["enrollment:10"])
	})

	t.Run("rejects unknown roster entries", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())

		_, err := f.service.SaveMark(context.Background(), 1, classDate, "enrollment:999", models.OutcomePresent)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects invalid outcomes", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())

		_, err := f.service.SaveMark(context.Background(), 1, classDate, "enrollment:10", "maybe")
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects marks on a submitted occurrence", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())
		_, err := f.service.Submit(context.Background(), 1, classDate, 5, nil)
		require.NoError(t, err)

		_, err = f.service.SaveMark(context.Background(), 1, classDate, "enrollment:10", models.OutcomePresent)
		assert.ErrorIs(t, err, apperrors.ErrAlreadySubmitted)
	})
}

func TestAttendanceLoadSheet(t *testing.T) {
	t.Run("open occurrence shows drafts", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())
		f.drafts.marks["enrollment:10"] = models.OutcomePresent

		sheet, err := f.service.LoadSheet(context.Background(), 1, classDate)
		require.NoError(t, err)
		assert.False(t, sheet.Submitted)
		assert.Nil(t, sheet.Record)
		assert.Equal(t, models.OutcomePresent, sheet.Marks["enrollment:10"])
	})

	t.Run("submitted occurrence shows the locked record", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())
		_, err := f.service.Submit(context.Background(), 1, classDate, 5, map[string]models.AttendanceOutcome{
			"enrollment:10": models.OutcomePresent,
		})
		require.NoError(t, err)

		sheet, err := f.service.LoadSheet(context.Background(), 1, classDate)
		require.NoError(t, err)
		assert.True(t, sheet.Submitted)
		require.NotNil(t, sheet.Record)
		assert.Equal(t, models.OutcomePresent, sheet.Marks["enrollment:10"])
		assert.Equal(t, models.OutcomeAbsent, sheet.Marks["trial:1"])
	})
}

func TestAttendanceReopen(t *testing.T) {
	t.Run("manager reopens a submitted occurrence", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())
		_, err := f.service.Submit(context.Background(), 1, classDate, 5, nil)
		require.NoError(t, err)

		require.NoError(t, f.service.Reopen(context.Background(), manager(), 1, classDate))

		_, err = f.records.GetRecord(context.Background(), 1, classDate)
		assert.ErrorIs(t, err, apperrors.ErrNotSubmitted)

		// A fresh submit is possible again
		_, err = f.service.Submit(context.Background(), 1, classDate, 5, nil)
		assert.NoError(t, err)
	})

	t.Run("receptionist is refused", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())
		_, err := f.service.Submit(context.Background(), 1, classDate, 5, nil)
		require.NoError(t, err)

		err = f.service.Reopen(context.Background(), receptionist(), 1, classDate)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("reopening an unsubmitted occurrence fails", func(t *testing.T) {
		f := newAttendanceFixture(testOccurrence())

		err := f.service.Reopen(context.Background(), manager(), 1, classDate)
		assert.ErrorIs(t, err, apperrors.ErrNotSubmitted)
	})
}
