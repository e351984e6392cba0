package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emre/studioclass/internal/app/auth"
	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
	"github.com/emre/studioclass/internal/pkg/logger"
)

// OccurrenceResolver resolves a single slot occurrence. Satisfied by
// OccurrenceService.
type OccurrenceResolver interface {
	GetOccurrence(ctx context.Context, slotID int64, date time.Time) (*domain.Occurrence, error)
}

// AttendanceStore persists locked attendance records.
type AttendanceStore interface {
	CreateRecord(ctx context.Context, record *models.AttendanceRecord) error
	GetRecord(ctx context.Context, slotID int64, date time.Time) (*models.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, slotID int64, date time.Time) error
}

// DraftStore persists unsaved marks between page loads. Submitting or
// reopening clears the occurrence's drafts.
type DraftStore interface {
	Upsert(ctx context.Context, mark *models.DraftMark) error
	ListForOccurrence(ctx context.Context, slotID int64, date time.Time) ([]models.DraftMark, error)
	Clear(ctx context.Context, slotID int64, date time.Time) error
}

// OutcomeStore writes an attendance outcome back onto a trial booking or
// credit usage row.
type OutcomeStore interface {
	RecordOutcome(ctx context.Context, id int64, outcome models.AttendanceOutcome) error
}

// AttendanceSheet is the merged attendance view of one occurrence: the
// resolved roster plus either the locked record or the current drafts.
type AttendanceSheet struct {
	Occurrence *domain.Occurrence       `json:"occurrence"`
	Submitted  bool                     `json:"submitted"`
	Record     *models.AttendanceRecord `json:"record,omitempty"`

	// Marks maps roster entry keys to their current outcome. For a
	// submitted sheet these come from the record; otherwise from drafts.
	Marks map[string]models.AttendanceOutcome `json:"marks"`
}

// SubmitResult carries the created record plus any non-fatal follow-up
// failures. The record is locked even when warnings are present.
type SubmitResult struct {
	Record   *models.AttendanceRecord `json:"record"`
	Warnings []string                 `json:"warnings,omitempty"`
}

// AttendanceService runs the draft / submit / reopen lifecycle of an
// occurrence's attendance sheet.
type AttendanceService interface {
	LoadSheet(ctx context.Context, slotID int64, date time.Time) (*AttendanceSheet, error)
	SaveMark(ctx context.Context, slotID int64, date time.Time, subjectKey string, outcome models.AttendanceOutcome) (*models.DraftMark, error)
	Submit(ctx context.Context, slotID int64, date time.Time, submittedBy int64, marks map[string]models.AttendanceOutcome) (*SubmitResult, error)
	Reopen(ctx context.Context, actor *models.User, slotID int64, date time.Time) error
}

type attendanceServiceImpl struct {
	occurrences    OccurrenceResolver
	records        AttendanceStore
	drafts         DraftStore
	trialOutcomes  OutcomeStore
	creditOutcomes OutcomeStore
	authzService   *auth.AuthorizationService

	now func() time.Time
}

// NewAttendanceService creates a new attendance service instance
func NewAttendanceService(
	occurrences OccurrenceResolver,
	records AttendanceStore,
	drafts DraftStore,
	trialOutcomes OutcomeStore,
	creditOutcomes OutcomeStore,
	authzService *auth.AuthorizationService,
) AttendanceService {
	return &attendanceServiceImpl{
		occurrences:    occurrences,
		records:        records,
		drafts:         drafts,
		trialOutcomes:  trialOutcomes,
		creditOutcomes: creditOutcomes,
		authzService:   authzService,
		now:            time.Now,
	}
}

// LoadSheet resolves the occurrence and merges in the current marks.
// A submitted occurrence returns the locked record's entries; an open
// one returns the draft marks.
func (s *attendanceServiceImpl) LoadSheet(ctx context.Context, slotID int64, date time.Time) (*AttendanceSheet, error) {
	date = helpers.DateOnly(date)

	occ, err := s.occurrences.GetOccurrence(ctx, slotID, date)
	if err != nil {
		return nil, err
	}

	sheet := &AttendanceSheet{
		Occurrence: occ,
		Marks:      make(map[string]models.AttendanceOutcome),
	}

	record, err := s.records.GetRecord(ctx, slotID, date)
	switch {
	case err == nil:
		sheet.Submitted = true
		sheet.Record = record
		for _, entry := range record.Entries {
			sheet.Marks[entry.SubjectKey] = entry.Outcome
		}
		return sheet, nil
	case errors.Is(err, apperrors.ErrNotSubmitted):
		// fall through to drafts
	default:
		return nil, err
	}

	drafts, err := s.drafts.ListForOccurrence(ctx, slotID, date)
	if err != nil {
		return nil, err
	}
	for _, mark := range drafts {
		sheet.Marks[mark.SubjectKey] = mark.Outcome
	}
	return sheet, nil
}

// SaveMark stores one draft mark, replacing any earlier mark for the
// same roster entry. Marks cannot be saved onto a submitted occurrence.
func (s *attendanceServiceImpl) SaveMark(ctx context.Context, slotID int64, date time.Time, subjectKey string, outcome models.AttendanceOutcome) (*models.DraftMark, error) {
	date = helpers.DateOnly(date)

	if !outcome.Valid() {
		return nil, fmt.Errorf("%w: outcome must be present or absent", apperrors.ErrValidationFailed)
	}

	if _, err := s.records.GetRecord(ctx, slotID, date); err == nil {
		return nil, apperrors.ErrAlreadySubmitted
	} else if !errors.Is(err, apperrors.ErrNotSubmitted) {
		return nil, err
	}

	occ, err := s.occurrences.GetOccurrence(ctx, slotID, date)
	if err != nil {
		return nil, err
	}
	if rosterEntry(occ, subjectKey) == nil {
		return nil, fmt.Errorf("%w: unknown roster entry %q", apperrors.ErrValidationFailed, subjectKey)
	}

	mark := &models.DraftMark{
		SubjectKey: subjectKey,
		SlotID:     slotID,
		Date:       date,
		Outcome:    outcome,
	}
	if err := s.drafts.Upsert(ctx, mark); err != nil {
		return nil, err
	}
	return mark, nil
}

// Submit locks the occurrence's attendance. Explicit marks override
// stored drafts; roster entries without any mark default to absent.
// Outgoing entries attend elsewhere and are not recorded. Follow-up
// writes (trial and credit outcomes, draft cleanup) never undo the
// locked record; their failures come back as warnings.
func (s *attendanceServiceImpl) Submit(ctx context.Context, slotID int64, date time.Time, submittedBy int64, marks map[string]models.AttendanceOutcome) (*SubmitResult, error) {
	date = helpers.DateOnly(date)
	if date.After(helpers.DateOnly(s.now())) {
		return nil, apperrors.ErrFutureDate
	}

	occ, err := s.occurrences.GetOccurrence(ctx, slotID, date)
	if err != nil {
		return nil, err
	}

	final := make(map[string]models.AttendanceOutcome)
	drafts, err := s.drafts.ListForOccurrence(ctx, slotID, date)
	if err != nil {
		return nil, err
	}
	for _, mark := range drafts {
		final[mark.SubjectKey] = mark.Outcome
	}
	for key, outcome := range marks {
		if !outcome.Valid() {
			return nil, fmt.Errorf("%w: outcome for %q must be present or absent", apperrors.ErrValidationFailed, key)
		}
		final[key] = outcome
	}

	record := &models.AttendanceRecord{
		SlotID:      slotID,
		Date:        date,
		SubmittedBy: submittedBy,
	}
	for i := range occ.Roster {
		entry := &occ.Roster[i]
		if entry.Outgoing {
			continue
		}
		outcome := final[entry.Key]
		if outcome == models.OutcomeUnset {
			outcome = models.OutcomeAbsent
		}
		if outcome == models.OutcomePresent {
			record.PresentCount++
		} else {
			record.AbsentCount++
		}
		record.Entries = append(record.Entries, models.AttendanceEntry{
			SubjectKey:    entry.Key,
			ParticipantID: entryParticipantID(entry),
			Outcome:       outcome,
		})
	}

	if err := s.records.CreateRecord(ctx, record); err != nil {
		return nil, err
	}

	result := &SubmitResult{Record: record}
	for i := range occ.Roster {
		entry := &occ.Roster[i]
		if entry.Outgoing {
			continue
		}
		outcome := final[entry.Key]
		if outcome == models.OutcomeUnset {
			outcome = models.OutcomeAbsent
		}
		switch {
		case entry.Trial != nil:
			if err := s.trialOutcomes.RecordOutcome(ctx, entry.Trial.ID, outcome); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("trial %d outcome not recorded: %v", entry.Trial.ID, err))
				logger.Error().Err(err).Int64("trialID", entry.Trial.ID).Msg("Failed to record trial outcome after submit")
			}
		case entry.Credit != nil:
			if err := s.creditOutcomes.RecordOutcome(ctx, entry.Credit.ID, outcome); err != nil {
				result.Warnings = append(result.Warnings, fmt.Sprintf("credit %d outcome not recorded: %v", entry.Credit.ID, err))
				logger.Error().Err(err).Int64("creditID", entry.Credit.ID).Msg("Failed to record credit outcome after submit")
			}
		}
	}

	if err := s.drafts.Clear(ctx, slotID, date); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("draft marks not cleared: %v", err))
		logger.Error().Err(err).Int64("slotID", slotID).Msg("Failed to clear draft marks after submit")
	}
	return result, nil
}

// Reopen unlocks a submitted occurrence by deleting its record. Manager
// capability only; the occurrence returns to the unsubmitted state with
// a clean draft sheet.
func (s *attendanceServiceImpl) Reopen(ctx context.Context, actor *models.User, slotID int64, date time.Time) error {
	if err := s.authzService.ValidateCanReopenAttendance(actor); err != nil {
		return err
	}
	date = helpers.DateOnly(date)

	if err := s.records.DeleteRecord(ctx, slotID, date); err != nil {
		return err
	}
	if err := s.drafts.Clear(ctx, slotID, date); err != nil {
		logger.Error().Err(err).Int64("slotID", slotID).Msg("Failed to clear draft marks after reopen")
	}
	return nil
}

func rosterEntry(occ *domain.Occurrence, key string) *domain.RosterEntry {
	for i := range occ.Roster {
		if occ.Roster[i].Key == key {
			return &occ.Roster[i]
		}
	}
	return nil
}

func entryParticipantID(entry *domain.RosterEntry) *int64 {
	if entry.ParticipantID == 0 {
		return nil
	}
	id := entry.ParticipantID
	return &id
}
