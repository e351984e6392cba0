package services

import (
	"context"
	"fmt"
	"time"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// SlotLister lists the active weekly template. Satisfied by
// repositories.SlotRepository.
type SlotLister interface {
	ListActive(ctx context.Context) ([]*models.ScheduleSlot, error)
}

// SubmissionLister returns the submitted occurrence keys inside a date
// range. Satisfied by repositories.AttendanceRepository.
type SubmissionLister interface {
	ListSubmittedKeys(ctx context.Context, from, to time.Time) (map[string]bool, error)
}

// AuditorService finds past occurrences whose attendance was never
// submitted.
type AuditorService interface {
	PendingOccurrences(ctx context.Context, from, to time.Time) ([]domain.PendingOccurrence, error)
}

type auditorServiceImpl struct {
	slots         SlotLister
	submissions   SubmissionLister
	platformStart time.Time

	now func() time.Time
}

// NewAuditorService creates a new auditor service instance. Nothing
// before platformStart can be pending: the studio did not exist yet.
func NewAuditorService(slots SlotLister, submissions SubmissionLister, platformStart time.Time) AuditorService {
	return &auditorServiceImpl{
		slots:         slots,
		submissions:   submissions,
		platformStart: helpers.DateOnly(platformStart),
		now:           time.Now,
	}
}

// PendingOccurrences scans [from, to] and returns every active slot
// occurrence missing a submitted attendance record. The range is clamped
// to [platform start, today].
func (s *auditorServiceImpl) PendingOccurrences(ctx context.Context, from, to time.Time) ([]domain.PendingOccurrence, error) {
	from = helpers.DateOnly(from)
	to = helpers.DateOnly(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: range start is after range end", apperrors.ErrValidationFailed)
	}

	slots, err := s.slots.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading template slots: %w", err)
	}
	submitted, err := s.submissions.ListSubmittedKeys(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("error loading submitted records: %w", err)
	}

	today := helpers.DateOnly(s.now())
	return domain.PendingOccurrences(slots, from, to, s.platformStart, today, submitted), nil
}
