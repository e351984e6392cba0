package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// ExceptionStore persists the reschedule ledger. Satisfied by
// repositories.ExceptionRepository.
type ExceptionStore interface {
	Create(ctx context.Context, exc *models.RescheduleException) error
	GetByID(ctx context.Context, id int64) (*models.RescheduleException, error)
	List(ctx context.Context, status *models.ExceptionStatus) ([]*models.RescheduleException, error)
	ExistsActive(ctx context.Context, participantID, originSlotID int64, originDate string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.ExceptionStatus) error
	Delete(ctx context.Context, id int64) error
}

// SlotFinder loads template slots and their enrollments. Satisfied by
// repositories.SlotRepository.
type SlotFinder interface {
	GetByID(ctx context.Context, id int64) (*models.ScheduleSlot, error)
	GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// ParticipantFinder loads participants. Satisfied by
// repositories.ParticipantRepository.
type ParticipantFinder interface {
	GetByID(ctx context.Context, id int64) (*models.Participant, error)
}

// ExceptionService runs the reschedule workflow: request, approve,
// reject, cancel. Only approved exceptions ever move a participant.
type ExceptionService interface {
	Create(ctx context.Context, exc *models.RescheduleException) error
	GetByID(ctx context.Context, id int64) (*models.RescheduleException, error)
	List(ctx context.Context, status *models.ExceptionStatus) ([]*models.RescheduleException, error)
	Approve(ctx context.Context, id int64) (*models.RescheduleException, error)
	Reject(ctx context.Context, id int64) (*models.RescheduleException, error)
	Cancel(ctx context.Context, id int64) error
	ResolveDestination(ctx context.Context, id int64) (*domain.Occurrence, error)
}

type exceptionServiceImpl struct {
	exceptions   ExceptionStore
	slots        SlotFinder
	participants ParticipantFinder
	occurrences  OccurrenceResolver
}

// NewExceptionService creates a new exception service instance
func NewExceptionService(
	exceptions ExceptionStore,
	slots SlotFinder,
	participants ParticipantFinder,
	occurrences OccurrenceResolver,
) ExceptionService {
	return &exceptionServiceImpl{
		exceptions:   exceptions,
		slots:        slots,
		participants: participants,
		occurrences:  occurrences,
	}
}

// Create files a pending reschedule request. The participant reference
// may arrive as an enrollment or directly; it is resolved to a
// participant before anything is stored.
func (s *exceptionServiceImpl) Create(ctx context.Context, exc *models.RescheduleException) error {
	origin, err := s.slots.GetByID(ctx, exc.OriginSlotID)
	if err != nil {
		return err
	}

	if exc.EnrollmentID != nil {
		enrollment, err := s.slots.GetEnrollmentByID(ctx, *exc.EnrollmentID)
		if err != nil {
			return err
		}
		if enrollment.SlotID != exc.OriginSlotID {
			return fmt.Errorf("%w: enrollment does not belong to the origin slot", apperrors.ErrValidationFailed)
		}
		exc.ParticipantID = enrollment.ParticipantID
	}
	if exc.ParticipantID <= 0 {
		return fmt.Errorf("%w: an enrollment or participant reference is required", apperrors.ErrValidationFailed)
	}

	participant, err := s.participants.GetByID(ctx, exc.ParticipantID)
	if err != nil {
		return err
	}
	if !participant.Eligible() {
		return apperrors.ErrParticipantIneligible
	}

	exc.OriginDate = helpers.DateOnly(exc.OriginDate)
	exc.DestDate = helpers.DateOnly(exc.DestDate)

	if !origin.Weekday.Matches(exc.OriginDate) {
		return fmt.Errorf("%w: origin date does not fall on the slot's weekday", apperrors.ErrValidationFailed)
	}
	if s.isNoOp(exc) {
		return apperrors.ErrNoOpReschedule
	}

	exists, err := s.exceptions.ExistsActive(ctx, exc.ParticipantID, exc.OriginSlotID, exc.OriginDate.Format(helpers.DateFormat))
	if err != nil {
		return err
	}
	if exists {
		return apperrors.ErrDuplicateException
	}

	if err := s.validateDestination(ctx, exc); err != nil {
		return err
	}

	exc.Status = models.ExceptionPending
	if err := s.exceptions.Create(ctx, exc); err != nil {
		return err
	}
	exc.Participant = participant
	return nil
}

// GetByID retrieves a reschedule exception
func (s *exceptionServiceImpl) GetByID(ctx context.Context, id int64) (*models.RescheduleException, error) {
	return s.exceptions.GetByID(ctx, id)
}

// List retrieves exceptions, optionally filtered by status
func (s *exceptionServiceImpl) List(ctx context.Context, status *models.ExceptionStatus) ([]*models.RescheduleException, error) {
	return s.exceptions.List(ctx, status)
}

// Approve moves a pending exception into the approved state. The
// destination is re-validated at decision time; the occurrence it points
// at may have filled up or disappeared since the request was filed.
func (s *exceptionServiceImpl) Approve(ctx context.Context, id int64) (*models.RescheduleException, error) {
	exc, err := s.exceptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exc.Status != models.ExceptionPending {
		return nil, apperrors.ErrExceptionNotPending
	}
	if err := s.validateDestination(ctx, exc); err != nil {
		return nil, err
	}
	if err := s.exceptions.UpdateStatus(ctx, id, models.ExceptionApproved); err != nil {
		return nil, err
	}
	return s.exceptions.GetByID(ctx, id)
}

// Reject moves a pending exception into the rejected state. The row
// stays on file for auditing.
func (s *exceptionServiceImpl) Reject(ctx context.Context, id int64) (*models.RescheduleException, error) {
	exc, err := s.exceptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exc.Status != models.ExceptionPending {
		return nil, apperrors.ErrExceptionNotPending
	}
	if err := s.exceptions.UpdateStatus(ctx, id, models.ExceptionRejected); err != nil {
		return nil, err
	}
	return s.exceptions.GetByID(ctx, id)
}

// Cancel withdraws a request outright, whatever its status. Unlike
// rejection the row is deleted and leaves no audit trail. Cancelling an
// approved exception puts the participant back on the origin occurrence;
// the desk confirms that before the call lands here.
func (s *exceptionServiceImpl) Cancel(ctx context.Context, id int64) error {
	if _, err := s.exceptions.GetByID(ctx, id); err != nil {
		return err
	}
	return s.exceptions.Delete(ctx, id)
}

// ResolveDestination returns the resolved occurrence an exception points
// at, for navigation and display. Date-only exceptions carry no slot to
// resolve; a deleted destination slot reports as not found rather than
// failing resolution elsewhere.
func (s *exceptionServiceImpl) ResolveDestination(ctx context.Context, id int64) (*domain.Occurrence, error) {
	exc, err := s.exceptions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exc.DestSlotID == nil {
		return nil, apperrors.NewResourceNotFoundError("exception has no destination slot")
	}
	return s.occurrences.GetOccurrence(ctx, *exc.DestSlotID, exc.DestDate)
}

// isNoOp reports whether the requested destination equals the origin
// occurrence.
func (s *exceptionServiceImpl) isNoOp(exc *models.RescheduleException) bool {
	if !exc.OriginDate.Equal(exc.DestDate) {
		return false
	}
	if exc.DestSlotID != nil {
		return *exc.DestSlotID == exc.OriginSlotID
	}
	return exc.DestStart == nil && exc.DestEnd == nil
}

// validateDestination checks a slot-targeted destination: the slot must
// still exist and be active, the date must fall on its weekday, the time
// must fit its offering's windows and the occurrence must have a free
// spot. Destinations naming only a date and time are checked against the
// origin offering's windows instead.
func (s *exceptionServiceImpl) validateDestination(ctx context.Context, exc *models.RescheduleException) error {
	if exc.DestSlotID == nil {
		return s.validateDetachedDestination(ctx, exc)
	}

	dest, err := s.slots.GetByID(ctx, *exc.DestSlotID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSlotNotFound) {
			return apperrors.ErrDestinationSlotGone
		}
		return err
	}
	if !dest.Active {
		return apperrors.ErrDestinationSlotGone
	}
	if !dest.Weekday.Matches(exc.DestDate) {
		return fmt.Errorf("%w: destination date does not fall on the slot's weekday", apperrors.ErrValidationFailed)
	}
	if !domain.IsAllowed(dest.Offering, dest.Weekday, dest.Start, dest.End) {
		return apperrors.ErrDestinationUnavailable
	}

	occ, err := s.occurrences.GetOccurrence(ctx, dest.ID, exc.DestDate)
	if err != nil {
		return err
	}
	occupancy := domain.ComputeOccupancy(occ, dest.Offering.EffectiveCapacity())
	if occupancy.Vacancy == 0 {
		return apperrors.NewConflictError("destination occurrence is already full")
	}
	return nil
}

// validateDetachedDestination checks a destination that names no slot.
// A pure date move keeps the origin time and needs no check; when a
// time is given it must be a sane interval inside the origin offering's
// windows on the destination weekday.
func (s *exceptionServiceImpl) validateDetachedDestination(ctx context.Context, exc *models.RescheduleException) error {
	if exc.DestStart == nil && exc.DestEnd == nil {
		return nil
	}
	if exc.DestStart == nil || exc.DestEnd == nil {
		return fmt.Errorf("%w: destination time needs both start and end", apperrors.ErrValidationFailed)
	}
	if !exc.DestStart.Valid() || !exc.DestEnd.Valid() || *exc.DestStart >= *exc.DestEnd {
		return fmt.Errorf("%w: destination end must come after start", apperrors.ErrValidationFailed)
	}

	origin, err := s.slots.GetByID(ctx, exc.OriginSlotID)
	if err != nil {
		return err
	}
	if !domain.IsAllowed(origin.Offering, models.Weekday(exc.DestDate.Weekday()), *exc.DestStart, *exc.DestEnd) {
		return apperrors.ErrDestinationUnavailable
	}
	return nil
}
