package services

import (
	"context"
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// ScheduleService manages the weekly slot template and its enrollments.
type ScheduleService interface {
	CreateSlot(ctx context.Context, slot *models.ScheduleSlot) error
	GetSlot(ctx context.Context, id int64) (*models.ScheduleSlot, error)
	ListSlots(ctx context.Context) ([]*models.ScheduleSlot, error)
	UpdateSlot(ctx context.Context, slot *models.ScheduleSlot) error
	DeleteSlot(ctx context.Context, id int64) error
	Enroll(ctx context.Context, slotID, participantID int64, waitlisted bool, note *string) (*models.Enrollment, error)
	Unenroll(ctx context.Context, enrollmentID int64) error
}

type scheduleServiceImpl struct {
	slotRepo        *repositories.SlotRepository
	offeringRepo    *repositories.OfferingRepository
	instructorRepo  *repositories.InstructorRepository
	participantRepo *repositories.ParticipantRepository
}

// NewScheduleService creates a new schedule service instance
func NewScheduleService(
	slotRepo *repositories.SlotRepository,
	offeringRepo *repositories.OfferingRepository,
	instructorRepo *repositories.InstructorRepository,
	participantRepo *repositories.ParticipantRepository,
) ScheduleService {
	return &scheduleServiceImpl{
		slotRepo:        slotRepo,
		offeringRepo:    offeringRepo,
		instructorRepo:  instructorRepo,
		participantRepo: participantRepo,
	}
}

// validateSlotTimes checks the slot's interval and its fit against the
// offering's availability windows.
func (s *scheduleServiceImpl) validateSlotTimes(slot *models.ScheduleSlot, offering *models.Offering) error {
	if !slot.Weekday.Valid() {
		return fmt.Errorf("%w: weekday must be between 0 and 6", apperrors.ErrValidationFailed)
	}
	if !slot.Start.Valid() || !slot.End.Valid() {
		return fmt.Errorf("%w: slot times must fall within the day", apperrors.ErrValidationFailed)
	}
	if slot.Start >= slot.End {
		return fmt.Errorf("%w: slot must start before it ends", apperrors.ErrValidationFailed)
	}
	if !domain.IsAllowed(offering, slot.Weekday, slot.Start, slot.End) {
		return apperrors.NewValidationError("slot time is outside the offering's availability windows")
	}
	return nil
}

// CreateSlot creates a weekly template slot after validating its
// offering, instructor and time placement.
func (s *scheduleServiceImpl) CreateSlot(ctx context.Context, slot *models.ScheduleSlot) error {
	offering, err := s.offeringRepo.GetByID(ctx, slot.OfferingID)
	if err != nil {
		return err
	}
	if slot.InstructorID != nil {
		if _, err := s.instructorRepo.GetByID(ctx, *slot.InstructorID); err != nil {
			return err
		}
	}
	if err := s.validateSlotTimes(slot, offering); err != nil {
		return err
	}

	slot.Active = true
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return err
	}
	slot.Offering = offering
	return nil
}

// GetSlot retrieves a slot with its roster and relations
func (s *scheduleServiceImpl) GetSlot(ctx context.Context, id int64) (*models.ScheduleSlot, error) {
	return s.slotRepo.GetByID(ctx, id)
}

// ListSlots retrieves the whole weekly template, active slots first by
// weekday and start time.
func (s *scheduleServiceImpl) ListSlots(ctx context.Context) ([]*models.ScheduleSlot, error) {
	return s.slotRepo.ListActive(ctx)
}

// UpdateSlot updates a slot's placement, instructor and active flag
func (s *scheduleServiceImpl) UpdateSlot(ctx context.Context, slot *models.ScheduleSlot) error {
	current, err := s.slotRepo.GetByID(ctx, slot.ID)
	if err != nil {
		return err
	}
	// Keep the legacy reference; updates never touch it.
	slot.LegacyParticipantID = current.LegacyParticipantID

	offering, err := s.offeringRepo.GetByID(ctx, slot.OfferingID)
	if err != nil {
		return err
	}
	if slot.InstructorID != nil {
		if _, err := s.instructorRepo.GetByID(ctx, *slot.InstructorID); err != nil {
			return err
		}
	}
	if err := s.validateSlotTimes(slot, offering); err != nil {
		return err
	}
	return s.slotRepo.Update(ctx, slot)
}

// DeleteSlot removes a template slot and its enrollments
func (s *scheduleServiceImpl) DeleteSlot(ctx context.Context, id int64) error {
	return s.slotRepo.Delete(ctx, id)
}

// Enroll adds a participant to a slot's roster. Frozen, inactive and
// waitlisted members cannot be newly enrolled; the waitlisted flag on
// the enrollment itself marks a standby position within the slot.
func (s *scheduleServiceImpl) Enroll(ctx context.Context, slotID, participantID int64, waitlisted bool, note *string) (*models.Enrollment, error) {
	if _, err := s.slotRepo.GetByID(ctx, slotID); err != nil {
		return nil, err
	}
	participant, err := s.participantRepo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if !participant.Eligible() {
		return nil, apperrors.ErrParticipantIneligible
	}

	enrollment := &models.Enrollment{
		SlotID:        slotID,
		ParticipantID: participantID,
		Waitlisted:    waitlisted,
		Note:          note,
	}
	if err := s.slotRepo.Enroll(ctx, enrollment); err != nil {
		return nil, err
	}
	enrollment.Participant = participant
	return enrollment, nil
}

// Unenroll removes an enrollment from its slot
func (s *scheduleServiceImpl) Unenroll(ctx context.Context, enrollmentID int64) error {
	return s.slotRepo.Unenroll(ctx, enrollmentID)
}
