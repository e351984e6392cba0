package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/domain"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// TrialService manages trial bookings for prospective members.
type TrialService interface {
	Create(ctx context.Context, trial *models.TrialBooking) error
	GetByID(ctx context.Context, id int64) (*models.TrialBooking, error)
	GetByCode(ctx context.Context, code uuid.UUID) (*models.TrialBooking, error)
	UpdateStatus(ctx context.Context, id int64, status models.TrialStatus) error
	Delete(ctx context.Context, id int64) error
}

type trialServiceImpl struct {
	trialRepo   *repositories.TrialRepository
	slotRepo    *repositories.SlotRepository
	occurrences OccurrenceService
}

// NewTrialService creates a new trial service instance
func NewTrialService(trialRepo *repositories.TrialRepository, slotRepo *repositories.SlotRepository, occurrences OccurrenceService) TrialService {
	return &trialServiceImpl{
		trialRepo:   trialRepo,
		slotRepo:    slotRepo,
		occurrences: occurrences,
	}
}

// Create books a trial into a slot occurrence. Trials always occupy a
// spot, so the occurrence must have a vacancy at booking time.
func (s *trialServiceImpl) Create(ctx context.Context, trial *models.TrialBooking) error {
	trial.ProspectName = strings.TrimSpace(trial.ProspectName)
	if trial.ProspectName == "" {
		return fmt.Errorf("%w: prospect name cannot be empty", apperrors.ErrValidationFailed)
	}

	slot, err := s.slotRepo.GetByID(ctx, trial.SlotID)
	if err != nil {
		return err
	}
	trial.Date = helpers.DateOnly(trial.Date)
	if !slot.Weekday.Matches(trial.Date) {
		return fmt.Errorf("%w: trial date does not fall on the slot's weekday", apperrors.ErrValidationFailed)
	}

	occ, err := s.occurrences.GetOccurrence(ctx, slot.ID, trial.Date)
	if err != nil {
		return err
	}
	occupancy := domain.ComputeOccupancy(occ, slot.Offering.EffectiveCapacity())
	if occupancy.Vacancy == 0 {
		return apperrors.NewConflictError("occurrence is already full")
	}

	trial.Status = models.TrialScheduled
	trial.Outcome = models.OutcomeUnset
	return s.trialRepo.Create(ctx, trial)
}

// GetByID retrieves a trial booking
func (s *trialServiceImpl) GetByID(ctx context.Context, id int64) (*models.TrialBooking, error) {
	return s.trialRepo.GetByID(ctx, id)
}

// GetByCode retrieves a trial booking by its public code
func (s *trialServiceImpl) GetByCode(ctx context.Context, code uuid.UUID) (*models.TrialBooking, error) {
	return s.trialRepo.GetByCode(ctx, code)
}

// UpdateStatus changes a trial's lifecycle state
func (s *trialServiceImpl) UpdateStatus(ctx context.Context, id int64, status models.TrialStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown trial status %q", apperrors.ErrValidationFailed, status)
	}
	if _, err := s.trialRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.trialRepo.UpdateStatus(ctx, id, status)
}

// Delete removes a trial booking
func (s *trialServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.trialRepo.Delete(ctx, id)
}
