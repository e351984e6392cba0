package services

import (
	"context"
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// CreditService manages credit drop-ins.
type CreditService interface {
	Create(ctx context.Context, credit *models.CreditUsage) error
	GetByID(ctx context.Context, id int64) (*models.CreditUsage, error)
	Delete(ctx context.Context, id int64) error
}

type creditServiceImpl struct {
	creditRepo      *repositories.CreditRepository
	slotRepo        *repositories.SlotRepository
	participantRepo *repositories.ParticipantRepository
}

// NewCreditService creates a new credit service instance
func NewCreditService(
	creditRepo *repositories.CreditRepository,
	slotRepo *repositories.SlotRepository,
	participantRepo *repositories.ParticipantRepository,
) CreditService {
	return &creditServiceImpl{
		creditRepo:      creditRepo,
		slotRepo:        slotRepo,
		participantRepo: participantRepo,
	}
}

// Create records a credit drop-in for a slot occurrence. Drop-ins bypass
// the vacancy check: the desk books them deliberately, overbooking is
// the desk's call.
func (s *creditServiceImpl) Create(ctx context.Context, credit *models.CreditUsage) error {
	slot, err := s.slotRepo.GetByID(ctx, credit.SlotID)
	if err != nil {
		return err
	}
	participant, err := s.participantRepo.GetByID(ctx, credit.ParticipantID)
	if err != nil {
		return err
	}

	credit.Date = helpers.DateOnly(credit.Date)
	if !slot.Weekday.Matches(credit.Date) {
		return fmt.Errorf("%w: usage date does not fall on the slot's weekday", apperrors.ErrValidationFailed)
	}

	credit.Outcome = models.OutcomeUnset
	if err := s.creditRepo.Create(ctx, credit); err != nil {
		return err
	}
	credit.Participant = participant
	return nil
}

// GetByID retrieves a credit usage
func (s *creditServiceImpl) GetByID(ctx context.Context, id int64) (*models.CreditUsage, error) {
	return s.creditRepo.GetByID(ctx, id)
}

// Delete removes a credit usage
func (s *creditServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.creditRepo.Delete(ctx, id)
}
