package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/studioclass/internal/app/auth"
	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// ParticipantService manages studio members.
type ParticipantService interface {
	CreateParticipant(ctx context.Context, participant *models.Participant) error
	GetParticipantByID(ctx context.Context, id int64) (*models.Participant, error)
	GetAllParticipants(ctx context.Context) ([]*models.Participant, error)
	UpdateParticipant(ctx context.Context, participant *models.Participant) error
	DeleteParticipant(ctx context.Context, actor *models.User, id int64) error
}

type participantServiceImpl struct {
	participantRepo *repositories.ParticipantRepository
	authzService    *auth.AuthorizationService
}

// NewParticipantService creates a new participant service instance
func NewParticipantService(participantRepo *repositories.ParticipantRepository, authzService *auth.AuthorizationService) ParticipantService {
	return &participantServiceImpl{
		participantRepo: participantRepo,
		authzService:    authzService,
	}
}

func (s *participantServiceImpl) validateParticipant(participant *models.Participant) error {
	participant.Name = strings.TrimSpace(participant.Name)
	if participant.Name == "" {
		return fmt.Errorf("%w: participant name cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// CreateParticipant creates a new studio member
func (s *participantServiceImpl) CreateParticipant(ctx context.Context, participant *models.Participant) error {
	if err := s.validateParticipant(participant); err != nil {
		return err
	}
	return s.participantRepo.Create(ctx, participant)
}

// GetParticipantByID retrieves a participant by ID
func (s *participantServiceImpl) GetParticipantByID(ctx context.Context, id int64) (*models.Participant, error) {
	return s.participantRepo.GetByID(ctx, id)
}

// GetAllParticipants retrieves all participants
func (s *participantServiceImpl) GetAllParticipants(ctx context.Context) ([]*models.Participant, error) {
	return s.participantRepo.GetAll(ctx)
}

// UpdateParticipant updates a member's details and status flags
func (s *participantServiceImpl) UpdateParticipant(ctx context.Context, participant *models.Participant) error {
	if err := s.validateParticipant(participant); err != nil {
		return err
	}
	return s.participantRepo.Update(ctx, participant)
}

// DeleteParticipant permanently deletes a member. The capability sits
// with managers only; everything referencing the member cascades away.
func (s *participantServiceImpl) DeleteParticipant(ctx context.Context, actor *models.User, id int64) error {
	if err := s.authzService.ValidateCanDeleteParticipant(actor); err != nil {
		return err
	}
	return s.participantRepo.Delete(ctx, id)
}
