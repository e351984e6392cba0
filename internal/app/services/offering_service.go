package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// OfferingService manages class offerings and their availability
// configuration.
type OfferingService interface {
	CreateOffering(ctx context.Context, offering *models.Offering) error
	GetOfferingByID(ctx context.Context, id int64) (*models.Offering, error)
	GetAllOfferings(ctx context.Context) ([]*models.Offering, error)
	UpdateOffering(ctx context.Context, offering *models.Offering) error
	DeleteOffering(ctx context.Context, id int64) error
}

type offeringServiceImpl struct {
	offeringRepo *repositories.OfferingRepository
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(offeringRepo *repositories.OfferingRepository) OfferingService {
	return &offeringServiceImpl{
		offeringRepo: offeringRepo,
	}
}

// validateOffering checks names, duration and the internal consistency
// of the availability configuration.
func (s *offeringServiceImpl) validateOffering(offering *models.Offering) error {
	offering.Name = strings.TrimSpace(offering.Name)
	if offering.Name == "" {
		return fmt.Errorf("%w: offering name cannot be empty", apperrors.ErrValidationFailed)
	}
	if offering.DurationMin <= 0 {
		return fmt.Errorf("%w: duration must be positive", apperrors.ErrValidationFailed)
	}
	if offering.Capacity < 0 {
		return fmt.Errorf("%w: capacity cannot be negative", apperrors.ErrValidationFailed)
	}

	for _, w := range offering.Windows {
		if len(w.Weekdays) == 0 {
			return fmt.Errorf("%w: availability window needs at least one weekday", apperrors.ErrValidationFailed)
		}
		for _, d := range w.Weekdays {
			if !d.Valid() {
				return fmt.Errorf("%w: availability window weekday out of range", apperrors.ErrValidationFailed)
			}
		}
		if !w.Start.Valid() || !w.End.Valid() || w.Start >= w.End {
			return fmt.Errorf("%w: availability window times are invalid", apperrors.ErrValidationFailed)
		}
	}
	for _, r := range offering.TimeRanges {
		if !r.Start.Valid() || !r.End.Valid() || r.Start >= r.End {
			return fmt.Errorf("%w: time range boundaries are invalid", apperrors.ErrValidationFailed)
		}
	}
	for _, d := range offering.Weekdays {
		if !d.Valid() {
			return fmt.Errorf("%w: weekday out of range", apperrors.ErrValidationFailed)
		}
	}
	return nil
}

// CreateOffering creates a new class offering
func (s *offeringServiceImpl) CreateOffering(ctx context.Context, offering *models.Offering) error {
	if err := s.validateOffering(offering); err != nil {
		return err
	}
	return s.offeringRepo.Create(ctx, offering)
}

// GetOfferingByID retrieves an offering by ID
func (s *offeringServiceImpl) GetOfferingByID(ctx context.Context, id int64) (*models.Offering, error) {
	return s.offeringRepo.GetByID(ctx, id)
}

// GetAllOfferings retrieves all offerings
func (s *offeringServiceImpl) GetAllOfferings(ctx context.Context) ([]*models.Offering, error) {
	return s.offeringRepo.GetAll(ctx)
}

// UpdateOffering updates an existing offering
func (s *offeringServiceImpl) UpdateOffering(ctx context.Context, offering *models.Offering) error {
	if err := s.validateOffering(offering); err != nil {
		return err
	}
	return s.offeringRepo.Update(ctx, offering)
}

// DeleteOffering removes an offering; its template slots cascade away
func (s *offeringServiceImpl) DeleteOffering(ctx context.Context, id int64) error {
	return s.offeringRepo.Delete(ctx, id)
}
