package dto

import (
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// CreateTrialRequest represents booking a trial attendance
type CreateTrialRequest struct {
	SlotID        int64   `json:"slotId" binding:"required,min=1"`
	Date          string  `json:"date" binding:"required"`
	ProspectName  string  `json:"prospectName" binding:"required"`
	ProspectPhone *string `json:"prospectPhone"`
}

// ToModel converts the payload into a trial booking
func (r *CreateTrialRequest) ToModel() (*models.TrialBooking, error) {
	date, err := helpers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	return &models.TrialBooking{
		SlotID:        r.SlotID,
		Date:          date,
		ProspectName:  r.ProspectName,
		ProspectPhone: r.ProspectPhone,
	}, nil
}

// UpdateTrialStatusRequest represents a trial lifecycle transition
type UpdateTrialStatusRequest struct {
	Status models.TrialStatus `json:"status" binding:"required,oneof=scheduled approved completed cancelled"`
}
