package dto

import (
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// CreateCreditRequest represents recording a credit drop-in
type CreateCreditRequest struct {
	ParticipantID int64   `json:"participantId" binding:"required,min=1"`
	SlotID        int64   `json:"slotId" binding:"required,min=1"`
	Date          string  `json:"date" binding:"required"`
	Note          *string `json:"note"`
}

// ToModel converts the payload into a credit usage
func (r *CreateCreditRequest) ToModel() (*models.CreditUsage, error) {
	date, err := helpers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	return &models.CreditUsage{
		ParticipantID: r.ParticipantID,
		SlotID:        r.SlotID,
		Date:          date,
		Note:          r.Note,
	}, nil
}
