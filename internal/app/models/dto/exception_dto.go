package dto

import (
	"fmt"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/helpers"
)

// CreateExceptionRequest represents filing a reschedule request. Either
// an enrollment or a participant reference must be present; dates travel
// as YYYY-MM-DD strings.
type CreateExceptionRequest struct {
	OriginSlotID int64  `json:"originSlotId" binding:"required,min=1"`
	OriginDate   string `json:"originDate" binding:"required"`

	EnrollmentID  *int64 `json:"enrollmentId" binding:"omitempty,min=1"`
	ParticipantID *int64 `json:"participantId" binding:"omitempty,min=1"`

	DestSlotID *int64        `json:"destSlotId" binding:"omitempty,min=1"`
	DestDate   string        `json:"destDate" binding:"required"`
	DestStart  *models.Clock `json:"destStart"`
	DestEnd    *models.Clock `json:"destEnd"`

	Reason            string `json:"reason"`
	CreditReplacement bool   `json:"creditReplacement"`
}

// ToModel converts the payload into a reschedule exception
func (r *CreateExceptionRequest) ToModel() (*models.RescheduleException, error) {
	if r.EnrollmentID == nil && r.ParticipantID == nil {
		return nil, fmt.Errorf("%w: an enrollment or participant reference is required", apperrors.ErrValidationFailed)
	}

	originDate, err := helpers.ParseDate(r.OriginDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}
	destDate, err := helpers.ParseDate(r.DestDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	exc := &models.RescheduleException{
		OriginSlotID:      r.OriginSlotID,
		OriginDate:        originDate,
		EnrollmentID:      r.EnrollmentID,
		DestSlotID:        r.DestSlotID,
		DestDate:          destDate,
		DestStart:         r.DestStart,
		DestEnd:           r.DestEnd,
		Reason:            r.Reason,
		CreditReplacement: r.CreditReplacement,
	}
	if r.ParticipantID != nil {
		exc.ParticipantID = *r.ParticipantID
	}
	return exc, nil
}
