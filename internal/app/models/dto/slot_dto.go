package dto

import "github.com/emre/studioclass/internal/app/models"

// SlotRequest represents slot create and update payloads. Weekday
// accepts both the 0-6 and 1-7 encodings.
type SlotRequest struct {
	OfferingID   int64        `json:"offeringId" binding:"required,min=1"`
	InstructorID *int64       `json:"instructorId" binding:"omitempty,min=1"`
	Weekday      int          `json:"weekday" binding:"min=0,max=7"`
	Start        models.Clock `json:"start" binding:"required"`
	End          models.Clock `json:"end" binding:"required"`
	Active       *bool        `json:"active"`
}

// ToModel converts the payload into a schedule slot with the weekday
// normalized onto the canonical scale.
func (r *SlotRequest) ToModel() (*models.ScheduleSlot, error) {
	weekday, err := models.NormalizeWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}
	slot := &models.ScheduleSlot{
		OfferingID:   r.OfferingID,
		InstructorID: r.InstructorID,
		Weekday:      weekday,
		Start:        r.Start,
		End:          r.End,
		Active:       true,
	}
	if r.Active != nil {
		slot.Active = *r.Active
	}
	return slot, nil
}

// EnrollRequest represents adding a participant to a slot's roster
type EnrollRequest struct {
	ParticipantID int64   `json:"participantId" binding:"required,min=1"`
	Waitlisted    bool    `json:"waitlisted"`
	Note          *string `json:"note"`
}
