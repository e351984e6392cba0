package dto

import "github.com/emre/studioclass/internal/app/models"

// ParticipantRequest represents participant create and update payloads
type ParticipantRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`

	Frozen     bool `json:"frozen"`
	Inactive   bool `json:"inactive"`
	Waitlisted bool `json:"waitlisted"`

	TrainingPeriod *string  `json:"trainingPeriod"`
	Partnership    *string  `json:"partnership"`
	Tags           []string `json:"tags"`
}

// ToModel converts the payload into a participant
func (r *ParticipantRequest) ToModel() *models.Participant {
	return &models.Participant{
		Name:           r.Name,
		Phone:          r.Phone,
		Email:          r.Email,
		Frozen:         r.Frozen,
		Inactive:       r.Inactive,
		Waitlisted:     r.Waitlisted,
		TrainingPeriod: r.TrainingPeriod,
		Partnership:    r.Partnership,
		Tags:           r.Tags,
	}
}
