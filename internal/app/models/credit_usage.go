package models

import "time"

// CreditUsage is a drop-in attendance consuming a pre-purchased credit
// outside normal enrollment.
type CreditUsage struct {
	ID            int64     `json:"id" db:"id"`
	ParticipantID int64     `json:"participantId" db:"participant_id"`
	SlotID        int64     `json:"slotId" db:"slot_id"`
	Date          time.Time `json:"date" db:"usage_date"`
	Note          *string   `json:"note,omitempty" db:"note"`

	Outcome AttendanceOutcome `json:"outcome" db:"outcome"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Participant *Participant `json:"participant,omitempty"`
}
