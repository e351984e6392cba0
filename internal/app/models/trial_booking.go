package models

import (
	"time"

	"github.com/google/uuid"
)

// TrialStatus is the lifecycle state of a trial booking.
type TrialStatus string

const (
	TrialScheduled TrialStatus = "scheduled"
	TrialApproved  TrialStatus = "approved"
	TrialCompleted TrialStatus = "completed"
	TrialCancelled TrialStatus = "cancelled"
)

// Valid returns true when the status is a supported value.
func (s TrialStatus) Valid() bool {
	switch s {
	case TrialScheduled, TrialApproved, TrialCompleted, TrialCancelled:
		return true
	default:
		return false
	}
}

// OnRoster reports whether a trial in this state appears on the resolved
// occurrence roster.
func (s TrialStatus) OnRoster() bool {
	return s == TrialScheduled || s == TrialApproved
}

// TrialBooking is a prospective member's one-time trial attendance at a
// specific slot occurrence.
type TrialBooking struct {
	ID   int64     `json:"id" db:"id"`
	Code uuid.UUID `json:"code" db:"code"`

	SlotID int64     `json:"slotId" db:"slot_id"`
	Date   time.Time `json:"date" db:"class_date"`

	ProspectName  string  `json:"prospectName" db:"prospect_name"`
	ProspectPhone *string `json:"prospectPhone,omitempty" db:"prospect_phone"`

	Status  TrialStatus       `json:"status" db:"status"`
	Outcome AttendanceOutcome `json:"outcome" db:"outcome"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
