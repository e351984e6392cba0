package models

import "time"

// ExceptionStatus is the reschedule workflow state.
type ExceptionStatus string

const (
	ExceptionPending  ExceptionStatus = "pending"
	ExceptionApproved ExceptionStatus = "approved"
	ExceptionRejected ExceptionStatus = "rejected"
)

// Valid returns true when the status is a supported value.
func (s ExceptionStatus) Valid() bool {
	switch s {
	case ExceptionPending, ExceptionApproved, ExceptionRejected:
		return true
	default:
		return false
	}
}

// RescheduleException moves one occurrence of a participant's enrollment
// to another date, and optionally another slot. Rejected exceptions stay
// on file for auditing but never affect occupancy; cancelled ones are
// deleted outright.
type RescheduleException struct {
	ID int64 `json:"id" db:"id"`

	OriginSlotID int64     `json:"originSlotId" db:"origin_slot_id"`
	OriginDate   time.Time `json:"originDate" db:"origin_date"`

	// DestSlotID is nil when the reschedule only names a date and time.
	DestSlotID *int64    `json:"destSlotId,omitempty" db:"dest_slot_id"`
	DestDate   time.Time `json:"destDate" db:"dest_date"`
	DestStart  *Clock    `json:"destStart,omitempty" db:"dest_start_min"`
	DestEnd    *Clock    `json:"destEnd,omitempty" db:"dest_end_min"`

	// The participant arrives either through an enrollment or directly.
	// Repositories always resolve ParticipantID on read, so consumers
	// never branch on which reference was stored.
	EnrollmentID  *int64 `json:"enrollmentId,omitempty" db:"enrollment_id"`
	ParticipantID int64  `json:"participantId" db:"participant_id"`

	Reason            string          `json:"reason" db:"reason"`
	Status            ExceptionStatus `json:"status" db:"status"`
	CreditReplacement bool            `json:"creditReplacement" db:"credit_replacement"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	DecidedAt *time.Time `json:"decidedAt,omitempty" db:"decided_at"`

	// Relations (populated when needed)
	Participant *Participant `json:"participant,omitempty"`
}

// MovesOut reports whether the exception removes the participant from the
// given slot occurrence.
func (e *RescheduleException) MovesOut(slotID int64, date time.Time) bool {
	return e.Status == ExceptionApproved &&
		e.OriginSlotID == slotID &&
		sameDate(e.OriginDate, date)
}

// MovesIn reports whether the exception adds the participant to the given
// slot occurrence.
func (e *RescheduleException) MovesIn(slotID int64, date time.Time) bool {
	return e.Status == ExceptionApproved &&
		e.DestSlotID != nil && *e.DestSlotID == slotID &&
		sameDate(e.DestDate, date)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
