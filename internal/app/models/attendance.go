package models

import (
	"fmt"
	"time"
)

// AttendanceOutcome is a per-roster-entry attendance mark. The empty
// value means no mark has been recorded.
type AttendanceOutcome string

const (
	OutcomePresent AttendanceOutcome = "present"
	OutcomeAbsent  AttendanceOutcome = "absent"
	OutcomeUnset   AttendanceOutcome = ""
)

// Valid returns true for a mark that can be stored.
func (o AttendanceOutcome) Valid() bool {
	return o == OutcomePresent || o == OutcomeAbsent
}

// AttendanceEntry is one roster entry's outcome inside a submitted record.
type AttendanceEntry struct {
	ID            int64             `json:"id" db:"id"`
	RecordID      int64             `json:"-" db:"record_id"`
	SubjectKey    string            `json:"subjectKey" db:"subject_key"`
	ParticipantID *int64            `json:"participantId,omitempty" db:"participant_id"`
	Outcome       AttendanceOutcome `json:"outcome" db:"outcome"`
}

// AttendanceRecord is the locked attendance submission for one slot
// occurrence. It exists only after a successful submit; reopening deletes
// it, returning the (slot, date) pair to the unsubmitted state.
type AttendanceRecord struct {
	ID     int64     `json:"id" db:"id"`
	SlotID int64     `json:"slotId" db:"slot_id"`
	Date   time.Time `json:"date" db:"class_date"`

	PresentCount int `json:"presentCount" db:"present_count"`
	AbsentCount  int `json:"absentCount" db:"absent_count"`

	SubmittedAt time.Time `json:"submittedAt" db:"submitted_at"`
	SubmittedBy int64     `json:"submittedBy" db:"submitted_by"`

	Entries []AttendanceEntry `json:"entries,omitempty"`
}

// DraftMark is an unsaved attendance edit held outside the submitted
// record. Marks are keyed by (subject, slot, date); a later write for the
// same key replaces the earlier one.
type DraftMark struct {
	SubjectKey string            `json:"subjectKey" db:"subject_key"`
	SlotID     int64             `json:"slotId" db:"slot_id"`
	Date       time.Time         `json:"date" db:"class_date"`
	Outcome    AttendanceOutcome `json:"outcome" db:"outcome"`
	UpdatedAt  time.Time         `json:"updatedAt" db:"updated_at"`
}

// SubmissionKey identifies one slot occurrence in submitted-set lookups.
func SubmissionKey(slotID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", slotID, date.Format("2006-01-02"))
}
