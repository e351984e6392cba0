package models

import "time"

// Enrollment is a participant's standing membership in a slot's roster.
type Enrollment struct {
	ID            int64   `json:"id" db:"id"`
	SlotID        int64   `json:"slotId" db:"slot_id"`
	ParticipantID int64   `json:"participantId" db:"participant_id"`
	Waitlisted    bool    `json:"waitlisted" db:"waitlisted"`
	Note          *string `json:"note,omitempty" db:"note"`
	Position      int     `json:"position" db:"position"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Participant *Participant `json:"participant,omitempty"`

	// Legacy marks enrollments synthesized from a slot's old single
	// participant column. They have no row of their own (ID == 0).
	Legacy bool `json:"-"`
}

// ScheduleSlot is one recurring weekly time block for an offering.
type ScheduleSlot struct {
	ID           int64  `json:"id" db:"id"`
	OfferingID   int64  `json:"offeringId" db:"offering_id"`
	InstructorID *int64 `json:"instructorId,omitempty" db:"instructor_id"`

	Weekday Weekday `json:"weekday" db:"weekday"`
	Start   Clock   `json:"start" db:"start_min"`
	End     Clock   `json:"end" db:"end_min"`
	Active  bool    `json:"active" db:"active"`

	// LegacyParticipantID carries the pre-roster single member reference
	// still present on old rows. NormalizedRoster folds it away.
	LegacyParticipantID *int64 `json:"-" db:"legacy_participant_id"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Enrollments       []*Enrollment `json:"enrollments,omitempty"`
	Offering          *Offering     `json:"offering,omitempty"`
	Instructor        *Instructor   `json:"instructor,omitempty"`
	LegacyParticipant *Participant  `json:"-"`
}

// NormalizedRoster returns the slot's enrollments in template order with
// the legacy single-participant shape folded into the same list. All
// downstream code consumes this list; nothing past this point branches on
// the raw storage shape.
func (s *ScheduleSlot) NormalizedRoster() []*Enrollment {
	roster := make([]*Enrollment, 0, len(s.Enrollments)+1)
	roster = append(roster, s.Enrollments...)

	if s.LegacyParticipantID == nil {
		return roster
	}
	// Skip the legacy reference when a real enrollment already covers it.
	for _, e := range s.Enrollments {
		if e.ParticipantID == *s.LegacyParticipantID {
			return roster
		}
	}
	roster = append(roster, &Enrollment{
		SlotID:        s.ID,
		ParticipantID: *s.LegacyParticipantID,
		Participant:   s.LegacyParticipant,
		Position:      len(roster),
		Legacy:        true,
	})
	return roster
}
