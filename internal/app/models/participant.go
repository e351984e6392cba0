package models

import "time"

// Participant represents a studio member.
type Participant struct {
	ID    int64   `json:"id" db:"id"`
	Name  string  `json:"name" db:"full_name"`
	Phone *string `json:"phone,omitempty" db:"phone"`
	Email *string `json:"email,omitempty" db:"email"`

	// Status flags. They are informative, not mutually exclusive; any
	// true flag removes the participant from active occupancy counts.
	Frozen     bool `json:"frozen" db:"frozen"`
	Inactive   bool `json:"inactive" db:"inactive"`
	Waitlisted bool `json:"waitlisted" db:"waitlisted"`

	TrainingPeriod *string  `json:"trainingPeriod,omitempty" db:"training_period"`
	Partnership    *string  `json:"partnership,omitempty" db:"partnership"`
	Tags           []string `json:"tags,omitempty" db:"tags"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// CountsTowardOccupancy reports whether the participant takes up a spot
// in a class occurrence.
func (p *Participant) CountsTowardOccupancy() bool {
	if p == nil {
		// Unknown participants (dangling references) are counted; the
		// resolver only drops entries it can prove are excluded.
		return true
	}
	return !p.Frozen && !p.Inactive && !p.Waitlisted
}

// Eligible reports whether the participant may be rescheduled or newly
// enrolled. Frozen, inactive and waitlisted members are ineligible.
func (p *Participant) Eligible() bool {
	return p != nil && !p.Frozen && !p.Inactive && !p.Waitlisted
}
