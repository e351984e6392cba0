// Package domain holds the pure scheduling core: occurrence resolution,
// occupancy math, availability checks and the pending-occurrence scan.
// Everything here is deterministic and side-effect free; repositories feed
// already-normalized models in, views come out.
package domain

import (
	"fmt"
	"time"

	"github.com/emre/studioclass/internal/app/models"
)

// RosterKind tags the origin of a roster entry.
type RosterKind string

const (
	RosterRegular  RosterKind = "regular"
	RosterIncoming RosterKind = "incoming"
	RosterTrial    RosterKind = "trial"
	RosterCredit   RosterKind = "credit"
)

// RosterEntry is one effective attendee of an occurrence. Exactly one of
// the origin pointers matching Kind is set.
type RosterEntry struct {
	Kind RosterKind `json:"kind"`

	// Key identifies the entry for attendance marks and draft storage.
	// It is stable across re-resolution of the same occurrence.
	Key string `json:"key"`

	// ParticipantID is 0 for trial entries (prospects have no member id).
	ParticipantID int64 `json:"participantId,omitempty"`

	Enrollment *models.Enrollment          `json:"enrollment,omitempty"`
	Exception  *models.RescheduleException `json:"exception,omitempty"`
	Trial      *models.TrialBooking        `json:"trial,omitempty"`
	Credit     *models.CreditUsage         `json:"credit,omitempty"`

	Participant *models.Participant `json:"participant,omitempty"`

	// Outgoing entries stay on the roster for display but are excluded
	// from occupancy: an approved exception moved them elsewhere.
	Outgoing          bool                        `json:"outgoing,omitempty"`
	OutgoingException *models.RescheduleException `json:"outgoingException,omitempty"`
}

// CountsTowardOccupancy reports whether the entry takes up a spot.
func (e *RosterEntry) CountsTowardOccupancy() bool {
	if e.Outgoing {
		return false
	}
	if e.Kind == RosterTrial {
		return true
	}
	return e.Participant.CountsTowardOccupancy()
}

// Occurrence is the concrete realization of a schedule slot on one
// calendar date. It is derived, never persisted.
type Occurrence struct {
	Slot   *models.ScheduleSlot `json:"slot"`
	Date   time.Time            `json:"date"`
	Roster []RosterEntry        `json:"roster"`
}

// Overlays bundles the date-specific inputs the resolver merges over the
// weekly template.
type Overlays struct {
	// Exceptions is the whole approved/pending ledger relevant to the
	// date, both origin and destination side. The resolver only reads
	// approved entries; callers may pass more.
	Exceptions []*models.RescheduleException
	Trials     []*models.TrialBooking
	Credits    []*models.CreditUsage
}

// ResolveDay merges the weekly template with the date's overlays and
// returns one occurrence per active slot whose weekday matches the date,
// preserving the order of slots as given.
func ResolveDay(date time.Time, slots []*models.ScheduleSlot, ov Overlays) []*Occurrence {
	var out []*Occurrence
	for _, slot := range slots {
		if !slot.Active || !slot.Weekday.Matches(date) {
			continue
		}
		out = append(out, ResolveOccurrence(slot, date, ov))
	}
	return out
}

// ResolveOccurrence builds the effective roster for a single slot on a
// single date:
//
//  1. non-waitlisted enrollments seed the roster in template order;
//  2. entries with an approved outgoing exception are flagged outgoing;
//  3. approved exceptions targeting this (slot, date) append as incoming,
//     regardless of the origin slot's weekday;
//  4. scheduled/approved trials for the occurrence append;
//  5. credit usages for the occurrence append.
//
// Exceptions whose destination slot no longer exists simply never match
// any slot here; resolution does not fail on dangling references.
func ResolveOccurrence(slot *models.ScheduleSlot, date time.Time, ov Overlays) *Occurrence {
	occ := &Occurrence{Slot: slot, Date: date}

	for _, enr := range slot.NormalizedRoster() {
		if enr.Waitlisted {
			continue
		}
		entry := RosterEntry{
			Kind:          RosterRegular,
			Key:           enrollmentKey(enr),
			ParticipantID: enr.ParticipantID,
			Enrollment:    enr,
			Participant:   enr.Participant,
		}
		if exc := outgoingFor(ov.Exceptions, enr.ParticipantID, slot.ID, date); exc != nil {
			entry.Outgoing = true
			entry.OutgoingException = exc
		}
		occ.Roster = append(occ.Roster, entry)
	}

	for _, exc := range ov.Exceptions {
		if !exc.MovesIn(slot.ID, date) {
			continue
		}
		occ.Roster = append(occ.Roster, RosterEntry{
			Kind:          RosterIncoming,
			Key:           fmt.Sprintf("exception:%d", exc.ID),
			ParticipantID: exc.ParticipantID,
			Exception:     exc,
			Participant:   exc.Participant,
		})
	}

	for _, trial := range ov.Trials {
		if trial.SlotID != slot.ID || !sameDate(trial.Date, date) || !trial.Status.OnRoster() {
			continue
		}
		occ.Roster = append(occ.Roster, RosterEntry{
			Kind:  RosterTrial,
			Key:   fmt.Sprintf("trial:%d", trial.ID),
			Trial: trial,
		})
	}

	for _, credit := range ov.Credits {
		if credit.SlotID != slot.ID || !sameDate(credit.Date, date) {
			continue
		}
		occ.Roster = append(occ.Roster, RosterEntry{
			Kind:          RosterCredit,
			Key:           fmt.Sprintf("credit:%d", credit.ID),
			ParticipantID: credit.ParticipantID,
			Credit:        credit,
			Participant:   credit.Participant,
		})
	}

	return occ
}

func outgoingFor(exceptions []*models.RescheduleException, participantID, slotID int64, date time.Time) *models.RescheduleException {
	for _, exc := range exceptions {
		if exc.ParticipantID == participantID && exc.MovesOut(slotID, date) {
			return exc
		}
	}
	return nil
}

func enrollmentKey(enr *models.Enrollment) string {
	if enr.Legacy {
		// Synthesized from the slot's old single-member column; no
		// enrollment row exists to key on.
		return fmt.Sprintf("participant:%d", enr.ParticipantID)
	}
	return fmt.Sprintf("enrollment:%d", enr.ID)
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
