package domain

import "github.com/emre/studioclass/internal/app/models"

// OccupancyState is the display state derived from vacancy.
type OccupancyState string

const (
	StateAvailable OccupancyState = "available"
	StateFull      OccupancyState = "full"
)

// Occupancy summarizes how full an occurrence is.
type Occupancy struct {
	Capacity int            `json:"capacity"`
	Occupied int            `json:"occupied"`
	Vacancy  int            `json:"vacancy"`
	State    OccupancyState `json:"state"`
}

// ComputeOccupancy counts the roster entries that take up a spot and
// derives vacancy against the given capacity. Vacancy never goes
// negative, even when legacy data overbooks a slot.
func ComputeOccupancy(occ *Occurrence, capacity int) Occupancy {
	occupied := 0
	for i := range occ.Roster {
		if occ.Roster[i].CountsTowardOccupancy() {
			occupied++
		}
	}
	vacancy := capacity - occupied
	if vacancy < 0 {
		vacancy = 0
	}
	state := StateAvailable
	if vacancy == 0 {
		state = StateFull
	}
	return Occupancy{Capacity: capacity, Occupied: occupied, Vacancy: vacancy, State: state}
}

// TimeBlockKey groups occurrences that share a time block and instructor
// for day-level vacancy summaries.
type TimeBlockKey struct {
	Start        models.Clock `json:"start"`
	End          models.Clock `json:"end"`
	InstructorID int64        `json:"instructorId"`
}

// BlockVacancy is the aggregated occupancy of one time block.
type BlockVacancy struct {
	Key         TimeBlockKey `json:"key"`
	Occurrences int          `json:"occurrences"`
	Occupancy   Occupancy    `json:"occupancy"`
}

// AggregateVacancy sums capacity and occupancy across occurrences sharing
// (start, end, instructor). Block order follows first appearance. Each
// occurrence's capacity comes from its slot's offering; slots without a
// loaded offering fall back to the default capacity.
func AggregateVacancy(occurrences []*Occurrence) []BlockVacancy {
	index := make(map[TimeBlockKey]int)
	var blocks []BlockVacancy

	for _, occ := range occurrences {
		key := TimeBlockKey{Start: occ.Slot.Start, End: occ.Slot.End}
		if occ.Slot.InstructorID != nil {
			key.InstructorID = *occ.Slot.InstructorID
		}
		o := ComputeOccupancy(occ, occ.Slot.Offering.EffectiveCapacity())

		i, ok := index[key]
		if !ok {
			index[key] = len(blocks)
			blocks = append(blocks, BlockVacancy{Key: key})
			i = len(blocks) - 1
		}
		blocks[i].Occurrences++
		blocks[i].Occupancy.Capacity += o.Capacity
		blocks[i].Occupancy.Occupied += o.Occupied
		blocks[i].Occupancy.Vacancy += o.Vacancy
	}

	for i := range blocks {
		if blocks[i].Occupancy.Vacancy == 0 {
			blocks[i].Occupancy.State = StateFull
		} else {
			blocks[i].Occupancy.State = StateAvailable
		}
	}
	return blocks
}
