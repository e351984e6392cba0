package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emre/studioclass/internal/app/models"
)

func TestComputeOccupancy(t *testing.T) {
	t.Run("counts active entries only", func(t *testing.T) {
		slot := testSlot(1, models.Monday)
		enroll(slot, 10, testParticipant(100, "Ada"))
		frozen := testParticipant(101, "Banu")
		frozen.Frozen = true
		enroll(slot, 11, frozen)

		occ := ResolveOccurrence(slot, monday, Overlays{})
		o := ComputeOccupancy(occ, 5)

		assert.Equal(t, 1, o.Occupied)
		assert.Equal(t, 4, o.Vacancy)
		assert.Equal(t, StateAvailable, o.State)
	})

	t.Run("outgoing entries free their spot", func(t *testing.T) {
		slot := testSlot(1, models.Monday)
		enroll(slot, 10, testParticipant(100, "Ada"))
		exc := &models.RescheduleException{
			ID: 5, OriginSlotID: 1, OriginDate: monday,
			ParticipantID: 100, DestDate: monday.AddDate(0, 0, 2),
			Status: models.ExceptionApproved,
		}

		occ := ResolveOccurrence(slot, monday, Overlays{Exceptions: []*models.RescheduleException{exc}})
		o := ComputeOccupancy(occ, 5)

		assert.Equal(t, 0, o.Occupied)
		assert.Equal(t, 5, o.Vacancy)
	})

	t.Run("dangling participant reference still counts", func(t *testing.T) {
		slot := testSlot(1, models.Monday)
		slot.Enrollments = []*models.Enrollment{{ID: 10, SlotID: 1, ParticipantID: 999}}

		occ := ResolveOccurrence(slot, monday, Overlays{})
		o := ComputeOccupancy(occ, 5)

		assert.Equal(t, 1, o.Occupied)
	})

	t.Run("vacancy clamps at zero on overbooked slots", func(t *testing.T) {
		slot := testSlot(1, models.Monday)
		for i := int64(0); i < 4; i++ {
			enroll(slot, 10+i, testParticipant(100+i, "P"))
		}

		occ := ResolveOccurrence(slot, monday, Overlays{})
		o := ComputeOccupancy(occ, 2)

		assert.Equal(t, 4, o.Occupied)
		assert.Equal(t, 0, o.Vacancy)
		assert.Equal(t, StateFull, o.State)
	})
}

func TestAggregateVacancy(t *testing.T) {
	instructorA := int64(1)
	instructorB := int64(2)
	offering := &models.Offering{ID: 1, Name: "Reformer", Capacity: 4}

	mkSlot := func(id int64, instructor *int64) *models.ScheduleSlot {
		s := testSlot(id, models.Monday)
		s.InstructorID = instructor
		s.Offering = offering
		return s
	}

	s1 := mkSlot(1, &instructorA)
	enroll(s1, 10, testParticipant(100, "Ada"))
	s2 := mkSlot(2, &instructorA)
	enroll(s2, 11, testParticipant(101, "Banu"))
	enroll(s2, 12, testParticipant(102, "Ceren"))
	s3 := mkSlot(3, &instructorB)

	occurrences := ResolveDay(monday, []*models.ScheduleSlot{s1, s2, s3}, Overlays{})
	blocks := AggregateVacancy(occurrences)

	require.Len(t, blocks, 2)

	// Same time, same instructor: one aggregated block
	assert.Equal(t, instructorA, blocks[0].Key.InstructorID)
	assert.Equal(t, 2, blocks[0].Occurrences)
	assert.Equal(t, 8, blocks[0].Occupancy.Capacity)
	assert.Equal(t, 3, blocks[0].Occupancy.Occupied)
	assert.Equal(t, 5, blocks[0].Occupancy.Vacancy)
	assert.Equal(t, StateAvailable, blocks[0].Occupancy.State)

	assert.Equal(t, instructorB, blocks[1].Key.InstructorID)
	assert.Equal(t, 1, blocks[1].Occurrences)
	assert.Equal(t, 4, blocks[1].Occupancy.Capacity)
}

func TestAggregateVacancy_DefaultCapacityWithoutOffering(t *testing.T) {
	slot := testSlot(1, models.Monday)

	blocks := AggregateVacancy(ResolveDay(monday, []*models.ScheduleSlot{slot}, Overlays{}))

	require.Len(t, blocks, 1)
	assert.Equal(t, models.DefaultCapacity, blocks[0].Occupancy.Capacity)
}
