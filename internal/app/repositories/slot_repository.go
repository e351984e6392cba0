package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/dberrors"
)

// SlotRepository handles database operations for weekly schedule slots
// and their enrollments.
type SlotRepository struct {
	db *pgxpool.Pool
}

// NewSlotRepository creates a new slot repository
func NewSlotRepository(db *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{
		db: db,
	}
}

const slotColumns = `id, offering_id, instructor_id, weekday, start_min, end_min, active, legacy_participant_id, created_at`

// Create creates a new schedule slot
func (r *SlotRepository) Create(ctx context.Context, slot *models.ScheduleSlot) error {
	query := `
		INSERT INTO schedule_slots (offering_id, instructor_id, weekday, start_min, end_min, active, legacy_participant_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		slot.OfferingID, slot.InstructorID, slot.Weekday, slot.Start, slot.End,
		slot.Active, slot.LegacyParticipantID,
	).Scan(&slot.ID, &slot.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating schedule slot: %w", err)
	}
	return nil
}

// GetByID retrieves a schedule slot with its roster and offering loaded
func (r *SlotRepository) GetByID(ctx context.Context, id int64) (*models.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE id = $1`

	slot, err := scanSlot(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSlotNotFound
		}
		return nil, fmt.Errorf("error retrieving schedule slot: %w", err)
	}

	if err := r.loadRelations(ctx, []*models.ScheduleSlot{slot}); err != nil {
		return nil, err
	}
	return slot, nil
}

// ListActive retrieves all active slots with relations loaded, ordered
// by weekday and start time. Template insertion order within a time
// block follows creation order.
func (r *SlotRepository) ListActive(ctx context.Context) ([]*models.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE active ORDER BY weekday, start_min, id`
	return r.list(ctx, query)
}

// ListActiveByWeekday retrieves the active slots for one weekday, with
// relations loaded. An optional offering filter narrows the result.
func (r *SlotRepository) ListActiveByWeekday(ctx context.Context, weekday models.Weekday, offeringID *int64) ([]*models.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots WHERE active AND weekday = $1`
	args := []any{weekday}
	if offeringID != nil {
		query += ` AND offering_id = $2`
		args = append(args, *offeringID)
	}
	query += ` ORDER BY start_min, id`
	return r.list(ctx, query, args...)
}

// ListAll retrieves every slot without relations, for administration views
func (r *SlotRepository) ListAll(ctx context.Context) ([]*models.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots ORDER BY weekday, start_min, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*models.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Update updates a schedule slot's time, instructor and active flag
func (r *SlotRepository) Update(ctx context.Context, slot *models.ScheduleSlot) error {
	query := `
		UPDATE schedule_slots
		SET offering_id = $1, instructor_id = $2, weekday = $3, start_min = $4, end_min = $5, active = $6
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		slot.OfferingID, slot.InstructorID, slot.Weekday, slot.Start, slot.End, slot.Active, slot.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating schedule slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSlotNotFound
	}
	return nil
}

// Delete deletes a schedule slot; enrollments cascade away with it
func (r *SlotRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM schedule_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting schedule slot: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSlotNotFound
	}
	return nil
}

// Enroll adds a participant to the end of a slot's roster
func (r *SlotRepository) Enroll(ctx context.Context, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (slot_id, participant_id, waitlisted, note, position)
		VALUES ($1, $2, $3, $4,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM enrollments WHERE slot_id = $1))
		RETURNING id, position, created_at
	`

	err := r.db.QueryRow(ctx, query,
		enrollment.SlotID, enrollment.ParticipantID, enrollment.Waitlisted, enrollment.Note,
	).Scan(&enrollment.ID, &enrollment.Position, &enrollment.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "enrollments_slot_participant_key") {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// GetEnrollmentByID retrieves a single enrollment
func (r *SlotRepository) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := `
		SELECT id, slot_id, participant_id, waitlisted, note, position, created_at
		FROM enrollments
		WHERE id = $1
	`

	var enrollment models.Enrollment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&enrollment.ID,
		&enrollment.SlotID,
		&enrollment.ParticipantID,
		&enrollment.Waitlisted,
		&enrollment.Note,
		&enrollment.Position,
		&enrollment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}
	return &enrollment, nil
}

// Unenroll removes an enrollment from a slot's roster
func (r *SlotRepository) Unenroll(ctx context.Context, enrollmentID int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, enrollmentID)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}
	return nil
}

func scanSlot(row rowScanner) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := row.Scan(
		&slot.ID,
		&slot.OfferingID,
		&slot.InstructorID,
		&slot.Weekday,
		&slot.Start,
		&slot.End,
		&slot.Active,
		&slot.LegacyParticipantID,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *SlotRepository) list(ctx context.Context, query string, args ...any) ([]*models.ScheduleSlot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []*models.ScheduleSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRelations(ctx, slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// loadRelations attaches enrollments (with participants), offerings,
// instructors and legacy participant rows to the given slots.
func (r *SlotRepository) loadRelations(ctx context.Context, slots []*models.ScheduleSlot) error {
	if len(slots) == 0 {
		return nil
	}

	byID := make(map[int64]*models.ScheduleSlot, len(slots))
	slotIDs := make([]int64, 0, len(slots))
	for _, slot := range slots {
		byID[slot.ID] = slot
		slotIDs = append(slotIDs, slot.ID)
	}

	if err := r.loadEnrollments(ctx, byID, slotIDs); err != nil {
		return err
	}
	if err := r.loadOfferings(ctx, slots); err != nil {
		return err
	}
	if err := r.loadInstructors(ctx, slots); err != nil {
		return err
	}
	return r.loadLegacyParticipants(ctx, slots)
}

func (r *SlotRepository) loadEnrollments(ctx context.Context, byID map[int64]*models.ScheduleSlot, slotIDs []int64) error {
	query := `
		SELECT e.id, e.slot_id, e.participant_id, e.waitlisted, e.note, e.position, e.created_at,
		       ` + prefixed("p", participantColumns) + `
		FROM enrollments e
		JOIN participants p ON p.id = e.participant_id
		WHERE e.slot_id = ANY($1)
		ORDER BY e.slot_id, e.position, e.id
	`

	rows, err := r.db.Query(ctx, query, slotIDs)
	if err != nil {
		return fmt.Errorf("error loading enrollments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var enrollment models.Enrollment
		participant, err := scanParticipantAfter(rows,
			&enrollment.ID,
			&enrollment.SlotID,
			&enrollment.ParticipantID,
			&enrollment.Waitlisted,
			&enrollment.Note,
			&enrollment.Position,
			&enrollment.CreatedAt,
		)
		if err != nil {
			return err
		}
		enrollment.Participant = participant
		if slot, ok := byID[enrollment.SlotID]; ok {
			enr := enrollment
			slot.Enrollments = append(slot.Enrollments, &enr)
		}
	}
	return rows.Err()
}

func (r *SlotRepository) loadOfferings(ctx context.Context, slots []*models.ScheduleSlot) error {
	ids := make([]int64, 0, len(slots))
	for _, slot := range slots {
		ids = append(ids, slot.OfferingID)
	}

	query := `
		SELECT id, name, color, duration_min, capacity, windows, time_ranges, weekdays
		FROM offerings
		WHERE id = ANY($1)
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error loading offerings: %w", err)
	}
	defer rows.Close()

	offerings := make(map[int64]*models.Offering)
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return err
		}
		offerings[offering.ID] = offering
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, slot := range slots {
		slot.Offering = offerings[slot.OfferingID]
	}
	return nil
}

func (r *SlotRepository) loadInstructors(ctx context.Context, slots []*models.ScheduleSlot) error {
	var ids []int64
	for _, slot := range slots {
		if slot.InstructorID != nil {
			ids = append(ids, *slot.InstructorID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, full_name FROM instructors WHERE id = ANY($1)`, ids)
	if err != nil {
		return fmt.Errorf("error loading instructors: %w", err)
	}
	defer rows.Close()

	instructors := make(map[int64]*models.Instructor)
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(&instructor.ID, &instructor.Name); err != nil {
			return err
		}
		instructors[instructor.ID] = &instructor
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, slot := range slots {
		if slot.InstructorID != nil {
			slot.Instructor = instructors[*slot.InstructorID]
		}
	}
	return nil
}

func (r *SlotRepository) loadLegacyParticipants(ctx context.Context, slots []*models.ScheduleSlot) error {
	var ids []int64
	for _, slot := range slots {
		if slot.LegacyParticipantID != nil {
			ids = append(ids, *slot.LegacyParticipantID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = ANY($1)`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("error loading legacy participants: %w", err)
	}
	defer rows.Close()

	participants := make(map[int64]*models.Participant)
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return err
		}
		participants[participant.ID] = participant
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, slot := range slots {
		if slot.LegacyParticipantID != nil {
			slot.LegacyParticipant = participants[*slot.LegacyParticipantID]
		}
	}
	return nil
}
