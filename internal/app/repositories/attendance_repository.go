package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/dberrors"
)

// AttendanceRepository handles database operations for submitted
// attendance records.
type AttendanceRepository struct {
	db *pgxpool.Pool
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
	}
}

// CreateRecord inserts a record together with its entries in one
// transaction. The occurrence unique constraint enforces submit-once.
func (r *AttendanceRepository) CreateRecord(ctx context.Context, record *models.AttendanceRecord) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error starting attendance transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO attendance_records (slot_id, class_date, present_count, absent_count, submitted_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`
	err = tx.QueryRow(ctx, query,
		record.SlotID, record.Date, record.PresentCount, record.AbsentCount, record.SubmittedBy,
	).Scan(&record.ID, &record.SubmittedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "attendance_records_occurrence_key") {
			return apperrors.ErrAlreadySubmitted
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	for i := range record.Entries {
		entry := &record.Entries[i]
		entry.RecordID = record.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO attendance_entries (record_id, subject_key, participant_id, outcome)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			entry.RecordID, entry.SubjectKey, entry.ParticipantID, entry.Outcome,
		).Scan(&entry.ID)
		if err != nil {
			return fmt.Errorf("error creating attendance entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error committing attendance record: %w", err)
	}
	return nil
}

// GetRecord retrieves the submitted record for one occurrence, with
// entries loaded.
func (r *AttendanceRepository) GetRecord(ctx context.Context, slotID int64, date time.Time) (*models.AttendanceRecord, error) {
	query := `
		SELECT id, slot_id, class_date, present_count, absent_count, submitted_at, submitted_by
		FROM attendance_records
		WHERE slot_id = $1 AND class_date = $2
	`

	var record models.AttendanceRecord
	err := r.db.QueryRow(ctx, query, slotID, date).Scan(
		&record.ID,
		&record.SlotID,
		&record.Date,
		&record.PresentCount,
		&record.AbsentCount,
		&record.SubmittedAt,
		&record.SubmittedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotSubmitted
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, record_id, subject_key, participant_id, outcome
		 FROM attendance_entries WHERE record_id = $1 ORDER BY id`, record.ID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving attendance entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry models.AttendanceEntry
		if err := rows.Scan(&entry.ID, &entry.RecordID, &entry.SubjectKey, &entry.ParticipantID, &entry.Outcome); err != nil {
			return nil, err
		}
		record.Entries = append(record.Entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteRecord removes a submitted record; entries cascade away. Used by
// the reopen flow to return the occurrence to the unsubmitted state.
func (r *AttendanceRepository) DeleteRecord(ctx context.Context, slotID int64, date time.Time) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM attendance_records WHERE slot_id = $1 AND class_date = $2`, slotID, date)
	if err != nil {
		return fmt.Errorf("error deleting attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotSubmitted
	}
	return nil
}

// ListSubmittedKeys returns the submission keys of every record whose
// date falls inside [from, to], for pending-occurrence audits.
func (r *AttendanceRepository) ListSubmittedKeys(ctx context.Context, from, to time.Time) (map[string]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT slot_id, class_date FROM attendance_records WHERE class_date BETWEEN $1 AND $2`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance records: %w", err)
	}
	defer rows.Close()

	submitted := make(map[string]bool)
	for rows.Next() {
		var (
			slotID int64
			date   time.Time
		)
		if err := rows.Scan(&slotID, &date); err != nil {
			return nil, err
		}
		submitted[models.SubmissionKey(slotID, date)] = true
	}
	return submitted, rows.Err()
}
