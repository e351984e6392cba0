package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// TrialRepository handles database operations for trial bookings
type TrialRepository struct {
	db *pgxpool.Pool
}

// NewTrialRepository creates a new trial repository
func NewTrialRepository(db *pgxpool.Pool) *TrialRepository {
	return &TrialRepository{
		db: db,
	}
}

const trialColumns = `id, code, slot_id, class_date, prospect_name, prospect_phone, status, outcome, created_at`

// Create creates a new trial booking with a fresh public code
func (r *TrialRepository) Create(ctx context.Context, trial *models.TrialBooking) error {
	trial.Code = uuid.New()

	query := `
		INSERT INTO trial_bookings (code, slot_id, class_date, prospect_name, prospect_phone, status, outcome)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		trial.Code, trial.SlotID, trial.Date, trial.ProspectName, trial.ProspectPhone,
		trial.Status, trial.Outcome,
	).Scan(&trial.ID, &trial.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating trial booking: %w", err)
	}
	return nil
}

// GetByID retrieves a trial booking by ID
func (r *TrialRepository) GetByID(ctx context.Context, id int64) (*models.TrialBooking, error) {
	query := `SELECT ` + trialColumns + ` FROM trial_bookings WHERE id = $1`
	return r.get(ctx, query, id)
}

// GetByCode retrieves a trial booking by its public code
func (r *TrialRepository) GetByCode(ctx context.Context, code uuid.UUID) (*models.TrialBooking, error) {
	query := `SELECT ` + trialColumns + ` FROM trial_bookings WHERE code = $1`
	return r.get(ctx, query, code)
}

// ListForDate retrieves the trial bookings on a given date
func (r *TrialRepository) ListForDate(ctx context.Context, date string) ([]*models.TrialBooking, error) {
	query := `SELECT ` + trialColumns + ` FROM trial_bookings WHERE class_date = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trials []*models.TrialBooking
	for rows.Next() {
		trial, err := scanTrial(rows)
		if err != nil {
			return nil, err
		}
		trials = append(trials, trial)
	}
	return trials, rows.Err()
}

// UpdateStatus changes a trial's lifecycle state
func (r *TrialRepository) UpdateStatus(ctx context.Context, id int64, status models.TrialStatus) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE trial_bookings SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating trial booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrialNotFound
	}
	return nil
}

// RecordOutcome stores the trial's attendance outcome and, on a present
// mark, completes the booking.
func (r *TrialRepository) RecordOutcome(ctx context.Context, id int64, outcome models.AttendanceOutcome) error {
	query := `
		UPDATE trial_bookings
		SET outcome = $1,
		    status = CASE WHEN $1 = 'present' THEN 'completed' ELSE status END
		WHERE id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, outcome, id)
	if err != nil {
		return fmt.Errorf("error recording trial outcome: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrialNotFound
	}
	return nil
}

// Delete removes a trial booking
func (r *TrialRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM trial_bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting trial booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTrialNotFound
	}
	return nil
}

func (r *TrialRepository) get(ctx context.Context, query string, arg any) (*models.TrialBooking, error) {
	trial, err := scanTrial(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTrialNotFound
		}
		return nil, fmt.Errorf("error retrieving trial booking: %w", err)
	}
	return trial, nil
}

func scanTrial(row rowScanner) (*models.TrialBooking, error) {
	var trial models.TrialBooking
	err := row.Scan(
		&trial.ID,
		&trial.Code,
		&trial.SlotID,
		&trial.Date,
		&trial.ProspectName,
		&trial.ProspectPhone,
		&trial.Status,
		&trial.Outcome,
		&trial.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &trial, nil
}
