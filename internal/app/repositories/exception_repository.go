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

// ExceptionRepository handles database operations for reschedule exceptions
type ExceptionRepository struct {
	db *pgxpool.Pool
}

// NewExceptionRepository creates a new exception repository
func NewExceptionRepository(db *pgxpool.Pool) *ExceptionRepository {
	return &ExceptionRepository{
		db: db,
	}
}

const exceptionColumns = `id, origin_slot_id, origin_date, dest_slot_id, dest_date, dest_start_min, dest_end_min, enrollment_id, participant_id, reason, status, credit_replacement, created_at, decided_at`

// Create creates a new reschedule exception. A participant may hold at
// most one open exception per origin occurrence.
func (r *ExceptionRepository) Create(ctx context.Context, exc *models.RescheduleException) error {
	query := `
		INSERT INTO reschedule_exceptions
			(origin_slot_id, origin_date, dest_slot_id, dest_date, dest_start_min, dest_end_min,
			 enrollment_id, participant_id, reason, status, credit_replacement)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		exc.OriginSlotID, exc.OriginDate, exc.DestSlotID, exc.DestDate, exc.DestStart, exc.DestEnd,
		exc.EnrollmentID, exc.ParticipantID, exc.Reason, exc.Status, exc.CreditReplacement,
	).Scan(&exc.ID, &exc.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "reschedule_exceptions_open_origin_key") {
			return apperrors.ErrDuplicateException
		}
		return fmt.Errorf("error creating reschedule exception: %w", err)
	}
	return nil
}

// GetByID retrieves a reschedule exception with its participant loaded
func (r *ExceptionRepository) GetByID(ctx context.Context, id int64) (*models.RescheduleException, error) {
	query := `
		SELECT ` + prefixed("x", exceptionColumns) + `,
		       ` + prefixed("p", participantColumns) + `
		FROM reschedule_exceptions x
		JOIN participants p ON p.id = x.participant_id
		WHERE x.id = $1
	`

	exc, err := scanExceptionWithParticipant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExceptionNotFound
		}
		return nil, fmt.Errorf("error retrieving reschedule exception: %w", err)
	}
	return exc, nil
}

// List retrieves exceptions, optionally filtered by status, newest first
func (r *ExceptionRepository) List(ctx context.Context, status *models.ExceptionStatus) ([]*models.RescheduleException, error) {
	query := `
		SELECT ` + prefixed("x", exceptionColumns) + `,
		       ` + prefixed("p", participantColumns) + `
		FROM reschedule_exceptions x
		JOIN participants p ON p.id = x.participant_id
	`
	var args []any
	if status != nil {
		query += ` WHERE x.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY x.created_at DESC, x.id DESC`

	return r.listWithParticipants(ctx, query, args...)
}

// ListApprovedForDate retrieves the approved exceptions whose origin or
// destination falls on the given date. The resolver needs both sides to
// build an occurrence roster.
func (r *ExceptionRepository) ListApprovedForDate(ctx context.Context, date string) ([]*models.RescheduleException, error) {
	query := `
		SELECT ` + prefixed("x", exceptionColumns) + `,
		       ` + prefixed("p", participantColumns) + `
		FROM reschedule_exceptions x
		JOIN participants p ON p.id = x.participant_id
		WHERE x.status = 'approved' AND (x.origin_date = $1 OR x.dest_date = $1)
		ORDER BY x.id
	`
	return r.listWithParticipants(ctx, query, date)
}

// ExistsActive reports whether a non-rejected exception already exists
// for a participant's origin occurrence.
func (r *ExceptionRepository) ExistsActive(ctx context.Context, participantID, originSlotID int64, originDate string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM reschedule_exceptions
			WHERE participant_id = $1 AND origin_slot_id = $2 AND origin_date = $3 AND status <> 'rejected'
		)
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, participantID, originSlotID, originDate).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking reschedule exception: %w", err)
	}
	return exists, nil
}

// UpdateStatus moves an exception into a decided state and stamps the
// decision time.
func (r *ExceptionRepository) UpdateStatus(ctx context.Context, id int64, status models.ExceptionStatus) error {
	query := `
		UPDATE reschedule_exceptions
		SET status = $1, decided_at = CURRENT_TIMESTAMP
		WHERE id = $2
	`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("error updating reschedule exception: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExceptionNotFound
	}
	return nil
}

// Delete removes an exception outright. Cancellation deletes; rejection
// keeps the row for auditing.
func (r *ExceptionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM reschedule_exceptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reschedule exception: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExceptionNotFound
	}
	return nil
}

func (r *ExceptionRepository) listWithParticipants(ctx context.Context, query string, args ...any) ([]*models.RescheduleException, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exceptions []*models.RescheduleException
	for rows.Next() {
		exc, err := scanExceptionWithParticipant(rows)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, exc)
	}
	return exceptions, rows.Err()
}

func scanExceptionWithParticipant(row rowScanner) (*models.RescheduleException, error) {
	var exc models.RescheduleException
	participant, err := scanParticipantAfter(row,
		&exc.ID,
		&exc.OriginSlotID,
		&exc.OriginDate,
		&exc.DestSlotID,
		&exc.DestDate,
		&exc.DestStart,
		&exc.DestEnd,
		&exc.EnrollmentID,
		&exc.ParticipantID,
		&exc.Reason,
		&exc.Status,
		&exc.CreditReplacement,
		&exc.CreatedAt,
		&exc.DecidedAt,
	)
	if err != nil {
		return nil, err
	}
	exc.Participant = participant
	return &exc, nil
}
