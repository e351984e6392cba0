package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
)

// DraftRepository persists unsaved attendance marks so a half-finished
// sheet survives page reloads. Submitting or reopening clears the
// occurrence's drafts.
type DraftRepository struct {
	db *pgxpool.Pool
}

// NewDraftRepository creates a new draft repository
func NewDraftRepository(db *pgxpool.Pool) *DraftRepository {
	return &DraftRepository{
		db: db,
	}
}

// Upsert writes a draft mark, replacing any earlier mark for the same
// subject on the same occurrence.
func (r *DraftRepository) Upsert(ctx context.Context, mark *models.DraftMark) error {
	query := `
		INSERT INTO attendance_drafts (slot_id, class_date, subject_key, outcome, updated_at)
		VALUES ($1, $2, $3, $4, CURRENT_TIMESTAMP)
		ON CONFLICT ON CONSTRAINT attendance_drafts_mark_key
		DO UPDATE SET outcome = EXCLUDED.outcome, updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`
	err := r.db.QueryRow(ctx, query,
		mark.SlotID, mark.Date, mark.SubjectKey, mark.Outcome,
	).Scan(&mark.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error saving draft mark: %w", err)
	}
	return nil
}

// ListForOccurrence retrieves the draft marks of one slot occurrence
func (r *DraftRepository) ListForOccurrence(ctx context.Context, slotID int64, date time.Time) ([]models.DraftMark, error) {
	query := `
		SELECT subject_key, slot_id, class_date, outcome, updated_at
		FROM attendance_drafts
		WHERE slot_id = $1 AND class_date = $2
		ORDER BY subject_key
	`
	rows, err := r.db.Query(ctx, query, slotID, date)
	if err != nil {
		return nil, fmt.Errorf("error listing draft marks: %w", err)
	}
	defer rows.Close()

	var marks []models.DraftMark
	for rows.Next() {
		var mark models.DraftMark
		if err := rows.Scan(&mark.SubjectKey, &mark.SlotID, &mark.Date, &mark.Outcome, &mark.UpdatedAt); err != nil {
			return nil, err
		}
		marks = append(marks, mark)
	}
	return marks, rows.Err()
}

// Clear deletes every draft mark of one slot occurrence
func (r *DraftRepository) Clear(ctx context.Context, slotID int64, date time.Time) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM attendance_drafts WHERE slot_id = $1 AND class_date = $2`, slotID, date)
	if err != nil {
		return fmt.Errorf("error clearing draft marks: %w", err)
	}
	return nil
}
