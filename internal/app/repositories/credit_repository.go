package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// CreditRepository handles database operations for credit drop-ins
type CreditRepository struct {
	db *pgxpool.Pool
}

// NewCreditRepository creates a new credit repository
func NewCreditRepository(db *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{
		db: db,
	}
}

const creditColumns = `id, participant_id, slot_id, usage_date, note, outcome, created_at`

// Create creates a new credit usage
func (r *CreditRepository) Create(ctx context.Context, credit *models.CreditUsage) error {
	query := `
		INSERT INTO credit_usages (participant_id, slot_id, usage_date, note, outcome)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		credit.ParticipantID, credit.SlotID, credit.Date, credit.Note, credit.Outcome,
	).Scan(&credit.ID, &credit.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating credit usage: %w", err)
	}
	return nil
}

// GetByID retrieves a credit usage by ID
func (r *CreditRepository) GetByID(ctx context.Context, id int64) (*models.CreditUsage, error) {
	query := `SELECT ` + creditColumns + ` FROM credit_usages WHERE id = $1`

	credit, err := scanCredit(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCreditNotFound
		}
		return nil, fmt.Errorf("error retrieving credit usage: %w", err)
	}
	return credit, nil
}

// ListForDate retrieves the credit usages on a given date, with the
// participant loaded for roster display.
func (r *CreditRepository) ListForDate(ctx context.Context, date string) ([]*models.CreditUsage, error) {
	query := `
		SELECT ` + prefixed("c", creditColumns) + `,
		       ` + prefixed("p", participantColumns) + `
		FROM credit_usages c
		JOIN participants p ON p.id = c.participant_id
		WHERE c.usage_date = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credits []*models.CreditUsage
	for rows.Next() {
		var credit models.CreditUsage
		participant, err := scanParticipantAfter(rows,
			&credit.ID,
			&credit.ParticipantID,
			&credit.SlotID,
			&credit.Date,
			&credit.Note,
			&credit.Outcome,
			&credit.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		credit.Participant = participant
		c := credit
		credits = append(credits, &c)
	}
	return credits, rows.Err()
}

// RecordOutcome stores the drop-in's attendance outcome
func (r *CreditRepository) RecordOutcome(ctx context.Context, id int64, outcome models.AttendanceOutcome) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE credit_usages SET outcome = $1 WHERE id = $2`, outcome, id)
	if err != nil {
		return fmt.Errorf("error recording credit outcome: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCreditNotFound
	}
	return nil
}

// Delete removes a credit usage
func (r *CreditRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM credit_usages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting credit usage: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCreditNotFound
	}
	return nil
}

func scanCredit(row rowScanner) (*models.CreditUsage, error) {
	var credit models.CreditUsage
	err := row.Scan(
		&credit.ID,
		&credit.ParticipantID,
		&credit.SlotID,
		&credit.Date,
		&credit.Note,
		&credit.Outcome,
		&credit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &credit, nil
}
