package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// ParticipantRepository handles database operations for studio members
type ParticipantRepository struct {
	db *pgxpool.Pool
}

// NewParticipantRepository creates a new participant repository
func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{
		db: db,
	}
}

const participantColumns = `id, full_name, phone, email, frozen, inactive, waitlisted, training_period, partnership, tags, created_at`

// Create creates a new participant
func (r *ParticipantRepository) Create(ctx context.Context, participant *models.Participant) error {
	tags, err := json.Marshal(orEmptyTags(participant.Tags))
	if err != nil {
		return fmt.Errorf("error encoding participant tags: %w", err)
	}

	query := `
		INSERT INTO participants (full_name, phone, email, frozen, inactive, waitlisted, training_period, partnership, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err = r.db.QueryRow(ctx, query,
		participant.Name, participant.Phone, participant.Email,
		participant.Frozen, participant.Inactive, participant.Waitlisted,
		participant.TrainingPeriod, participant.Partnership, tags,
	).Scan(&participant.ID, &participant.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating participant: %w", err)
	}
	return nil
}

// GetByID retrieves a participant by ID
func (r *ParticipantRepository) GetByID(ctx context.Context, id int64) (*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants WHERE id = $1`

	participant, err := scanParticipant(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("error retrieving participant: %w", err)
	}
	return participant, nil
}

// GetAll retrieves all participants
func (r *ParticipantRepository) GetAll(ctx context.Context) ([]*models.Participant, error) {
	query := `SELECT ` + participantColumns + ` FROM participants ORDER BY full_name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participants []*models.Participant
	for rows.Next() {
		participant, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}

// Update updates an existing participant
func (r *ParticipantRepository) Update(ctx context.Context, participant *models.Participant) error {
	tags, err := json.Marshal(orEmptyTags(participant.Tags))
	if err != nil {
		return fmt.Errorf("error encoding participant tags: %w", err)
	}

	query := `
		UPDATE participants
		SET full_name = $1, phone = $2, email = $3, frozen = $4, inactive = $5,
		    waitlisted = $6, training_period = $7, partnership = $8, tags = $9
		WHERE id = $10
	`

	cmdTag, err := r.db.Exec(ctx, query,
		participant.Name, participant.Phone, participant.Email,
		participant.Frozen, participant.Inactive, participant.Waitlisted,
		participant.TrainingPeriod, participant.Partnership, tags,
		participant.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating participant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

// Delete permanently deletes a participant. Enrollments, exceptions and
// credit usages cascade away with the row.
func (r *ParticipantRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM participants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting participant: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParticipantNotFound
	}
	return nil
}

func scanParticipant(row rowScanner) (*models.Participant, error) {
	return scanParticipantAfter(row)
}

// scanParticipantAfter scans any leading destinations followed by the
// participant columns, for queries that join participants onto another row.
func scanParticipantAfter(row rowScanner, leading ...any) (*models.Participant, error) {
	var (
		participant models.Participant
		tags        []byte
	)
	dest := append(leading,
		&participant.ID,
		&participant.Name,
		&participant.Phone,
		&participant.Email,
		&participant.Frozen,
		&participant.Inactive,
		&participant.Waitlisted,
		&participant.TrainingPeriod,
		&participant.Partnership,
		&tags,
		&participant.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &participant.Tags); err != nil {
		return nil, fmt.Errorf("error decoding participant tags: %w", err)
	}
	return &participant, nil
}

func orEmptyTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// prefixed qualifies a comma separated column list with a table alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}
