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

// InstructorRepository handles database operations for instructors
type InstructorRepository struct {
	db *pgxpool.Pool
}

// NewInstructorRepository creates a new instructor repository
func NewInstructorRepository(db *pgxpool.Pool) *InstructorRepository {
	return &InstructorRepository{
		db: db,
	}
}

// Create creates a new instructor
func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO instructors (full_name) VALUES ($1) RETURNING id`,
		instructor.Name,
	).Scan(&instructor.ID)
	if err != nil {
		return fmt.Errorf("error creating instructor: %w", err)
	}
	return nil
}

// GetByID retrieves an instructor by ID
func (r *InstructorRepository) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	var instructor models.Instructor
	err := r.db.QueryRow(ctx,
		`SELECT id, full_name FROM instructors WHERE id = $1`, id,
	).Scan(&instructor.ID, &instructor.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstructorNotFound
		}
		return nil, fmt.Errorf("error retrieving instructor: %w", err)
	}
	return &instructor, nil
}

// GetAll retrieves all instructors
func (r *InstructorRepository) GetAll(ctx context.Context) ([]*models.Instructor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, full_name FROM instructors ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instructors []*models.Instructor
	for rows.Next() {
		var instructor models.Instructor
		if err := rows.Scan(&instructor.ID, &instructor.Name); err != nil {
			return nil, err
		}
		instructors = append(instructors, &instructor)
	}
	return instructors, rows.Err()
}
