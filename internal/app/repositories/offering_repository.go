package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/emre/studioclass/internal/app/models"
	"github.com/emre/studioclass/internal/pkg/apperrors"
	"github.com/emre/studioclass/internal/pkg/dberrors"
)

// OfferingRepository handles database operations for class offerings
type OfferingRepository struct {
	db *pgxpool.Pool
}

// NewOfferingRepository creates a new offering repository
func NewOfferingRepository(db *pgxpool.Pool) *OfferingRepository {
	return &OfferingRepository{
		db: db,
	}
}

// Create creates a new offering
func (r *OfferingRepository) Create(ctx context.Context, offering *models.Offering) error {
	windows, timeRanges, weekdays, err := marshalAvailability(offering)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO offerings (name, color, duration_min, capacity, windows, time_ranges, weekdays)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err = r.db.QueryRow(ctx, query,
		offering.Name, offering.Color, offering.DurationMin, offering.Capacity,
		windows, timeRanges, weekdays,
	).Scan(&offering.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error creating offering: %w", err)
	}

	return nil
}

// GetByID retrieves an offering by ID
func (r *OfferingRepository) GetByID(ctx context.Context, id int64) (*models.Offering, error) {
	query := `
		SELECT id, name, color, duration_min, capacity, windows, time_ranges, weekdays
		FROM offerings
		WHERE id = $1
	`
	offering, err := scanOffering(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving offering: %w", err)
	}
	return offering, nil
}

// GetAll retrieves all offerings
func (r *OfferingRepository) GetAll(ctx context.Context) ([]*models.Offering, error) {
	query := `
		SELECT id, name, color, duration_min, capacity, windows, time_ranges, weekdays
		FROM offerings
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offerings []*models.Offering
	for rows.Next() {
		offering, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		offerings = append(offerings, offering)
	}
	return offerings, rows.Err()
}

// Update updates an existing offering
func (r *OfferingRepository) Update(ctx context.Context, offering *models.Offering) error {
	windows, timeRanges, weekdays, err := marshalAvailability(offering)
	if err != nil {
		return err
	}

	query := `
		UPDATE offerings
		SET name = $1, color = $2, duration_min = $3, capacity = $4,
		    windows = $5, time_ranges = $6, weekdays = $7
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		offering.Name, offering.Color, offering.DurationMin, offering.Capacity,
		windows, timeRanges, weekdays, offering.ID,
	)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrResourceAlreadyExists
		}
		return fmt.Errorf("error updating offering: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOfferingNotFound
	}
	return nil
}

// Delete deletes an offering by ID
func (r *OfferingRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM offerings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting offering: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrOfferingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffering(row rowScanner) (*models.Offering, error) {
	var (
		offering   models.Offering
		windows    []byte
		timeRanges []byte
		weekdays   []byte
	)
	if err := row.Scan(
		&offering.ID,
		&offering.Name,
		&offering.Color,
		&offering.DurationMin,
		&offering.Capacity,
		&windows,
		&timeRanges,
		&weekdays,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(windows, &offering.Windows); err != nil {
		return nil, fmt.Errorf("error decoding offering windows: %w", err)
	}
	if err := json.Unmarshal(timeRanges, &offering.TimeRanges); err != nil {
		return nil, fmt.Errorf("error decoding offering time ranges: %w", err)
	}
	if err := json.Unmarshal(weekdays, &offering.Weekdays); err != nil {
		return nil, fmt.Errorf("error decoding offering weekdays: %w", err)
	}
	return &offering, nil
}

func marshalAvailability(offering *models.Offering) (windows, timeRanges, weekdays []byte, err error) {
	if windows, err = json.Marshal(orEmptyWindows(offering.Windows)); err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding offering windows: %w", err)
	}
	if timeRanges, err = json.Marshal(orEmptyRanges(offering.TimeRanges)); err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding offering time ranges: %w", err)
	}
	if weekdays, err = json.Marshal(orEmptyWeekdays(offering.Weekdays)); err != nil {
		return nil, nil, nil, fmt.Errorf("error encoding offering weekdays: %w", err)
	}
	return windows, timeRanges, weekdays, nil
}

func orEmptyWindows(w []models.AvailabilityWindow) []models.AvailabilityWindow {
	if w == nil {
		return []models.AvailabilityWindow{}
	}
	return w
}

func orEmptyRanges(r []models.TimeRange) []models.TimeRange {
	if r == nil {
		return []models.TimeRange{}
	}
	return r
}

func orEmptyWeekdays(w []models.Weekday) []models.Weekday {
	if w == nil {
		return []models.Weekday{}
	}
	return w
}
