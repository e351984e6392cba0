package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	appModels "github.com/emre/studioclass/internal/app/models"
	appRepos "github.com/emre/studioclass/internal/app/repositories"
	"github.com/emre/studioclass/internal/pkg/apperrors"
)

// CreateDefaultData seeds the studio with a manager account, a couple of
// instructors and the standard offerings when the database is empty.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	offeringRepo := appRepos.NewOfferingRepository(dbPool)
	instructorRepo := appRepos.NewInstructorRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error // Collect errors without stopping the process

	// --- Default manager account --- //
	_, err := userRepo.GetByEmail(ctx, "manager@studio.example")
	switch {
	case err == nil:
		lgr.Info().Msg("Manager account already exists, skipping creation")
	case errors.Is(err, apperrors.ErrUserNotFound):
		lgr.Info().Msg("Creating default manager account...")

		hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte("Manager123!"), bcrypt.DefaultCost)
		if hashErr != nil {
			lgr.Error().Err(hashErr).Msg("Error hashing manager password")
			finalErr = errors.Join(finalErr, hashErr)
			break
		}

		manager := &appModels.User{
			Email:     "manager@studio.example",
			Password:  string(hashedPassword),
			FullName:  "Studio Manager",
			RoleType:  appModels.RoleManager,
			IsActive:  true,
			CreatedAt: time.Now(),
		}
		if createErr := userRepo.Create(ctx, manager); createErr != nil {
			lgr.Error().Err(createErr).Msg("Error creating manager account")
			finalErr = errors.Join(finalErr, createErr)
		} else {
			lgr.Info().Int64("managerID", manager.ID).Msg("Default manager account created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking for manager account")
		finalErr = errors.Join(finalErr, err)
	}

	// --- Sample instructors --- //
	existingInstructors, err := instructorRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing instructors")
		finalErr = errors.Join(finalErr, err)
	} else if len(existingInstructors) == 0 {
		for _, name := range []string{"Ayse Karaca", "Mert Demirel"} {
			instructor := &appModels.Instructor{Name: name}
			if createErr := instructorRepo.Create(ctx, instructor); createErr != nil {
				lgr.Error().Err(createErr).Str("name", name).Msg("Error creating instructor")
				finalErr = errors.Join(finalErr, createErr)
			}
		}
	}

	// --- Sample offerings --- //
	existingOfferings, err := offeringRepo.GetAll(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error listing offerings")
		finalErr = errors.Join(finalErr, err)
	} else if len(existingOfferings) == 0 {
		offerings := []*appModels.Offering{
			{
				Name:        "Reformer Pilates",
				Color:       "#7c5cff",
				DurationMin: 50,
				Capacity:    appModels.DefaultCapacity,
				Windows: []appModels.AvailabilityWindow{
					{
						Weekdays: []appModels.Weekday{appModels.Monday, appModels.Wednesday, appModels.Friday},
						Start:    appModels.MustParseClock("09:00"),
						End:      appModels.MustParseClock("21:00"),
					},
					{
						Weekdays: []appModels.Weekday{appModels.Saturday},
						Start:    appModels.MustParseClock("10:00"),
						End:      appModels.MustParseClock("16:00"),
					},
				},
			},
			{
				Name:        "Mat Pilates",
				Color:       "#19b394",
				DurationMin: 50,
				Capacity:    10,
				TimeRanges: []appModels.TimeRange{
					{Label: "morning", Start: appModels.MustParseClock("08:00"), End: appModels.MustParseClock("12:00")},
					{Label: "evening", Start: appModels.MustParseClock("17:00"), End: appModels.MustParseClock("21:00")},
				},
				Weekdays: []appModels.Weekday{
					appModels.Monday, appModels.Tuesday, appModels.Wednesday,
					appModels.Thursday, appModels.Friday,
				},
			},
			{
				// No windows configured: bookable at any time
				Name:        "Private Session",
				Color:       "#ff8c42",
				DurationMin: 60,
				Capacity:    1,
			},
		}
		for _, offering := range offerings {
			if createErr := offeringRepo.Create(ctx, offering); createErr != nil && !errors.Is(createErr, apperrors.ErrResourceAlreadyExists) {
				lgr.Error().Err(createErr).Str("name", offering.Name).Msg("Error creating offering")
				finalErr = errors.Join(finalErr, createErr)
			}
		}
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}
