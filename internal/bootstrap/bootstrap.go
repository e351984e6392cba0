package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/emre/studioclass/internal/app/auth"
	appControllers "github.com/emre/studioclass/internal/app/controllers"
	appMigrations "github.com/emre/studioclass/internal/app/migrations"
	appRepos "github.com/emre/studioclass/internal/app/repositories"
	appRoutes "github.com/emre/studioclass/internal/app/routes"
	appServices "github.com/emre/studioclass/internal/app/services"
	"github.com/emre/studioclass/internal/config"
	"github.com/emre/studioclass/internal/db"
	appMiddleware "github.com/emre/studioclass/internal/middleware"
	pkgAuth "github.com/emre/studioclass/internal/pkg/auth"
	"github.com/emre/studioclass/internal/pkg/helpers"
	"github.com/emre/studioclass/internal/pkg/logger"
	"github.com/emre/studioclass/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService        appServices.AuthService
	OfferingService    appServices.OfferingService
	ScheduleService    appServices.ScheduleService
	ParticipantService appServices.ParticipantService
	OccurrenceService  appServices.OccurrenceService
	ExceptionService   appServices.ExceptionService
	TrialService       appServices.TrialService
	CreditService      appServices.CreditService
	AttendanceService  appServices.AttendanceService
	AuditorService     appServices.AuditorService

	AuthController        *appControllers.AuthController
	OfferingController    *appControllers.OfferingController
	ScheduleController    *appControllers.ScheduleController
	ParticipantController *appControllers.ParticipantController
	OccurrenceController  *appControllers.OccurrenceController
	ExceptionController   *appControllers.ExceptionController
	TrialController       *appControllers.TrialController
	CreditController      *appControllers.CreditController
	AttendanceController  *appControllers.AttendanceController
	AuditorController     *appControllers.AuditorController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthzService   *appAuth.AuthorizationService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seed failures are logged but never block startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.OfferingService = appServices.NewOfferingService(deps.Repos.OfferingRepository)
	deps.ScheduleService = appServices.NewScheduleService(
		deps.Repos.SlotRepository,
		deps.Repos.OfferingRepository,
		deps.Repos.InstructorRepository,
		deps.Repos.ParticipantRepository,
	)
	deps.ParticipantService = appServices.NewParticipantService(deps.Repos.ParticipantRepository, deps.AuthzService)
	deps.OccurrenceService = appServices.NewOccurrenceService(
		deps.Repos.SlotRepository,
		deps.Repos.ExceptionRepository,
		deps.Repos.TrialRepository,
		deps.Repos.CreditRepository,
		deps.Repos.AttendanceRepository,
	)
	deps.ExceptionService = appServices.NewExceptionService(
		deps.Repos.ExceptionRepository,
		deps.Repos.SlotRepository,
		deps.Repos.ParticipantRepository,
		deps.OccurrenceService,
	)
	deps.TrialService = appServices.NewTrialService(
		deps.Repos.TrialRepository,
		deps.Repos.SlotRepository,
		deps.OccurrenceService,
	)
	deps.CreditService = appServices.NewCreditService(
		deps.Repos.CreditRepository,
		deps.Repos.SlotRepository,
		deps.Repos.ParticipantRepository,
	)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.OccurrenceService,
		deps.Repos.AttendanceRepository,
		deps.Repos.DraftRepository,
		deps.Repos.TrialRepository,
		deps.Repos.CreditRepository,
		deps.AuthzService,
	)
	deps.AuditorService = appServices.NewAuditorService(
		deps.Repos.SlotRepository,
		deps.Repos.AttendanceRepository,
		cfg.PlatformStartDate(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.OfferingController = appControllers.NewOfferingController(deps.OfferingService)
	deps.ScheduleController = appControllers.NewScheduleController(deps.ScheduleService)
	deps.ParticipantController = appControllers.NewParticipantController(deps.ParticipantService)
	deps.OccurrenceController = appControllers.NewOccurrenceController(deps.OccurrenceService)
	deps.ExceptionController = appControllers.NewExceptionController(deps.ExceptionService)
	deps.TrialController = appControllers.NewTrialController(deps.TrialService)
	deps.CreditController = appControllers.NewCreditController(deps.CreditService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.AuditorController = appControllers.NewAuditorController(deps.AuditorService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterCustomValidations(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register custom validations")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.OfferingController,
		deps.ScheduleController,
		deps.ParticipantController,
		deps.OccurrenceController,
		deps.ExceptionController,
		deps.TrialController,
		deps.CreditController,
		deps.AttendanceController,
		deps.AuditorController,
		deps.AuthMiddleware,
	)

	return router
}
