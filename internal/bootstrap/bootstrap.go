package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kin-platform/kin-backend/internal/app/controllers"
	"github.com/kin-platform/kin-backend/internal/app/migrations"
	"github.com/kin-platform/kin-backend/internal/app/repositories"
	"github.com/kin-platform/kin-backend/internal/app/routes"
	"github.com/kin-platform/kin-backend/internal/app/services"
	"github.com/kin-platform/kin-backend/internal/config"
	"github.com/kin-platform/kin-backend/internal/db"
	"github.com/kin-platform/kin-backend/internal/metrics"
	"github.com/kin-platform/kin-backend/internal/middleware"
	pkgauth "github.com/kin-platform/kin-backend/internal/pkg/auth"
	"github.com/kin-platform/kin-backend/internal/pkg/email"
	"github.com/kin-platform/kin-backend/internal/pkg/filestorage"
	"github.com/kin-platform/kin-backend/internal/pkg/logger"
	"github.com/kin-platform/kin-backend/internal/seed"
)

// Dependencies holds the wired application components
type Dependencies struct {
	Repos        *repositories.Repositories
	Services     *services.Services
	TokenService *pkgauth.TokenService
	Registry     *metrics.Registry
	FileStorage  *filestorage.LocalStorage
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default superAdmin account.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	logger.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	logger.Info().Msg("Database connection successfully established")

	logger.Info().Msg("Running database migrations...")
	migrator := migrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		logger.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		logger.Error().Err(err).Msg("Database migration error")
		database.Pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations successfully applied")

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and the
// HTTP router onto the database and configuration.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) (*Dependencies, *gin.Engine, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(database)

	hasher := pkgauth.NewPasswordHasher(cfg.Auth.BcryptCost)

	if err := seed.CreateDefaultData(context.Background(), deps.Repos.User, hasher); err != nil {
		// Seeding failure is logged but does not block startup
		logger.Error().Err(err).Msg("Failed to seed default data, proceeding anyway")
	}

	storageBaseURL := cfg.Storage.BaseURL
	if storageBaseURL == "" {
		storageBaseURL = "http://localhost:" + cfg.Server.Port + "/uploads"
	}
	storage, err := filestorage.NewLocalStorage(cfg.Storage.Path, storageBaseURL)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.TokenService = pkgauth.NewTokenService(pkgauth.TokenConfig{
		AccessSecret: cfg.JWT.AccessSecret,
		VerifySecret: cfg.JWT.VerifySecret,
		ResetSecret:  cfg.JWT.ResetSecret,
		AccessTTL:    cfg.AccessTokenTTL(),
		VerifyTTL:    cfg.VerifyTokenTTL(),
		ResetTTL:     cfg.ResetTokenTTL(),
		Issuer:       cfg.JWT.Issuer,
		CodeCost:     cfg.Auth.BcryptCost,
	})

	mailer := email.NewSMTPMailer(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Enabled:  cfg.SMTP.Enabled,
	})

	deps.Services = services.NewServices(deps.Repos, deps.TokenService, hasher, mailer, storage)
	deps.Registry = metrics.NewRegistry()

	authMW := middleware.NewAuthMiddleware(deps.TokenService)

	cookies := controllers.CookieSettings{
		Secure:         cfg.Cookie.Secure,
		AccessHTTPOnly: cfg.Cookie.AccessHTTPOnly,
		Domain:         cfg.Cookie.Domain,
	}

	ctrl := &routes.Controllers{
		Auth:      controllers.NewAuthController(deps.Services.Auth, deps.TokenService, cookies, deps.Registry),
		User:      controllers.NewUserController(deps.Services.User),
		Committee: controllers.NewCommitteeController(deps.Services.Committee),
		Advisor:   controllers.NewAdvisorController(deps.Services.Advisor),
		Post:      controllers.NewPostController(deps.Services.Post),
	}

	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := routes.SetupRouter(ctrl, authMW, deps.Registry, cfg.Storage.Path)

	return deps, router, nil
}
