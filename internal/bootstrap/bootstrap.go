// Package bootstrap wires configuration, database, repositories,
// services and controllers together for the server.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/okandemir/librarium/internal/app/auth"
	appControllers "github.com/okandemir/librarium/internal/app/controllers"
	appMigrations "github.com/okandemir/librarium/internal/app/migrations"
	appRepos "github.com/okandemir/librarium/internal/app/repositories"
	appRoutes "github.com/okandemir/librarium/internal/app/routes"
	appServices "github.com/okandemir/librarium/internal/app/services"
	"github.com/okandemir/librarium/internal/config"
	"github.com/okandemir/librarium/internal/db"
	appMiddleware "github.com/okandemir/librarium/internal/middleware"
	pkgAuth "github.com/okandemir/librarium/internal/pkg/auth"
	"github.com/okandemir/librarium/internal/pkg/helpers"
	"github.com/okandemir/librarium/internal/pkg/logger"
	"github.com/okandemir/librarium/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService     appServices.AuthService
	AuthorService   appServices.AuthorService
	CategoryService appServices.CategoryService
	BookService     appServices.BookService
	CourseService   appServices.CourseService
	StudentService  appServices.StudentService
	LendingService  appServices.LendingService
	FineService     appServices.FineService

	AuthController     *appControllers.AuthController
	AuthorController   *appControllers.AuthorController
	CategoryController *appControllers.CategoryController
	BookController     *appControllers.BookController
	CourseController   *appControllers.CourseController
	StudentController  *appControllers.StudentController
	LoanController     *appControllers.LoanController
	FineController     *appControllers.FineController

	AuthMiddleware *appMiddleware.AuthMiddleware
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	Policy         *appAuth.Policy
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is applied first when present.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Failed to load .env file")
	}

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

// SetupDatabase establishes the database connection, runs migrations
// and seeds default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Pool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

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

	if err := seed.CreateDefaultData(context.Background(), database.Pool, lgr); err != nil {
		// Seeding failure is not fatal; the admin can be created by hand
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)
	deps.Policy = appAuth.NewPolicy()

	// Opportunistic cleanup of stale refresh tokens on startup
	if removed, err := deps.Repos.TokenRepository.CleanupExpiredTokens(context.Background()); err != nil {
		lgr.Warn().Err(err).Msg("Failed to clean up expired refresh tokens")
	} else if removed > 0 {
		lgr.Info().Int64("removed", removed).Msg("Cleaned up expired refresh tokens")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.StudentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.AuthorService = appServices.NewAuthorService(deps.Repos.AuthorRepository)
	deps.CategoryService = appServices.NewCategoryService(deps.Repos.CategoryRepository)
	deps.BookService = appServices.NewBookService(
		deps.Repos.BookRepository,
		deps.Repos.AuthorRepository,
		deps.Repos.CategoryRepository,
	)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.CourseRepository, deps.Repos.TokenRepository)
	deps.LendingService = appServices.NewLendingService(deps.Repos.LoanRepository, deps.Repos.LoanRepository)
	deps.FineService = appServices.NewFineService(deps.Repos.FineRepository, deps.Repos.LoanRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Policy)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.AuthorController = appControllers.NewAuthorController(deps.AuthorService)
	deps.CategoryController = appControllers.NewCategoryController(deps.CategoryService)
	deps.BookController = appControllers.NewBookController(deps.BookService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.LoanController = appControllers.NewLoanController(deps.LendingService)
	deps.FineController = appControllers.NewFineController(deps.FineService)

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

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.AuthorController,
		deps.CategoryController,
		deps.BookController,
		deps.CourseController,
		deps.StudentController,
		deps.LoanController,
		deps.FineController,
		deps.AuthMiddleware,
	)

	return router
}
