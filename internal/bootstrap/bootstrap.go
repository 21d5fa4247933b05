package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/aurel/sportcourse/internal/app/auth"
	appControllers "github.com/aurel/sportcourse/internal/app/controllers"
	appMigrations "github.com/aurel/sportcourse/internal/app/migrations"
	appRepos "github.com/aurel/sportcourse/internal/app/repositories"
	appRoutes "github.com/aurel/sportcourse/internal/app/routes"
	appServices "github.com/aurel/sportcourse/internal/app/services"
	"github.com/aurel/sportcourse/internal/config"
	"github.com/aurel/sportcourse/internal/db"
	appMiddleware "github.com/aurel/sportcourse/internal/middleware"
	pkgAuth "github.com/aurel/sportcourse/internal/pkg/auth"
	"github.com/aurel/sportcourse/internal/pkg/logger"
	"github.com/aurel/sportcourse/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	UserService            appServices.UserService
	SportService           appServices.SportService
	CourseService          appServices.CourseService
	CourseSportService     appServices.CourseSportService
	SubscriptionService    appServices.SubscriptionService
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	SportController        *appControllers.SportController
	CourseController       *appControllers.CourseController
	SubscriptionController *appControllers.SubscriptionController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	AuthzService           *appAuth.AuthorizationService
	Logger                 zerolog.Logger
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
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseSportRepository,
	)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenExp(),
		RefreshTokenExp: cfg.RefreshTokenExp(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(
		deps.Repos.UserRepository,
		deps.Repos.UserSportRepository,
		deps.Repos.SportRepository,
		deps.Repos.CourseRepository,
		lgr,
	)
	deps.SportService = appServices.NewSportService(deps.Repos.SportRepository, lgr)
	deps.CourseService = appServices.NewCourseService(
		deps.Repos.CourseRepository,
		deps.Repos.CourseSportRepository,
		deps.Repos.SportRepository,
		deps.Repos.UserRepository,
		deps.Repos.SubscriptionRepository,
		lgr,
	)
	deps.CourseSportService = appServices.NewCourseSportService(
		deps.Repos.CourseSportRepository,
		deps.Repos.CourseRepository,
		deps.Repos.SportRepository,
		lgr,
	)
	deps.SubscriptionService = appServices.NewSubscriptionService(
		deps.Repos.SubscriptionRepository,
		deps.Repos.CourseRepository,
		deps.Repos.UserRepository,
		lgr,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.UserController = appControllers.NewUserController(deps.UserService)
	deps.SportController = appControllers.NewSportController(deps.SportService)
	deps.CourseController = appControllers.NewCourseController(
		deps.CourseService,
		deps.CourseSportService,
		deps.SubscriptionService,
		deps.AuthzService,
	)
	deps.SubscriptionController = appControllers.NewSubscriptionController(
		deps.SubscriptionService,
		deps.AuthzService,
	)

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
		deps.UserController,
		deps.SportController,
		deps.CourseController,
		deps.SubscriptionController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
