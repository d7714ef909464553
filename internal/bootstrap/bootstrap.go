package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/placement/internal/app/controllers"
	appMigrations "github.com/yigit/placement/internal/app/migrations"
	appRepos "github.com/yigit/placement/internal/app/repositories"
	appRoutes "github.com/yigit/placement/internal/app/routes"
	appServices "github.com/yigit/placement/internal/app/services"
	"github.com/yigit/placement/internal/config"
	"github.com/yigit/placement/internal/db"
	appMiddleware "github.com/yigit/placement/internal/middleware"
	pkgAuth "github.com/yigit/placement/internal/pkg/auth"
	"github.com/yigit/placement/internal/pkg/classifier"
	"github.com/yigit/placement/internal/pkg/helpers"
	"github.com/yigit/placement/internal/pkg/logger"
	"github.com/yigit/placement/internal/pkg/metrics"
	"github.com/yigit/placement/internal/seed"
)

const serviceName = "placement-api"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	Classifier            classifier.Classifier
	Metrics               *metrics.Manager
	AuthService           *appServices.AuthService
	StudentService        *appServices.StudentService
	PerformanceService    *appServices.PerformanceService
	PredictionService     *appServices.PredictionService
	AuthController        *appControllers.AuthController
	StudentController     *appControllers.StudentController
	PerformanceController *appControllers.PerformanceController
	PredictionController  *appControllers.PredictionController
	AuthMiddleware        *appMiddleware.AuthMiddleware
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads .env, the YAML configuration and
// environment overrides, then configures the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn().Err(err).Msg("Failed to read .env file")
	}

	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  prettyLog,
		Service: serviceName,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies migrations and provisions
// the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if cfg.Database.AutoMigrate {
		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(dbPool)
		err := migrator.Up(ctx)
		_ = migrator.Close()
		if err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			dbPool.Close()
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")
	}

	adminRepo := appRepos.NewAdminRepository(dbPool)
	if err := seed.CreateDefaultAdmin(ctx, adminRepo, cfg.Admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to provision admin account, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool appRepos.DBTX, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)
	deps.Metrics = metrics.NewManager()

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
		SigningMethod:  cfg.JWT.SigningMethod,
	})

	var err error
	deps.Classifier, err = classifier.New(classifier.Config{
		Mode:      cfg.Classifier.Mode,
		ModelPath: cfg.Classifier.ModelPath,
		RemoteURL: cfg.Classifier.RemoteURL,
		Timeout:   helpers.ParseDuration(cfg.Classifier.Timeout, 15*time.Second),
	})
	if err != nil {
		lgr.Error().Err(err).Str("mode", cfg.Classifier.Mode).Msg("Failed to initialize classifier")
		return nil, fmt.Errorf("failed to initialize classifier: %w", err)
	}
	lgr.Info().Str("classifier", deps.Classifier.Name()).Msg("Classifier ready")

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.AdminRepository,
		deps.JWTService,
		deps.Metrics,
		logger.Component("auth"),
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, logger.Component("students"))
	deps.PerformanceService = appServices.NewPerformanceService(deps.Repos.PerformanceRepository)
	deps.PredictionService = appServices.NewPredictionService(
		deps.Classifier,
		deps.Repos.PredictionRepository,
		deps.Repos.StudentRepository,
		deps.Metrics,
		logger.Component("prediction"),
		cfg.Prediction.MaxBatchSize,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(
		deps.JWTService,
		deps.Repos.AdminRepository,
		deps.Metrics,
		logger.Component("auth"),
	)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.Logger)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.Logger)
	deps.PerformanceController = appControllers.NewPerformanceController(deps.PerformanceService)
	deps.PredictionController = appControllers.NewPredictionController(deps.PredictionService, deps.Logger)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Metrics(deps.Metrics),
		cors.New(corsConfig(cfg.Server.CORSOrigins)),
	)

	appRoutes.SetupSwagger(router)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.PerformanceController,
		deps.PredictionController,
		deps.AuthMiddleware,
		cfg.Prediction.RequireAuthForStudent,
	)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowOrigins = origins
	c.AllowCredentials = true
	c.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID"}
	c.MaxAge = 12 * time.Hour
	return c
}
