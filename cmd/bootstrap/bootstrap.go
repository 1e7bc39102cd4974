package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docspot/config"
	"docspot/internal/delivery/dto"
	deliveryHttp "docspot/internal/delivery/http"
	"docspot/internal/delivery/http/handler"
	"docspot/internal/delivery/http/middleware"
	"docspot/internal/infrastructure/cache"
	"docspot/internal/infrastructure/database"
	"docspot/internal/repository"
	"docspot/internal/service"
	"docspot/internal/usecase"
	"docspot/pkg/jwt"
	"docspot/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// base loads configuration, sets up the logger and opens the database.
// Every command needs these; only serve and seed-admin also need Redis.
func base() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{
		Config: cfg,
		Log:    setupLogger(cfg.App.LogLevel),
	}
	app.Log.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, app.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	return app, nil
}

func (app *App) connectRedis() error {
	redisClient, err := cache.NewRedisClient(app.Config.Redis, app.Log)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	return nil
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app, err := base()
	if err != nil {
		return nil, err
	}

	if err := app.connectRedis(); err != nil {
		app.Close()
		return nil, err
	}

	server, err := initializeServer(app.Config, app.Log, app.DB, app.RedisClient)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	transactor := repository.NewTransactor(db)
	userRepo := repository.NewUserRepository(db)
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	blobStore, err := service.NewLocalBlobStore(cfg.Upload)
	if err != nil {
		return nil, err
	}
	slotLocker := service.NewSlotLocker(redisClient, log, cfg.Slot.LockTTL)
	tokenStore := service.NewTokenStore(redisClient)
	notifier := service.NewNotifier(log, notificationRepo, userRepo)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, jwtService, tokenStore, auditService)
	userUsecase := usecase.NewUserUsecase(log, userRepo, notificationRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, doctorRepo, userRepo, appointmentRepo, notifier, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, doctorRepo, userRepo, slotLocker, blobStore, notifier, auditService)
	adminUsecase := usecase.NewAdminUsecase(log, transactor, userRepo, doctorRepo, appointmentRepo, notifier, auditService, tokenStore)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, doctorUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, appointmentUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, cfg.Upload.MaxBytes)
	adminHandler := handler.NewAdminHandler(adminUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)

	// Initialize router
	router := deliveryHttp.NewRouter(
		cfg.Upload.Dir,
		authHandler,
		userHandler,
		doctorHandler,
		appointmentHandler,
		adminHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Migrate applies pending migrations, or rolls back the given number of steps
// when down is set.
func Migrate(down bool, steps int) error {
	app, err := base()
	if err != nil {
		return err
	}

	// closing the migrator also closes the gorm pool
	m, err := database.NewMigrator(app.DB)
	if err != nil {
		app.Close()
		return err
	}
	defer m.Close()

	if down {
		return database.MigrateDown(m, steps, app.Log)
	}
	return database.MigrateUp(m, app.Log)
}

// SeedAdmin creates or promotes the administrator account
func SeedAdmin(ctx context.Context, req *dto.SeedAdminRequest) error {
	if err := validator.NewValidator().Validate(req); err != nil {
		return fmt.Errorf("invalid admin account: %w", err)
	}

	app, err := base()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.connectRedis(); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(app.DB)
	auditService := service.NewAuditService(app.Log, repository.NewAuditLogRepository(app.DB))
	authUsecase := usecase.NewAuthUsecase(app.Log, userRepo, jwt.NewJWTService(app.Config.JWT), service.NewTokenStore(app.RedisClient), auditService)

	admin, err := authUsecase.SeedAdmin(ctx, req)
	if err != nil {
		return err
	}

	app.Log.Infof("Admin account ready: %s (%s)", admin.Email, admin.ID)
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
