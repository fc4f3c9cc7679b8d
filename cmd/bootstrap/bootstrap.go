package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/radha-2006/CliniqueManagementSystem/config"
	deliveryHttp "github.com/radha-2006/CliniqueManagementSystem/internal/delivery/http"
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/http/handler"
	"github.com/radha-2006/CliniqueManagementSystem/internal/delivery/http/middleware"
	"github.com/radha-2006/CliniqueManagementSystem/internal/domain/entity"
	domainRepo "github.com/radha-2006/CliniqueManagementSystem/internal/domain/repository"
	"github.com/radha-2006/CliniqueManagementSystem/internal/infrastructure/cache"
	"github.com/radha-2006/CliniqueManagementSystem/internal/infrastructure/database"
	"github.com/radha-2006/CliniqueManagementSystem/internal/repository"
	"github.com/radha-2006/CliniqueManagementSystem/internal/service"
	"github.com/radha-2006/CliniqueManagementSystem/internal/usecase"
	"github.com/radha-2006/CliniqueManagementSystem/pkg/jwt"
	"github.com/radha-2006/CliniqueManagementSystem/pkg/validator"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized.
// Startup fails when the configured clinic doctor cannot be resolved or
// seeded, since the queue cannot issue tokens without a bound doctor.
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Schema and seed data
	userRepo := repository.NewUserRepository()
	if err := migrateSchema(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	doctorID, err := seedClinic(db, cfg.Clinic, userRepo)
	if err != nil {
		return nil, fmt.Errorf("failed to seed clinic data: %w", err)
	}
	logrus.Infof("Queue bound to doctor %s (%s)", cfg.Clinic.DoctorName, doctorID)

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient, userRepo, doctorID)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

func migrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Role{},
		&entity.User{},
		&entity.Token{},
		&entity.DailyStat{},
		&entity.AuditLog{},
	)
}

// seedClinic makes sure the role table and the bound doctor account exist,
// and returns the doctor's id.
func seedClinic(db *gorm.DB, cfg config.ClinicConfig, userRepo domainRepo.UserRepository) (uuid.UUID, error) {
	roles := []entity.Role{
		{ID: entity.RoleIDAdmin, RoleName: entity.RoleAdmin},
		{ID: entity.RoleIDDoctor, RoleName: entity.RoleDoctor},
		{ID: entity.RoleIDPatient, RoleName: entity.RolePatient},
	}
	for _, role := range roles {
		if err := db.Where(entity.Role{ID: role.ID}).FirstOrCreate(&role).Error; err != nil {
			return uuid.Nil, err
		}
	}

	doctor, err := userRepo.FindByEmail(db, cfg.DoctorEmail)
	if err != nil {
		return uuid.Nil, err
	}
	if doctor != nil {
		return doctor.ID, nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DoctorPassword), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, err
	}

	doctor = &entity.User{
		ID:       uuid.New(),
		RoleID:   entity.RoleIDDoctor,
		Email:    cfg.DoctorEmail,
		Password: string(hashedPassword),
		FullName: cfg.DoctorName,
	}
	if err := userRepo.Create(db, doctor); err != nil {
		return uuid.Nil, err
	}

	logrus.Infof("Seeded clinic doctor account %s", cfg.DoctorEmail)
	return doctor.ID, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, userRepo domainRepo.UserRepository, doctorID uuid.UUID) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	tokenRepo := repository.NewTokenRepository()
	dailyStatRepo := repository.NewDailyStatRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	statsService := service.NewStatsService(log, dailyStatRepo)
	auditService := service.NewAuditService(log, auditLogRepo)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, auditService, jwtService, redisClient)
	queueUsecase := usecase.NewQueueUsecase(db, log, tokenRepo, userRepo, statsService, auditService, doctorID)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	queueHandler := handler.NewQueueHandler(queueUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(authHandler, queueHandler, auditLogHandler, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
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

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
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
