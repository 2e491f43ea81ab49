package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-desk-backend/config"
	deliveryHttp "clinic-desk-backend/internal/delivery/http"
	"clinic-desk-backend/internal/delivery/http/handler"
	"clinic-desk-backend/internal/delivery/http/middleware"
	"clinic-desk-backend/internal/infrastructure/cache"
	"clinic-desk-backend/internal/infrastructure/database"
	"clinic-desk-backend/internal/repository"
	"clinic-desk-backend/internal/service"
	"clinic-desk-backend/internal/usecase"
	"clinic-desk-backend/pkg/jwt"
	"clinic-desk-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
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

	// Run migrations
	if err := database.RunMigrations(cfg.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

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

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	patientRepo := repository.NewPatientRepository()
	doctorRepo := repository.NewDoctorRepository()
	roomRepo := repository.NewRoomRepository()
	procedureRepo := repository.NewProcedureRepository()
	visitRepo := repository.NewVisitRepository()
	invoiceRepo := repository.NewInvoiceRepository()
	procedureOrderRepo := repository.NewProcedureOrderRepository()
	prescriptionRepo := repository.NewPrescriptionRepository()
	settingRepo := repository.NewSettingRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize cross-cutting services
	auditService := service.NewAuditService(log, auditLogRepo)
	sequencer := service.NewRedisSequencer(db, redisClient, log, visitRepo, invoiceRepo, patientRepo)
	eventHub := service.NewEventHub()
	notifier := service.MultiNotifier{
		service.NewRedisNotifier(redisClient, log),
		eventHub,
	}

	// Initialize usecases
	settingUsecase := usecase.NewSettingUsecase(db, log, settingRepo, auditService)
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService, redisClient)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, visitRepo, settingUsecase, sequencer, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo)
	visitUsecase := usecase.NewVisitUsecase(db, log, visitRepo, patientRepo, doctorRepo, settingUsecase, sequencer, notifier, auditService)
	invoiceUsecase := usecase.NewInvoiceUsecase(db, log, invoiceRepo, visitRepo, sequencer, auditService)
	procedureOrderUsecase := usecase.NewProcedureOrderUsecase(db, log, procedureOrderRepo, procedureRepo, visitRepo, invoiceUsecase, auditService)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(db, log, prescriptionRepo, visitRepo)
	adminConfigUsecase := usecase.NewAdminConfigUsecase(db, log, doctorRepo, roomRepo, procedureRepo, auditService)
	reportUsecase := usecase.NewReportUsecase(db, log, visitRepo, invoiceRepo, patientRepo, settingUsecase)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, visitUsecase)
	visitHandler := handler.NewVisitHandler(visitUsecase, procedureOrderUsecase, customValidator)
	invoiceHandler := handler.NewInvoiceHandler(invoiceUsecase, customValidator)
	procedureOrderHandler := handler.NewProcedureOrderHandler(procedureOrderUsecase, customValidator)
	prescriptionHandler := handler.NewPrescriptionHandler(prescriptionUsecase, customValidator)
	adminHandler := handler.NewAdminHandler(settingUsecase, adminConfigUsecase, customValidator)
	reportHandler := handler.NewReportHandler(reportUsecase)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)
	eventHandler := handler.NewEventHandler(eventHub, log)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		doctorHandler,
		visitHandler,
		invoiceHandler,
		procedureOrderHandler,
		prescriptionHandler,
		adminHandler,
		reportHandler,
		auditLogHandler,
		eventHandler,
		authMiddleware,
		corsMiddleware,
	)
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
