package app

import (
	"context"
	"fmt"
	"time"

	"gigmarket_backend/database"
	"gigmarket_backend/internal/config"
	"gigmarket_backend/internal/email"
	"gigmarket_backend/internal/handlers"
	"gigmarket_backend/internal/logger"
	"gigmarket_backend/internal/middleware"
	"gigmarket_backend/internal/repositories"
	"gigmarket_backend/internal/routes"
	"gigmarket_backend/internal/services"
	"gigmarket_backend/internal/validator"
	"gigmarket_backend/internal/workers"
	"gigmarket_backend/ws"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

const (
	notificationDispatchInterval = 2 * time.Second
	viewPurgeInterval            = 1 * time.Hour
)

func Run() {
	if err := godotenv.Load(); err != nil {
		// .env is optional, deployments pass real environment variables.
		logger.Info("No .env file found, using environment")
	}

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter wires repositories, services, handlers and background workers
// and returns a ready *gin.Engine. Integration tests call it directly with
// their own database handle.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	serviceContainer := initializeServices(cfg, gormDB, wsManager)

	appHandlers := initializeHandlers(serviceContainer)

	ginRouter := initializeGinRouter(cfg)

	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	startWorkers(context.Background(), serviceContainer)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, wsManager *ws.Manager) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		emailProvider = email.NewSMTPProvider(&email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
	} else {
		logger.Warn("Email delivery disabled, using noop provider")
		emailProvider = email.NoopProvider{}
	}

	userRepo := repositories.NewUserRepository(gormDB)
	gigRepo := repositories.NewGigRepository(gormDB)
	bidRepo := repositories.NewBidRepository(gormDB)
	notificationRepo := repositories.NewNotificationRepository(gormDB)
	viewRepo := repositories.NewViewRepository(gormDB)

	notificationService := services.NewNotificationService(notificationRepo, wsManager)
	authService := services.NewAuthService(userRepo, emailProvider)
	userService := services.NewUserService(userRepo, bidRepo, gigRepo)
	gigService := services.NewGigService(gigRepo)
	bidService := services.NewBidService(bidRepo, gigRepo, notificationService)
	hireService := services.NewHireService(gormDB, bidRepo, gigRepo, notificationService)
	viewWindow := time.Duration(cfg.Views.RetentionHours) * time.Hour
	viewService := services.NewViewService(viewRepo, gigRepo, viewWindow)

	return &services.ServiceContainer{
		AuthService:         authService,
		UserService:         userService,
		GigService:          gigService,
		BidService:          bidService,
		HireService:         hireService,
		ViewService:         viewService,
		NotificationService: notificationService,
	}
}

func initializeHandlers(services *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		GigHandler:          handlers.NewGigHandler(baseHandler, services.GigService, services.ViewService),
		BidHandler:          handlers.NewBidHandler(baseHandler, services.BidService, services.HireService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, services.NotificationService),
	}
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigin))
	return router
}

func startWorkers(ctx context.Context, sc *services.ServiceContainer) {
	workers.NewNotificationWorker(sc.NotificationService, notificationDispatchInterval).Start(ctx)
	workers.NewViewWorker(sc.ViewService, viewPurgeInterval).Start(ctx)
}
