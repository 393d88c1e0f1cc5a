package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lenderdesk/lenderdesk/internal/api"
	"github.com/lenderdesk/lenderdesk/internal/config"
	"github.com/lenderdesk/lenderdesk/internal/logger"
	"github.com/lenderdesk/lenderdesk/internal/repository"
	"github.com/lenderdesk/lenderdesk/internal/service"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer zlog.Sync()

	// Initialize repositories
	lenderRepo, err := repository.NewLenderRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer lenderRepo.Close()

	// Shared database connection for the other repositories
	db := lenderRepo.GetDB()

	productRepo := repository.NewProductRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	docTypeRepo := repository.NewDocumentTypeRepository(db)

	// Initialize services
	cacheService, err := service.NewCacheService(cfg.RedisURL, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	lenderService := service.NewLenderService(lenderRepo, cacheService)
	productService := service.NewProductService(productRepo, lenderRepo, cacheService)
	matchingService := service.NewMatchingService(productRepo)

	// Set up router
	router := api.NewRouter(
		zlog,
		lenderService,
		productService,
		matchingService,
		authService,
		userRepo,
		settingsRepo,
		docTypeRepo,
	)

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("Starting LenderDesk server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	zlog.Info("Server exited gracefully")
}
