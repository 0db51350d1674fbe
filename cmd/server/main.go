package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/adapters/http/routes"
	"staffhub/internal/adapters/persistence/models"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/services"

	"github.com/gofiber/fiber/v2"

	_ "staffhub/docs" // Swagger docs
)

// @title StaffHub API
// @version 1.0
// @description Employee directory, authentication and customer rating API

// @contact.name API Support
// @contact.email support@staffhub.local

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Photo and QR uploads land here
	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Seed default roles
	if err := config.SeedRoles(db); err != nil {
		log.Printf("⚠️ Warning: Failed to seed roles: %v", err)
	}

	// Hourly sweep of expired refresh tokens and OTPs
	cleanupService := services.NewCleanupService(
		repositories.NewRefreshTokenRepository(db),
		repositories.NewOTPRepository(db),
	)
	cleanupService.Start()
	defer cleanupService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "StaffHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
