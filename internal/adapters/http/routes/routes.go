package routes

import (
	"time"

	"staffhub/internal/adapters/http/handlers"
	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	otpRepo := repositories.NewOTPRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)

	// Initialize services
	mailer := services.NewMailer(cfg)
	authService := services.NewAuthService(userRepo, roleRepo, refreshTokenRepo, otpRepo, mailer, cfg)
	userService := services.NewUserService(userRepo, roleRepo, cfg)
	roleService := services.NewRoleService(roleRepo)
	ratingService := services.NewRatingService(ratingRepo, userRepo, cfg)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService, cfg)
	roleHandler := handlers.NewRoleHandler(roleService)
	ratingHandler := handlers.NewRatingHandler(ratingService)

	// ============================================================
	// Public routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Uploaded photos and QR codes
	app.Static("/uploads", cfg.Upload.Dir)

	api := app.Group("/api/v1")
	api.Get("/", healthHandler.APIInfo)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := api.Group("/auth", middleware.NoCacheHeaders())
	auth.Post("/signup", authHandler.Signup)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh-token", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Post("/forgot-password", authHandler.ForgotPassword)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============================================================
	// Rating routes (submission and employee history are public,
	// customers reach them from the profile QR code)
	// ============================================================
	ratings := api.Group("/ratings")
	ratings.Post("/submit/:employeeId", ratingHandler.Submit)
	ratings.Get("/employee/:employeeId", middleware.PublicCache(1*time.Minute), ratingHandler.ListByEmployee)
	ratings.Get("/all-ratings", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), ratingHandler.List)
	ratings.Put("/update-rating/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), ratingHandler.Edit)
	ratings.Delete("/delete-rating/:id", middleware.AuthMiddleware(cfg), middleware.AdminOnly(), ratingHandler.Delete)

	// ============================================================
	// User routes (protected)
	// ============================================================
	users := api.Group("/users", middleware.AuthMiddleware(cfg))
	users.Get("/profile", userHandler.Profile)
	users.Get("/:id", userHandler.Get)
	users.Post("/", middleware.AdminOrSubadmin(), authHandler.Signup)
	users.Get("/", middleware.AdminOrSubadmin(), userHandler.List)
	users.Put("/:id", middleware.AdminOrSubadmin(), userHandler.Update)
	users.Delete("/:id", middleware.AdminOrSubadmin(), userHandler.Delete)
	users.Get("/:id/qr", middleware.AdminOrSubadmin(), userHandler.GenerateQRCode)

	// ============================================================
	// Role routes (admin and subadmin)
	// ============================================================
	roles := api.Group("/roles", middleware.AuthMiddleware(cfg), middleware.AdminOrSubadmin())
	roles.Post("/", roleHandler.Create)
	roles.Get("/", roleHandler.List)
	roles.Get("/:id", roleHandler.Get)
	roles.Put("/:id", roleHandler.Update)
	roles.Delete("/:id", roleHandler.Delete)
}
