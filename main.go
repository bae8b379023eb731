// main.go
package main

import (
	"log"
	"time"

	"biasboard/cache"
	"biasboard/config"
	"biasboard/database"
	"biasboard/handlers"
	"biasboard/handlers/admin"
	"biasboard/middleware"
	"biasboard/notifications"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg := config.Load()
	validateConfig(cfg)

	// Initialize database and cache
	database.InitDB(cfg.DatabaseURL)
	cache.InitRedis(cfg.RedisAddr)

	// Wire services and handlers
	hub := notifications.NewHub()
	handlers.InitHandlers(database.GetDB(), cfg, hub)
	admin.Init(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: newErrorHandler(cfg),
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	app.Use(middleware.RateLimitMiddleware(cfg))

	adminAuth := middleware.NewAdminAuth(cfg)

	// API Routes
	api := app.Group("/api")

	// Submission intake
	api.Post("/submit-team", middleware.SubmitRateLimitMiddleware(cfg), handlers.SubmitTeam)
	api.Get("/ticker", handlers.GenerateTicker)

	// Preference chart lookups
	api.Get("/groups", handlers.GetGroups)
	api.Get("/groups/:ticker", handlers.GetGroup)
	api.Get("/groups/:ticker/members", handlers.GetGroupMembers)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", admin.Login)
	adminGroup.Post("/logout", admin.Logout)

	// Protected admin routes
	adminProtected := adminGroup.Group("")
	adminProtected.Use(adminAuth)
	adminProtected.Get("/verify", admin.VerifyToken)
	adminProtected.Get("/pending-teams", admin.GetPendingTeams)
	adminProtected.Get("/pending-teams/:id", admin.GetPendingTeam)
	adminProtected.Post("/approve-team", admin.ApproveTeam)
	adminProtected.Post("/reject-team", admin.RejectTeam)

	// Live review-queue feed for the approval dashboard
	app.Get("/ws/admin", admin.RequireWebSocketUpgrade, adminAuth, admin.Feed())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	log.Printf("🚀 HTTP server starting on port %s", cfg.Port)
	log.Printf("📊 Environment: %s", cfg.AppEnv)
	if len(cfg.AdminEmails) == 0 {
		log.Println("WARNING: ADMIN_EMAILS is empty; every authenticated reviewer is treated as an admin")
	}

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateConfig checks for required settings before anything starts
func validateConfig(cfg *config.Config) {
	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if cfg.AppEnv == "production" {
		if cfg.CORSOrigins == "http://localhost:3000" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func newErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		// Don't expose internal errors in production
		if cfg.AppEnv == "production" && code == 500 {
			message = "An error occurred. Please try again later."
		}

		return c.Status(code).JSON(fiber.Map{
			"success": false,
			"error":   message,
		})
	}
}
