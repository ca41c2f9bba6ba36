package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/personality-assessment/internal/config"
	"alfredoptarigan/personality-assessment/internal/handlers"
	"alfredoptarigan/personality-assessment/internal/repositories"
	"alfredoptarigan/personality-assessment/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize scoring backend
	scorer, err := newScorer(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize scoring service: %v", err)
	}
	log.Printf("✅ Scoring service initialized (%s)\n", cfg.Scoring.Provider)

	// Initialize notifier
	notifier := services.NewNotifier()
	notifier.Start()

	// Initialize submission pipeline
	submissionService := services.NewSubmissionService(candidateRepo, scorer, notifier)
	log.Println("✅ Submission service initialized")

	// Initialize handlers
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	analyticsHandler := handlers.NewAnalyticsHandler(candidateRepo)
	profileHandler := handlers.NewProfileHandler(candidateRepo)
	socketHandler := handlers.NewRecruiterSocketHandler(notifier)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Personality Assessment API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	app.Post("/submit_response", submissionHandler.HandleSubmit)
	app.Get("/analytics", analyticsHandler.HandleGetAnalytics)
	app.Get("/personality-profile", profileHandler.HandleGetProfile)

	app.Use("/ws", socketHandler.UpgradeRequired)
	app.Get("/ws/recruiter", socketHandler.HandleRecruiterSocket())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Personality Assessment API is running",
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		notifier.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func newScorer(cfg *config.Config) (services.ScoringService, error) {
	switch strings.ToLower(cfg.Scoring.Provider) {
	case "gemini":
		return services.NewGeminiScorer(cfg.Gemini, cfg.Scoring)
	case "openrouter":
		return services.NewOpenRouterScorer(cfg.OpenRouter, cfg.Scoring), nil
	default:
		return nil, fmt.Errorf("unknown scoring provider: %q", cfg.Scoring.Provider)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
