package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/chakertay/ai-gen/internal/config"
	"github.com/chakertay/ai-gen/internal/handlers"
	"github.com/chakertay/ai-gen/internal/repositories"
	"github.com/chakertay/ai-gen/internal/services"
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
	sessionRepo := repositories.NewSessionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.ReportPath)
	if err := storageService.EnsureDirs(); err != nil {
		log.Fatalf("❌ Failed to create storage directories: %v", err)
	}

	extractorService := services.NewExtractorService()
	reportService := services.NewReportService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	analyzerService := services.NewAnalyzerService(geminiService, cfg.Gemini.AnalysisModel)
	interviewerService := services.NewInterviewerService(
		geminiService,
		cfg.Gemini.QuestionModel,
		cfg.Gemini.SummaryModel,
		cfg.Interview.ContextWindow,
	)

	assessmentService := services.NewAssessmentService(
		sessionRepo,
		extractorService,
		analyzerService,
		interviewerService,
		reportService,
		storageService,
	)
	log.Println("✅ Assessment service initialized")

	// Initialize handlers
	assessmentHandler := handlers.NewAssessmentHandler(
		assessmentService,
		storageService,
		cfg.Storage.MaxFileSize,
		cfg.Interview.MaxQuestions,
	)
	reportHandler := handlers.NewReportHandler(assessmentService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Career Assessment API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/assessments", assessmentHandler.HandleUpload)
	api.Get("/assessments/:id", assessmentHandler.HandleGetSession)
	api.Post("/assessments/:id/analyze", assessmentHandler.HandleAnalyze)
	api.Post("/assessments/:id/questions", assessmentHandler.HandleNextQuestion)
	api.Post("/assessments/:id/answers", assessmentHandler.HandleSubmitAnswer)
	api.Post("/assessments/:id/summary", assessmentHandler.HandleComplete)
	api.Post("/assessments/:id/report", reportHandler.HandleGenerateReport)
	api.Get("/assessments/:id/report", reportHandler.HandleDownloadReport)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Career Assessment API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/assessments",
				"GET /api/v1/assessments/:id",
				"POST /api/v1/assessments/:id/analyze",
				"POST /api/v1/assessments/:id/questions",
				"POST /api/v1/assessments/:id/answers",
				"POST /api/v1/assessments/:id/summary",
				"POST /api/v1/assessments/:id/report",
				"GET /api/v1/assessments/:id/report",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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
