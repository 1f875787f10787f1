package main

import (
	"context"
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

	"alfredoptarigan/ai-interviewer/internal/config"
	"alfredoptarigan/ai-interviewer/internal/handlers"
	"alfredoptarigan/ai-interviewer/internal/repositories"
	"alfredoptarigan/ai-interviewer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	resumeExtractor := services.NewResumeExtractor()

	sessionStore := services.NewSessionStore(cfg.Interview.SessionTTL)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	gateway, err := services.NewGeminiGateway(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Qdrant question bank is optional; the interview runs without it
	var questionBank services.QuestionBankService
	if cfg.Qdrant.URL != "" {
		questionBank, err = services.NewQuestionBankService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := questionBank.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant question bank initialized successfully")
	} else {
		log.Println("ℹ️  QDRANT_URL not set, question bank retrieval disabled")
	}

	ctx := context.Background()

	// Report archive is optional as well
	var arch services.Archiver
	var reportRepo repositories.ReportRepository
	if cfg.Archive.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}

		reportRepo = repositories.NewReportRepository(db)
		arch = services.NewArchiver(reportRepo, cfg.Archive.Concurrency)
		arch.Start(ctx)
		log.Println("✅ Report archiver started successfully")
	} else {
		log.Println("ℹ️  ARCHIVE_ENABLED not set, report archiving disabled")
	}

	// Initialize interviewer
	interviewer := services.NewInterviewerService(
		sessionStore,
		gateway,
		resumeExtractor,
		storageService,
		questionBank,
		arch,
	)
	log.Println("✅ Interviewer service initialized")

	// Reap abandoned sessions
	sessionStore.StartJanitor(ctx, cfg.Interview.SweepInterval)

	// Initialize Handlers
	interviewHandler := handlers.NewInterviewHandler(interviewer)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Mock Interviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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
	app.Post("/start", interviewHandler.HandleStart)
	app.Post("/chat", interviewHandler.HandleChat)
	app.Post("/feedback", interviewHandler.HandleFeedback)

	if reportRepo != nil {
		reportHandler := handlers.NewReportHandler(reportRepo)
		app.Get("/report/:session_id", reportHandler.HandleGetReport)
	}

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
			"message": "AI Mock Interviewer API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /start",
				"POST /chat",
				"POST /feedback",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if arch != nil {
			arch.Stop()
		}
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
