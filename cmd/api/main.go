// @title Assessly API
// @version 1.0
// @description Assessment composition and scoring engine.
// @host localhost:8090
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"assessly/internal/adapter"
	"assessly/internal/adapter/feedback"
	"assessly/internal/adapter/questiongen"
	"assessly/internal/bank"
	"assessly/internal/cache"
	"assessly/internal/config"
	"assessly/internal/database"
	"assessly/internal/domain"
	"assessly/internal/engine"
	"assessly/internal/handler"
	"assessly/internal/logger"
	"assessly/internal/middleware"
	"assessly/internal/repository"
	"assessly/internal/service"
	"assessly/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	questionRepository := repository.NewQuestionDatabaseAdapter(db)

	// Connect to Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// The generative provider is optional: a failed client setup degrades
	// composition to the store and bank tiers instead of aborting startup.
	var questionGenerator domain.QuestionGenerator
	if cfg.Generation.Enabled {
		gen, err := questiongen.New(cfg.LLM, appLogger)
		if err != nil {
			appLogger.Warn("Question generator unavailable, composing without it", zap.Error(err))
		} else {
			questionGenerator = gen
			appLogger.Info("Question generator initialized",
				zap.String("server", cfg.LLM.Server),
				zap.String("model", cfg.LLM.Model))
		}
	}

	var feedbackGenerator domain.FeedbackGenerator
	if fb, err := feedback.New(cfg.LLM, appLogger); err != nil {
		appLogger.Warn("Feedback generator unavailable, using template feedback", zap.Error(err))
	} else {
		feedbackGenerator = fb
	}

	// Engine wiring
	questionBank := bank.New()
	composer := engine.NewComposer(
		questionRepository,
		questionGenerator,
		questionBank,
		cfg.Generation,
		engine.NewPacer(cfg.Engine.PacingInterval),
		appLogger,
	)
	scorer := engine.NewScorer(cfg.Engine.Rubric)
	aggregator := engine.NewAggregator(feedbackGenerator, engine.NewPacer(cfg.Engine.PacingInterval), appLogger)

	assessmentService := service.NewAssessmentService(
		composer,
		scorer,
		aggregator,
		questionRepository,
		questionBank,
		cacheAdapter,
		engine.NewPacer(cfg.Engine.PacingInterval),
		cfg.Engine.AssemblyCacheTTL,
		appLogger,
	)

	assessmentHandler := handler.NewAssessmentHandler(assessmentService, validation.NewValidator())

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := cacheAdapter.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiGroup := app.Group("/api")
	apiGroup.Post("/assessments", assessmentHandler.ComposeAssignment)
	apiGroup.Post("/attempts/evaluate", assessmentHandler.EvaluateAttempt)
	apiGroup.Get("/fields", assessmentHandler.ListFields)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
