package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(parent context.Context) error {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	if err := database.Connect(ctx, cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		return err
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		return err
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.Persist(database.DB)

	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cfg.LogRetention(), cleanupDone)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.AppEnv,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		}
	}

	// Storage and model providers
	st := store.New(database.DB, store.RetryPolicy{
		Attempts: cfg.DBRetryAttempts,
		Backoff:  cfg.DBRetryBackoff,
	})
	provider := newProvider(cfg)
	assistant := ai.NewAssembler(provider, cfg.AITimeout)

	// Services
	formService := services.NewFormService(st)
	conversationService := services.NewConversationService(st)
	chatService := services.NewChatService(st, assistant)
	healthStatusService := services.NewHealthStatusService(st)

	// Handlers run under requestCtx so abandoned work stops once draining
	// gives up. It outlives ctx so in-flight turns can finish while draining.
	requestCtx, cancelRequests := context.WithCancel(context.Background())
	defer cancelRequests()

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    cfg.BodyLimitBytes(),
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.ServerContext(requestCtx))

	routes.Setup(app, cfg, routes.Handlers{
		Health:        handlers.NewHealthHandler(database.Ping, healthStatusService),
		Forms:         handlers.NewFormHandler(formService),
		Conversations: handlers.NewConversationHandler(conversationService),
		Chat:          handlers.NewChatHandler(chatService),
		Upload:        handlers.NewUploadHandler(cfg.MaxImageMB),
	})

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "ai_provider", provider.Name())
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server...")
	case err := <-listenErr:
		slog.Error("server failed to start", "error", err)
		shutdown(cleanupDone, pgLogHandler)
		return err
	}

	if err := app.ShutdownWithTimeout(cfg.AITimeout + 5*time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	cancelRequests()
	shutdown(cleanupDone, pgLogHandler)

	slog.Info("server stopped")
	return nil
}

// newProvider returns Gemini, followed by OpenAI when a key is configured.
func newProvider(cfg *config.Config) ai.Provider {
	providers := []ai.Provider{
		ai.NewGeminiClient(ai.GeminiConfig{
			APIKey:            cfg.GeminiAPIKey,
			BaseURL:           cfg.GeminiAPIURL,
			Model:             cfg.GeminiModel,
			SystemInstruction: ai.MedicalAssistantInstruction,
			Timeout:           cfg.AITimeout,
		}),
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, ai.MedicalAssistantInstruction))
	}
	return ai.NewChain(providers...)
}

func shutdown(cleanupDone chan struct{}, pgLogHandler *logging.PGHandler) {
	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := database.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
