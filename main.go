package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"outreachly/config"
	controller "outreachly/controllers"
	"outreachly/engine"
	"outreachly/middleware"
	"outreachly/routes"
	"outreachly/smartlead"
	"outreachly/store"
	"outreachly/utils"
	"outreachly/worker"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}
	if config.AppConfig.Environment == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	// Error reporting
	if dsn := config.AppConfig.SentryDSN; dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         dsn,
			Environment: config.AppConfig.Environment,
		}); err != nil {
			logger.Warnf("Sentry init failed: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database connection
	if err := config.ConnectDB(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	st := store.NewGormStore(config.DB, config.AppConfig.EncryptionKey)

	// Per-enrollment lease, only when redis is configured
	var locker engine.Locker
	if config.AppConfig.Redis.Enabled {
		lease := utils.NewEnrollmentLease(
			config.AppConfig.Redis.Address,
			config.AppConfig.Redis.Password,
			config.AppConfig.Redis.DB,
			2*time.Minute,
		)
		defer lease.Close()
		locker = lease
	}

	newClient := func(apiKey string) *smartlead.Client {
		return smartlead.NewClient(apiKey, smartlead.WithBaseURL(config.AppConfig.SmartleadBaseURL))
	}
	providerFactory := func(apiKey string) engine.Provider {
		return newClient(apiKey)
	}

	executor := engine.New(st, providerFactory, locker, logger.WithField("component", "executor"))

	// Start the periodic sweep
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sequenceWorker := worker.NewSequenceWorker(executor, config.AppConfig.SweepInterval, logger.WithField("component", "worker"))
	go sequenceWorker.Start(ctx)

	// Create Fiber app
	app := fiber.New()
	app.Use(middleware.CORS())

	webhooks := controller.NewWebhookController(st, logger.WithField("component", "webhook"),
		config.AppConfig.PauseOnReply, config.AppConfig.PauseOnBounce)
	sweeps := controller.NewSweepController(executor, logger.WithField("component", "sweep"), config.AppConfig.TriggerToken)
	sequences := controller.NewSequenceController(config.DB, st, logger.WithField("component", "sequence"), newClient)

	routes.SetupRoutes(app, webhooks, sweeps, sequences)

	// Health check endpoint
	startedAt := time.Now()
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"uptime":      time.Since(startedAt).String(),
			"environment": config.AppConfig.Environment,
		})
	})

	// Graceful shutdown on SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("Shutdown signal received, stopping...")
		cancel()
		_ = app.Shutdown()
	}()

	// Start server
	logger.Infof("🚀 Server starting on port %s", config.AppConfig.ServerPort)
	logger.Infof("📧 Sequence sweep scheduled every %s", config.AppConfig.SweepInterval)
	if err := app.Listen(":" + config.AppConfig.ServerPort); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
