package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	eventsHttp "conversation-insights-service/internal/events/adapters/http/fiber"
	eventsRepoPg "conversation-insights-service/internal/events/adapters/postgres"
	eventsUsecase "conversation-insights-service/internal/events/core/usecase"

	insightsHttp "conversation-insights-service/internal/insights/adapters/http/fiber"
	insightsRepoPg "conversation-insights-service/internal/insights/adapters/postgres"
	insightsUsecase "conversation-insights-service/internal/insights/core/usecase"

	"conversation-insights-service/internal/config"
	"conversation-insights-service/internal/logger"
	"conversation-insights-service/internal/views"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofiber/fiber/v2"
	_ "github.com/lib/pq"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	_ "conversation-insights-service/docs"
)

// @title conversation-insights-service API
// @version 1.0
// @description Session reconstruction and metric aggregation over raw view rows
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("", "").WithError(err).Fatal("config")
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)
	log.WithField("service", "conversation-insights-service").Info("starting")

	// DB connection
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to open postgres")
	}
	defer db.Close()

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Postgres may still be coming up next to us; retry the first ping.
	ping := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5)
	if err := backoff.Retry(db.Ping, ping); err != nil {
		log.WithError(err).Fatal("failed to ping postgres")
	}

	// View registry
	registry := views.Defaults()
	if cfg.ViewsFile != "" {
		if err := registry.LoadFile(cfg.ViewsFile); err != nil {
			log.WithError(err).Fatal("failed to load views file")
		}
		log.WithField("views_file", cfg.ViewsFile).Info("view overrides loaded")
	}

	// Adapter-level DB wrappers
	eventsDB := eventsRepoPg.NewSQLDB(db)
	insightsDB := insightsRepoPg.NewSQLDB(db)

	// Repositories
	eventRepository := eventsRepoPg.NewEventRepository(eventsDB)
	eventReader := insightsRepoPg.NewEventReader(insightsDB)

	// Usecases
	storeEventUC := eventsUsecase.NewStoreEventUseCase(eventRepository)
	getInsightsUC := insightsUsecase.NewGetInsightsUseCase(eventReader, registry)

	// HTTP (Fiber) app + handlers
	app := fiber.New()
	app.Use(logger.RequestLogger(log))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	// ingestion endpoints
	eventsHandler := eventsHttp.NewEventHandler(storeEventUC)
	app.Post("/events", eventsHandler.CreateEvent)
	app.Post("/events/bulk", eventsHandler.BulkCreateEvents)

	// insights endpoints
	insightsHandler := insightsHttp.NewInsightsHandler(getInsightsUC)
	app.Get("/views/:view/sessions", insightsHandler.GetSessions)
	app.Get("/views/:view/statistics", insightsHandler.GetStatistics)
	app.Get("/views/:view/export", insightsHandler.ExportSessions)

	// Swagger
	app.Get("/docs/*", fiberSwagger.WrapHandler)

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.WithError(err).Warn("fiber stopped")
		}
	}()

	log.WithField("addr", cfg.HTTPAddr).Info("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.WithError(err).Warn("fiber shutdown error")
	}

	log.Info("server exiting")
}
