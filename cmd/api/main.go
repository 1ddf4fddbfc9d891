package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/rental-portal/internal/api/http"
	"github.com/spec-kit/rental-portal/internal/api/http/handlers"
	"github.com/spec-kit/rental-portal/internal/auth"
	"github.com/spec-kit/rental-portal/internal/config"
	"github.com/spec-kit/rental-portal/internal/events"
	"github.com/spec-kit/rental-portal/internal/observability"
	"github.com/spec-kit/rental-portal/internal/refresh"
	"github.com/spec-kit/rental-portal/internal/service"
	"github.com/spec-kit/rental-portal/internal/session"
	"github.com/spec-kit/rental-portal/internal/stats"
	"github.com/spec-kit/rental-portal/internal/upstream"
	"github.com/spec-kit/rental-portal/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := observability.NewMetrics()

	sessionStore, redisClient := session.NewRedisStore(cfg.Redis, cfg.Session.TTL(), logger)
	defer redisClient.Close()

	sessions := session.NewManager(cfg.Session, sessionStore)
	guard := auth.NewGuardMiddleware(sessions)

	upstreamClient := upstream.NewClient(cfg.Upstream, logger)
	synthesizer := stats.NewSynthesizer(stats.NewRand(), nil)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(service.NewAuditService(dispatcher, logger))

	refresher := refresh.NewRefresher(cfg.Snapshot, upstreamClient, synthesizer, refresh.NewRedisCache(redisClient), logger)
	if cfg.Snapshot.Enabled {
		if err := refresher.Start(); err != nil {
			logger.Warn("snapshot refresher not started", zap.Error(err))
		}
		defer refresher.Stop()
	}

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, redisClient, upstreamClient),
		Auth:       handlers.NewAuthHandler(upstreamClient, sessions, dispatcher, logger),
		Dashboard:  handlers.NewDashboardHandler(upstreamClient, synthesizer, refresher, logger),
		Users:      handlers.NewUsersHandler(upstreamClient, dispatcher),
		Properties: handlers.NewPropertiesHandler(upstreamClient, dispatcher),
		Enquiries:  handlers.NewEnquiriesHandler(upstreamClient, dispatcher),
		Guard:      guard,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
