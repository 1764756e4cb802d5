package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openlegis/legis-gateway/internal/config"
	"github.com/openlegis/legis-gateway/internal/gateway"
	"github.com/openlegis/legis-gateway/internal/ratelimit"
	"github.com/openlegis/legis-gateway/internal/server"
	"github.com/openlegis/legis-gateway/internal/telemetry"
	"github.com/openlegis/legis-gateway/internal/upstream"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdownTracer, err := telemetry.InitTracer("legis-gateway", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	configPath := os.Getenv("LEGIS_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, cleanup, err := newStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize admission store: %v", err)
	}
	defer cleanup()

	limiter, err := ratelimit.New(store, ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize rate limiter: %v", err)
	}

	client := upstream.NewClient(cfg.Upstream.APIKey, limiter,
		upstream.WithBaseURL(cfg.Upstream.BaseURL),
		upstream.WithTimeout(cfg.Upstream.Timeout()),
		upstream.WithLogger(logger),
	)

	service := gateway.NewService(client, logger)
	handler := server.NewHandler(service)

	srv := server.New(cfg.Server.Port, cfg.Upstream.Timeout(), logger)
	srv.Router.Get("/v1/resource", handler.HandleResolve)
	srv.Router.Get("/healthz", handler.HandleHealth)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("gateway started",
		slog.Int("port", cfg.Server.Port),
		slog.String("upstream", cfg.Upstream.BaseURL),
		slog.String("storage", cfg.Storage.Type),
		slog.Int("admission_budget", cfg.RateLimit.MaxRequests),
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server failed: %v", err)
	case <-sigChan:
	}

	logger.Info("shutdown signal received, stopping gateway")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("gateway shutdown complete")
}

// newStore selects the sliding-window store backing admission control.
func newStore(cfg *config.Config) (ratelimit.Store, func(), error) {
	switch cfg.Storage.Type {
	case "redis":
		store, err := ratelimit.NewRedisStore(ratelimit.RedisConfig{
			Addr:     cfg.Storage.Redis.Addr,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return ratelimit.NewMemoryStore(), func() {}, nil
	}
}
