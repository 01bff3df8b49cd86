package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ivmolchanov/search-gateway/internal/cache"
	"github.com/ivmolchanov/search-gateway/internal/config"
	"github.com/ivmolchanov/search-gateway/internal/metrics"
	"github.com/ivmolchanov/search-gateway/internal/ratelimit"
	"github.com/ivmolchanov/search-gateway/internal/search/google"
	"github.com/ivmolchanov/search-gateway/internal/server"
	"github.com/ivmolchanov/search-gateway/internal/service"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	m := metrics.New()

	store := cache.New(cache.Config{DefaultTTL: cfg.Cache.TTL})
	limiter := ratelimit.New(ratelimit.Config{RequestsPerMinute: cfg.RateLimit.RequestsPerMinute})
	provider := google.New(google.Config{
		APIKey:   cfg.Google.APIKey,
		EngineID: cfg.Google.EngineID,
		BaseURL:  cfg.Google.BaseURL,
		Timeout:  cfg.Google.Timeout,
	}, logger)

	svc := service.New(service.Deps{
		Provider: provider,
		Cache:    store,
		Limiter:  limiter,
		Logger:   logger,
		Metrics:  m,
	})

	srv := server.New(svc, logger, version)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	mux.Handle("GET /metrics", metrics.Handler())

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.WithRequestLog(mux),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			zap.String("addr", cfg.Server.Addr),
			zap.String("version", version),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown failed", zap.Error(err))
	}
}
