package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/naemfares/weathermail/config"
	"github.com/naemfares/weathermail/internal/email"
	"github.com/naemfares/weathermail/internal/health"
	"github.com/naemfares/weathermail/internal/infrastructure/postgres"
	ctxlog "github.com/naemfares/weathermail/internal/log"
	"github.com/naemfares/weathermail/internal/metrics"
	"github.com/naemfares/weathermail/internal/notifier"
	"github.com/naemfares/weathermail/internal/weather"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	userRepo := postgres.NewUserRepository(pool)
	forecaster := weather.NewVisualCrossing(cfg.WeatherAPIKey, cfg.WeatherTimeout())
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)

	n, err := notifier.New(
		userRepo,
		forecaster,
		sender,
		logger,
		cfg.NotifyCron,
		cfg.NotifyInterval(),
		cfg.ForecastDays,
		cfg.NotifyBatch,
	)
	if err != nil {
		stop()
		log.Fatalf("notifier: %v", err)
	}
	go n.Start(ctx)

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("notifier shut down")
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
