package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/radiooperator-site/internal/adapter/cache"
	"github.com/couchcryptid/radiooperator-site/internal/adapter/diskstore"
	"github.com/couchcryptid/radiooperator-site/internal/adapter/ipapi"
	kafkaadapter "github.com/couchcryptid/radiooperator-site/internal/adapter/kafka"
	"github.com/couchcryptid/radiooperator-site/internal/adapter/openweather"
	"github.com/couchcryptid/radiooperator-site/internal/adapter/weatherapi"
	"github.com/couchcryptid/radiooperator-site/internal/adapter/zippopotam"
	"github.com/couchcryptid/radiooperator-site/internal/config"
	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/usage"
	"github.com/couchcryptid/radiooperator-site/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHERMAP_API_KEY not set; feature requests will fail until it is configured")
	}

	results := cache.New(cfg.CacheSize, cfg.CacheTTL, nil)

	opts := usage.Options{
		Limit:  cfg.APIDailyLimit,
		Store:  diskstore.New(cfg.UsageDataDir),
		Logger: logger,
	}
	if cfg.GeoIPEnabled {
		opts.IPLocator = ipapi.NewClient(cfg.GeoIPTimeout, metrics)
	}
	var publisher *kafkaadapter.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = kafkaadapter.NewPublisher(cfg, metrics, logger)
		opts.Publisher = publisher
		logger.Info("usage publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaUsageTopic)
	}

	tracker, err := usage.NewTracker(opts)
	if err != nil {
		logger.Error("failed to start usage tracker", "dir", cfg.UsageDataDir, "error", err)
		os.Exit(1)
	}
	tracker.OnReset(results.Clear)

	owm := openweather.NewClient(cfg.OpenWeatherAPIKey, cfg.UpstreamTimeout, metrics, logger)
	locator := weather.NewLocator(zippopotam.NewClient(cfg.UpstreamTimeout, metrics, logger), owm, logger)

	svc := weather.NewService(weather.Dependencies{
		Locator:   locator,
		Provider:  owm,
		Cache:     results,
		Quota:     tracker,
		Usage:     tracker,
		APIKeySet: cfg.OpenWeatherAPIKey != "",
		Metrics:   metrics,
		Logger:    logger,
	})

	srv := weatherapi.NewServer(cfg.WeatherHTTPAddr, cfg.TrustProxyHeaders, svc, tracker, results, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
