package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	siteserver "github.com/couchcryptid/radiooperator-site/internal/adapter/http"
	"github.com/couchcryptid/radiooperator-site/internal/config"
	"github.com/couchcryptid/radiooperator-site/internal/observability"
	"github.com/couchcryptid/radiooperator-site/internal/site"
)

const clientBundle = "js/site.wasm"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	menu := site.DefaultMenu()
	if cfg.SiteMenuFile != "" {
		menu, err = site.LoadMenu(cfg.SiteMenuFile)
		if err != nil {
			logger.Error("failed to load menu", "path", cfg.SiteMenuFile, "error", err)
			os.Exit(1)
		}
		logger.Info("menu loaded", "path", cfg.SiteMenuFile, "items", len(menu.Items))
	}

	renderer, err := site.NewRenderer(menu, nil)
	if err != nil {
		logger.Error("failed to build homepage", "error", err)
		os.Exit(1)
	}

	static := http.Dir(cfg.SiteStaticDir)
	ready := siteserver.StaticReadiness{FS: static, Bundle: clientBundle}
	srv := siteserver.NewServer(cfg.HTTPAddr, renderer, static, ready, metrics, logger)

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

	logger.Info("shutdown complete")
}
