// Package main Asset Maintenance API
//
// @title           Asset Maintenance API
// @version         1.0
// @description     API учёта оборудования, журнала обслуживания и аналитики по срокам обслуживания

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	assetmaintenance "github.com/magabrotheeeer/asset-maintenance/internal/app/asset-maintenance"
	"github.com/magabrotheeeer/asset-maintenance/internal/config"
	"github.com/magabrotheeeer/asset-maintenance/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := sl.New(cfg.Env, os.Stdout)

	logger.Info("starting asset-maintenance",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := assetmaintenance.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize app", sl.Err(err))
		os.Exit(1)
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("app stopped with error", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("asset-maintenance stopped gracefully")
}
