package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpadapter "blogapp/internal/adapter/http"
	telemetryadapter "blogapp/internal/adapter/telemetry"
	"blogapp/internal/core/port"
	"blogapp/internal/core/telemetry"
	"blogapp/pkg/config"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLokiLogger(cfg.Telemetry.ServiceName, cfg.Telemetry.LokiURL)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	var (
		metrics *telemetry.AppMetrics
		probe   port.Telemetry
	)

	if cfg.Telemetry.Enabled {
		container, err := telemetryadapter.NewContainer(cfg.Telemetry, cfg.Environment, slog.Default())
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			if err := container.Shutdown(context.Background()); err != nil {
				slog.Error("Telemetry shutdown", "error", err)
			}
		}()

		metrics = container.AppMetrics
		probe = container.NewTelemetryProbe(slog.Default())
	} else {
		metrics = telemetry.NewAppMetrics(prometheus.NewRegistry())
		probe = telemetry.NewNoOpProbe()
	}

	metrics.StartSystemMetrics(ctx)

	if err := httpadapter.StartServerWithConfig(ctx, cfg, metrics, probe, logger); err != nil {
		logger.Error(context.Background(), "Server stopped", zap.Error(err))
		return err
	}

	return nil
}
