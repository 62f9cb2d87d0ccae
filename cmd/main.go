package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/nearby/internal/api"
	"github.com/UnknownOlympus/nearby/internal/config"
	"github.com/UnknownOlympus/nearby/internal/geocoding"
	"github.com/UnknownOlympus/nearby/internal/metrics"
	"github.com/UnknownOlympus/nearby/internal/models"
	"github.com/UnknownOlympus/nearby/internal/registry"
	"github.com/UnknownOlympus/nearby/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

func main() {
	// Canceled on SIGINT/SIGTERM to start a graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)
	slog.SetDefault(logger)
	if cfg.Env != envLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	facilities, err := loadRegistry(ctx, cfg, logger, appMetrics)
	if err != nil {
		log.Fatalf("Failed to load facility registry: %v", err)
	}
	appMetrics.RegistrySize.Set(float64(facilities.Len()))
	logger.InfoContext(ctx, "Facility registry loaded", "source", cfg.Registry.Source, "facilities", facilities.Len())

	proximity := service.NewProximityService(logger, facilities, appMetrics)
	campus := models.Coordinates{Latitude: cfg.Campus.Latitude, Longitude: cfg.Campus.Longitude}

	readHeaderTimeout := 5
	writeTimeout := 10
	apiServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           api.NewRouter(logger, proximity, campus, appMetrics),
		ReadHeaderTimeout: time.Duration(readHeaderTimeout) * time.Second,
		WriteTimeout:      time.Duration(writeTimeout) * time.Second,
	}
	monitoringServer := newMonitoringServer(ctx, logger, reg, proximity, cfg.MonitoringPort)

	go serve(ctx, logger, "api", apiServer)
	go serve(ctx, logger, "monitoring", monitoringServer)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	for name, server := range map[string]*http.Server{"api": apiServer, "monitoring": monitoringServer} {
		if err = server.Shutdown(shutdownCtx); err != nil {
			logger.ErrorContext(shutdownCtx, "Server shutdown failed", "server", name, "error", err)
		}
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// loadRegistry builds the configured facility source and freezes its contents.
// A postgres pool is only held for the duration of the load.
func loadRegistry(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	appMetrics *metrics.Metrics,
) (*registry.Registry, error) {
	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Type),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		Region:    cfg.Geocoder.Region,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoding provider: %w", err)
	}

	sourceConfig := registry.SourceConfig{
		Type:     registry.SourceType(cfg.Registry.Source),
		FilePath: cfg.Registry.FilePath,
		Geocoder: geocoding.WithMetrics(geoProvider, cfg.Geocoder.Type, appMetrics),
		Logger:   logger,
	}

	if sourceConfig.Type == registry.SourcePostgres {
		pool, errDB := registry.NewDatabase(
			ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
		)
		if errDB != nil {
			return nil, fmt.Errorf("failed to connect to DB: %w", errDB)
		}
		defer pool.Close()
		sourceConfig.Database = pool
	}

	src, err := registry.NewSource(sourceConfig)
	if err != nil {
		return nil, err
	}

	return registry.Load(ctx, src)
}

// newMonitoringServer exposes /healthz and /metrics on their own port.
// Health is OK while the registry holds at least one facility.
func newMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	proximity *service.ProximityService,
	port int,
) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		status, body := http.StatusOK, "OK"
		if proximity.Facilities() == 0 {
			status, body = http.StatusServiceUnavailable, "registry is empty"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	readTimeout := 5
	writeTimeout := 10

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
}

func serve(ctx context.Context, log *slog.Logger, name string, server *http.Server) {
	log.InfoContext(ctx, "Starting server", "server", name, "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Server failed", "server", name, "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelWarn,
				ReplaceAttr: dropTime,
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level:       slog.LevelError,
				ReplaceAttr: dropTime,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
