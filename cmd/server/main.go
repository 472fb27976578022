package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/api"
	"github.com/AykutYamak/MyGuestRooms/internal/config"
	"github.com/AykutYamak/MyGuestRooms/internal/database"
	"github.com/AykutYamak/MyGuestRooms/internal/domain"
	"github.com/AykutYamak/MyGuestRooms/internal/engine"
	"github.com/AykutYamak/MyGuestRooms/internal/events"
	"github.com/AykutYamak/MyGuestRooms/internal/export"
	"github.com/AykutYamak/MyGuestRooms/internal/logging"
	"github.com/AykutYamak/MyGuestRooms/internal/metrics"
	"github.com/AykutYamak/MyGuestRooms/internal/repository"
	"github.com/AykutYamak/MyGuestRooms/internal/service"
	"github.com/AykutYamak/MyGuestRooms/internal/worker"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.SeedRooms(ctx, cfg.SeedRooms()); err != nil {
		logger.Error().Err(err).Msg("seed rooms")
		return err
	}

	redisClient := initRedis(cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	locker := buildLocker(redisClient, &logger)
	eventBus := events.NewEventBus()
	subscribeEventLog(eventBus, &logger)

	reportWriter := export.NewReportWriter(db, db, cfg.Exports.Path)
	exportWorker := worker.NewExportWorker(db, reportWriter, redisClient, worker.DefaultRetryPolicy(), &logger)
	go exportWorker.Start(ctx)

	if cfg.Backup.Enabled {
		backup := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backup.Start(ctx)
	}

	reservations := service.NewReservationService(db, db, locker, engine.SystemClock(), eventBus, exportWorker, &logger)
	rooms := service.NewRoomService(db, &logger)

	httpServer := api.NewServer(cfg.API, reservations, rooms, &logger)

	startMetrics(ctx, cfg, &logger)

	return serve(ctx, httpServer, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "server-main").Logger()

	return cfg, logger, closer, nil
}

func initRedis(cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if !cfg.Redis.Enabled || cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, continuing without redis")
		_ = redisClient.Close()
		return nil
	}

	logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	return redisClient
}

// buildLocker prefers the distributed lock when redis is up and falls
// back to the in-process one, so a redis outage degrades to
// single-instance safety instead of an outage.
func buildLocker(redisClient *redis.Client, logger *zerolog.Logger) domain.RoomLocker {
	memory := repository.NewMemoryRoomLocker()
	if redisClient == nil {
		return memory
	}
	return repository.NewFailoverRoomLocker(repository.NewRedisRoomLocker(redisClient), memory, logger)
}

func subscribeEventLog(bus *events.EventBus, logger *zerolog.Logger) {
	eventLogger := logger.With().Str("component", "events").Logger()
	handler := func(event *events.Event) error {
		eventLogger.Info().Str("event_type", event.Type).RawJSON("payload", event.Payload).Msg("domain event")
		return nil
	}
	for _, eventType := range []string{
		events.EventReservationCreated,
		events.EventReservationUpdated,
		events.EventReservationCancelled,
		events.EventReservationDeleted,
		events.EventStatusReconciled,
	} {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serve(ctx context.Context, httpServer *api.Server, logger *zerolog.Logger) error {
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error().Err(err).Msg("http server stopped")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpServer.Shutdown(shutdownCtx)

	logger.Info().Msg("server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
