package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sosEngine/internal/api"
	"sosEngine/internal/config"
	"sosEngine/internal/redis"
	"sosEngine/internal/service"
	"sosEngine/internal/storage/postgres"
	"sosEngine/internal/workers"
	"sosEngine/pkg/logger"
)

type Components struct {
	logger      *slog.Logger
	HttpServer  *api.Server
	Postgres    *postgres.Postgres
	Redis       *redis.Redis
	AlertQueue  *redis.AlertQueue
	AlertSender *service.AlertSender
	Snapshot    *workers.SnapshotWorker
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}

	snapshotCache := redis.NewSnapshotCache(redisClient)
	alertQueue := redis.NewAlertQueue(redisClient.Client, "alerts:queue")

	lifecycleSvc := service.NewLifecycleService(
		storage.Signals(), snapshotCache, alertQueue, logger,
		cfg.Engine.EscalationThreshold,
	)
	clusterSvc := service.NewClusterService(
		storage.Signals(), snapshotCache, logger,
		cfg.Engine.ProximityRadiusKm, cfg.Engine.SnapshotTTL,
	)
	statsSvc := service.NewStatsService(storage.Signals())

	srv := service.NewService(lifecycleSvc, clusterSvc, statsSvc)

	httpServer := api.NewServer(cfg, logger, srv)
	alertSender := service.NewAlertSender(logger, cfg.Webhook, alertQueue)
	snapshotWorker := workers.NewSnapshotWorker(clusterSvc, logger, cfg.Engine.SnapshotRefreshSpec)
	logger.Info("Initialized server")

	return &Components{
		logger:      logger,
		HttpServer:  httpServer,
		Postgres:    storage,
		Redis:       redisClient,
		AlertQueue:  alertQueue,
		AlertSender: alertSender,
		Snapshot:    snapshotWorker,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
