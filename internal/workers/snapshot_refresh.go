package workers

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type SnapshotRefresher interface {
	RefreshSnapshot(ctx context.Context) error
}

// SnapshotWorker keeps the active-signal cache warm on a cron schedule, so
// cluster reads rarely fall through to Postgres.
type SnapshotWorker struct {
	refresher SnapshotRefresher
	logger    *slog.Logger
	spec      string
	cron      *cron.Cron
}

func NewSnapshotWorker(refresher SnapshotRefresher, logger *slog.Logger, spec string) *SnapshotWorker {
	if spec == "" {
		spec = "@every 30s"
	}
	return &SnapshotWorker{
		refresher: refresher,
		logger:    logger,
		spec:      spec,
	}
}

func (w *SnapshotWorker) Run(ctx context.Context) error {
	w.cron = cron.New()

	_, err := w.cron.AddFunc(w.spec, func() {
		if err := w.refresher.RefreshSnapshot(ctx); err != nil {
			w.logger.Error("snapshot refresh failed", slog.Any("error", err))
			return
		}
		w.logger.Debug("snapshot refreshed")
	})
	if err != nil {
		return err
	}

	// Warm the cache once at startup, then hand off to cron.
	if err := w.refresher.RefreshSnapshot(ctx); err != nil {
		w.logger.Warn("initial snapshot refresh failed", slog.Any("error", err))
	}

	w.cron.Start()
	<-ctx.Done()

	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info("snapshot worker stopped")
	return nil
}
