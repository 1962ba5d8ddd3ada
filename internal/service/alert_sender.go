package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"sosEngine/internal/config"
	"sosEngine/internal/domain"
	"sosEngine/internal/redis"
	"sosEngine/pkg/e"
)

// AlertSender drains the Redis alert queue and posts escalation alerts to
// the configured webhook with bounded retries.
type AlertSender struct {
	logger *slog.Logger
	cfg    config.WebhookConfig
	queue  *redis.AlertQueue
	http   *http.Client
}

func NewAlertSender(logger *slog.Logger, cfg config.WebhookConfig, q *redis.AlertQueue) *AlertSender {
	return &AlertSender{
		logger: logger,
		cfg:    cfg,
		queue:  q,
		http:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (s *AlertSender) Run(ctx context.Context) {
	s.logger.Info("alertSender started", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("alertSender stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		payload, err := s.queue.BRPop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrAlertQueueEmpty) {
				continue
			}
			if ctx.Err() != nil {
				continue
			}
			s.logger.Error("BRPop failed", slog.Any("error", err))
			select {
			case <-ctx.Done():
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}

		s.logger.Info("sending alert", slog.String("signal_id", payload.SignalID.String()))
		s.sendWithRetry(ctx, payload)
	}
}

func (s *AlertSender) sendWithRetry(ctx context.Context, p domain.AlertPayload) {
	const maxRetries = 3

	body, err := json.Marshal(p)
	if err != nil {
		s.logger.Error("marshal alert payload failed", slog.String("error", err.Error()))
		return
	}

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create alert request failed", slog.String("error", err.Error()))
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("alert webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		select {
		case <-ctx.Done():
			s.logger.Info("stop retries due to context cancel")
			return
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
}
