package service

import (
	"context"
	"time"

	"sosEngine/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go
type SignalRepository interface {
	Create(ctx context.Context, signal *domain.Signal) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error)
	List(ctx context.Context, filter domain.ListSignalsFilter, page, limit int) ([]*domain.Signal, int64, error)
	ListActive(ctx context.Context) ([]*domain.Signal, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Signal, error)
	UpdateCAS(ctx context.Context, signal *domain.Signal, expectedStatus domain.SignalStatus, expectedLevel int) error
}

type SnapshotCache interface {
	GetActive(ctx context.Context) ([]*domain.Signal, error)
	SetActive(ctx context.Context, signals []*domain.Signal, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type AlertQueue interface {
	Enqueue(ctx context.Context, payload domain.AlertPayload) error
}

// LifecycleService owns the per-signal state machine.
type LifecycleService interface {
	Create(ctx context.Context, req domain.CreateSignalRequest) (uuid.UUID, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error)
	List(ctx context.Context, filter domain.ListSignalsFilter, page, limit int) ([]*domain.Signal, int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target domain.SignalStatus, note *domain.Note) error
	AssignResponder(ctx context.Context, id uuid.UUID, responderID string, note *domain.Note) error
	Escalate(ctx context.Context, id uuid.UUID, reason string) (*domain.Signal, error)
}

// ClusterService groups active signals into hotspot clusters.
type ClusterService interface {
	GetClusters(ctx context.Context, radiusKm float64) ([]domain.Cluster, error)
	RefreshSnapshot(ctx context.Context) error
}

// StatsService aggregates a signal set over a time window.
type StatsService interface {
	GetStats(ctx context.Context, from, to time.Time) (*domain.StatsSnapshot, error)
}

type Service struct {
	Lifecycle LifecycleService
	Clusters  ClusterService
	Stats     StatsService
}

func NewService(lifecycle LifecycleService, clusters ClusterService, stats StatsService) *Service {
	return &Service{
		Lifecycle: lifecycle,
		Clusters:  clusters,
		Stats:     stats,
	}
}
