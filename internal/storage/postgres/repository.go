package postgres

import (
	"context"
	"time"

	"sosEngine/internal/domain"

	"github.com/google/uuid"
)

type SignalRepository interface {
	Create(ctx context.Context, signal *domain.Signal) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error)
	List(ctx context.Context, filter domain.ListSignalsFilter, page, limit int) ([]*domain.Signal, int64, error)
	// ListActive returns signals in non-terminal status.
	ListActive(ctx context.Context) ([]*domain.Signal, error)
	ListWindow(ctx context.Context, from, to time.Time) ([]*domain.Signal, error)
	// UpdateCAS writes the mutable fields of signal, but only if the stored
	// status and escalation level still match the expected values. A lost
	// race surfaces as e.ErrStaleState.
	UpdateCAS(ctx context.Context, signal *domain.Signal, expectedStatus domain.SignalStatus, expectedLevel int) error
}

func (p *Postgres) Signals() SignalRepository { return p.SignalRepo }
