package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sosEngine/internal/domain"
	"sosEngine/pkg/e"
	"sosEngine/pkg/validator"

	"github.com/google/uuid"
)

// allowedTransitions is the full edge set of the signal state machine.
// Terminal statuses have no outgoing edges.
var allowedTransitions = map[domain.SignalStatus][]domain.SignalStatus{
	domain.StatusPending:      {domain.StatusAcknowledged, domain.StatusFalseAlarm, domain.StatusCancelled},
	domain.StatusAcknowledged: {domain.StatusResponding, domain.StatusFalseAlarm, domain.StatusCancelled},
	domain.StatusResponding:   {domain.StatusResolved, domain.StatusCancelled},
}

func transitionAllowed(from, to domain.SignalStatus) bool {
	for _, t := range allowedTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type lifecycleService struct {
	repo                SignalRepository
	cache               SnapshotCache
	alerts              AlertQueue
	logger              *slog.Logger
	escalationThreshold int
}

func NewLifecycleService(
	repo SignalRepository,
	cache SnapshotCache,
	alerts AlertQueue,
	logger *slog.Logger,
	escalationThreshold int,
) LifecycleService {
	if escalationThreshold < 1 {
		escalationThreshold = 2
	}
	return &lifecycleService{
		repo:                repo,
		cache:               cache,
		alerts:              alerts,
		logger:              logger,
		escalationThreshold: escalationThreshold,
	}
}

func (s *lifecycleService) Create(ctx context.Context, req domain.CreateSignalRequest) (uuid.UUID, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", e.ErrValidation, err)
	}

	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}

	sig := &domain.Signal{
		ID:            uuid.New(),
		ReporterID:    req.ReporterID,
		Lat:           *req.Lat,
		Lng:           *req.Lng,
		Address:       req.Address,
		EmergencyType: req.EmergencyType,
		Message:       req.Message,
		Priority:      priority,
		Status:        domain.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, sig); err != nil {
		return uuid.Nil, err
	}

	s.logger.Info("signal created",
		slog.String("id", sig.ID.String()),
		slog.String("priority", string(sig.Priority)),
		slog.String("emergency_type", string(sig.EmergencyType)),
	)

	if sig.Priority == domain.PriorityCritical {
		s.enqueueAlert(ctx, sig, "created at critical priority")
	}
	s.invalidateSnapshot(ctx)

	return sig.ID, nil
}

func (s *lifecycleService) Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error) {
	return s.repo.Get(ctx, id)
}

func (s *lifecycleService) List(ctx context.Context, filter domain.ListSignalsFilter, page, limit int) ([]*domain.Signal, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, fmt.Errorf("status %q: %w", *filter.Status, e.ErrValidation)
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, 0, fmt.Errorf("priority %q: %w", *filter.Priority, e.ErrValidation)
	}
	return s.repo.List(ctx, filter, page, limit)
}

func (s *lifecycleService) TransitionStatus(ctx context.Context, id uuid.UUID, target domain.SignalStatus, note *domain.Note) error {
	if !target.Valid() {
		return fmt.Errorf("status %q: %w", target, e.ErrValidation)
	}

	sig, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if !transitionAllowed(sig.Status, target) {
		return fmt.Errorf("%s -> %s: %w", sig.Status, target, e.ErrInvalidTransition)
	}

	expected := sig.Status
	now := time.Now().UTC()

	sig.Status = target
	if target == domain.StatusAcknowledged && sig.AcknowledgedAt == nil {
		sig.AcknowledgedAt = &now
	}
	if target.Terminal() && sig.ResolvedAt == nil {
		sig.ResolvedAt = &now
	}
	appendNote(sig, note, now)

	if err := s.repo.UpdateCAS(ctx, sig, expected, sig.EscalationLevel); err != nil {
		return err
	}

	s.logger.Info("signal transitioned",
		slog.String("id", id.String()),
		slog.String("from", string(expected)),
		slog.String("to", string(target)),
	)
	s.invalidateSnapshot(ctx)

	return nil
}

func (s *lifecycleService) AssignResponder(ctx context.Context, id uuid.UUID, responderID string, note *domain.Note) error {
	if responderID == "" {
		return fmt.Errorf("responder_id: %w", e.ErrValidation)
	}

	sig, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if sig.Status != domain.StatusAcknowledged && sig.Status != domain.StatusResponding {
		return fmt.Errorf("assign in status %s: %w", sig.Status, e.ErrInvalidState)
	}

	expected := sig.Status
	now := time.Now().UTC()

	sig.AssignedResponder = &responderID
	// Assignment implies dispatch.
	if sig.Status == domain.StatusAcknowledged {
		sig.Status = domain.StatusResponding
	}
	appendNote(sig, note, now)

	if err := s.repo.UpdateCAS(ctx, sig, expected, sig.EscalationLevel); err != nil {
		return err
	}

	s.logger.Info("responder assigned",
		slog.String("id", id.String()),
		slog.String("responder", responderID),
		slog.String("status", string(sig.Status)),
	)
	s.invalidateSnapshot(ctx)

	return nil
}

func (s *lifecycleService) Escalate(ctx context.Context, id uuid.UUID, reason string) (*domain.Signal, error) {
	sig, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if sig.Status.Terminal() {
		return nil, fmt.Errorf("escalate in status %s: %w", sig.Status, e.ErrInvalidState)
	}

	expectedStatus := sig.Status
	expectedLevel := sig.EscalationLevel
	now := time.Now().UTC()

	sig.EscalationLevel++

	raised := false
	if sig.EscalationLevel >= s.escalationThreshold {
		if sig.Priority == domain.PriorityCritical {
			s.logger.Warn("escalation at critical priority, nothing to raise",
				slog.String("id", id.String()),
				slog.Int("level", sig.EscalationLevel),
			)
		} else {
			sig.Priority = sig.Priority.Next()
			raised = true
		}
	}

	if reason != "" {
		appendNote(sig, &domain.Note{Text: "escalated: " + reason}, now)
	}

	if err := s.repo.UpdateCAS(ctx, sig, expectedStatus, expectedLevel); err != nil {
		return nil, err
	}

	s.logger.Info("signal escalated",
		slog.String("id", id.String()),
		slog.Int("level", sig.EscalationLevel),
		slog.String("priority", string(sig.Priority)),
		slog.Bool("priority_raised", raised),
	)

	if raised {
		s.enqueueAlert(ctx, sig, reason)
	}
	s.invalidateSnapshot(ctx)

	return sig, nil
}

func appendNote(sig *domain.Signal, note *domain.Note, now time.Time) {
	if note == nil || note.Text == "" {
		return
	}
	n := *note
	if n.At.IsZero() {
		n.At = now
	}
	sig.Notes = append(sig.Notes, n)
}

func (s *lifecycleService) enqueueAlert(ctx context.Context, sig *domain.Signal, reason string) {
	payload := domain.AlertPayload{
		SignalID:        sig.ID,
		Priority:        sig.Priority,
		EscalationLevel: sig.EscalationLevel,
		Reason:          reason,
		RaisedAt:        time.Now().UTC(),
	}
	if err := s.alerts.Enqueue(ctx, payload); err != nil {
		s.logger.Error("enqueue alert failed", slog.String("id", sig.ID.String()), slog.Any("error", err))
		return
	}
	s.logger.Info("alert enqueued", slog.String("id", sig.ID.String()), slog.String("priority", string(sig.Priority)))
}

func (s *lifecycleService) invalidateSnapshot(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("snapshot invalidate failed", slog.Any("error", err))
	}
}
