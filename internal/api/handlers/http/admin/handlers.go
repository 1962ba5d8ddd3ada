package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"sosEngine/internal/domain"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type SignalLifecycle interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Signal, error)
	List(ctx context.Context, filter domain.ListSignalsFilter, page, limit int) ([]*domain.Signal, int64, error)
	TransitionStatus(ctx context.Context, id uuid.UUID, target domain.SignalStatus, note *domain.Note) error
	AssignResponder(ctx context.Context, id uuid.UUID, responderID string, note *domain.Note) error
	Escalate(ctx context.Context, id uuid.UUID, reason string) (*domain.Signal, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context, from, to time.Time) (*domain.StatsSnapshot, error)
}

type Handler struct {
	logger    *slog.Logger
	Lifecycle SignalLifecycle
	Stats     StatsGetter
}

func NewHandler(logger *slog.Logger, lifecycle SignalLifecycle, stats StatsGetter) *Handler {
	return &Handler{
		logger:    logger,
		Lifecycle: lifecycle,
		Stats:     stats,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) signalID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) SignalTransition(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.signalID(w, r)
	if !ok {
		return
	}

	var req domain.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	l.Info("transitioning signal",
		slog.String("id", id.String()),
		slog.String("target", string(req.TargetStatus)),
	)

	if err := h.Lifecycle.TransitionStatus(r.Context(), id, req.TargetStatus, noteFrom(req.Note, req.Author)); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SignalAssign(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.signalID(w, r)
	if !ok {
		return
	}

	var req domain.AssignResponderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("invalid JSON", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	l.Info("assigning responder",
		slog.String("id", id.String()),
		slog.String("responder", req.ResponderID),
	)

	if err := h.Lifecycle.AssignResponder(r.Context(), id, req.ResponderID, noteFrom(req.Note, req.Author)); err != nil {
		h.handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SignalEscalate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.signalID(w, r)
	if !ok {
		return
	}

	var req domain.EscalateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			l.Warn("invalid JSON", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
			return
		}
	}

	sig, err := h.Lifecycle.Escalate(r.Context(), id, req.Reason)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("signal escalated",
		slog.String("id", id.String()),
		slog.Int("level", sig.EscalationLevel),
		slog.String("priority", string(sig.Priority)),
	)
	h.writeJSON(w, http.StatusOK, map[string]any{
		"id":               sig.ID.String(),
		"escalation_level": sig.EscalationLevel,
		"priority":         sig.Priority,
	})
}

func (h *Handler) SignalGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.signalID(w, r)
	if !ok {
		return
	}

	sig, err := h.Lifecycle.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, sig)
}

func (h *Handler) SignalList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	page := parseInt(r.URL.Query().Get("page"), 1)
	limit := parseInt(r.URL.Query().Get("limit"), 20)
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}

	filter, err := parseFilter(r)
	if err != nil {
		l.Warn("invalid filter", slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	signals, total, err := h.Lifecycle.List(r.Context(), filter, page, limit)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("signals listed", slog.Int("count", len(signals)), slog.Int64("total", total))
	h.writeJSON(w, http.StatusOK, map[string]any{
		"signals": signals,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	now := time.Now().UTC()
	from, err := parseTime(r.URL.Query().Get("from"), now.Add(-24*time.Hour))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "from must be RFC3339"})
		return
	}
	to, err := parseTime(r.URL.Query().Get("to"), now)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "to must be RFC3339"})
		return
	}

	stats, err := h.Stats.GetStats(r.Context(), from, to)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("stats computed", slog.Int64("total", stats.Total))
	h.writeJSON(w, http.StatusOK, stats)
}

func noteFrom(text, author string) *domain.Note {
	if text == "" {
		return nil
	}
	return &domain.Note{Text: text, Author: author}
}
