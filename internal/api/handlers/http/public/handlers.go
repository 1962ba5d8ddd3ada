package public

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"sosEngine/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type SignalCreator interface {
	Create(ctx context.Context, req domain.CreateSignalRequest) (uuid.UUID, error)
}

type ClusterGetter interface {
	GetClusters(ctx context.Context, radiusKm float64) ([]domain.Cluster, error)
}

type Handler struct {
	logger   *slog.Logger
	Signals  SignalCreator
	Clusters ClusterGetter
}

func NewHandler(logger *slog.Logger, signals SignalCreator, clusters ClusterGetter) *Handler {
	return &Handler{
		logger:   logger,
		Signals:  signals,
		Clusters: clusters,
	}
}

func (h *Handler) SignalCreate(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSignalRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	id, err := h.Signals.Create(r.Context(), req)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.logger.Info("signal ingested",
		slog.String("id", id.String()),
		slog.String("emergency_type", string(req.EmergencyType)),
	)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) ClusterList(w http.ResponseWriter, r *http.Request) {
	var radiusKm float64
	if s := r.URL.Query().Get("radius_km"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "radius_km must be a non-negative number"})
			return
		}
		radiusKm = v
	}

	clusters, err := h.Clusters.GetClusters(r.Context(), radiusKm)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"clusters": clusters})
}
