package admin

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"sosEngine/internal/domain"
	"sosEngine/pkg/e"
)

// handleError keeps the error kinds distinguishable for the dashboard:
// a rejected edge, a forbidden state, a lost write race, and a missing
// record each need their own message.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	l := h.log(r)

	l.Error("handler error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)

	switch {
	case errors.Is(err, e.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "record no longer exists"})
	case errors.Is(err, e.ErrInvalidTransition):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "transition not allowed from current status"})
	case errors.Is(err, e.ErrInvalidState):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "operation not permitted in current status"})
	case errors.Is(err, e.ErrStaleState):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": "data changed, please refresh"})
	case errors.Is(err, e.ErrValidation):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid input"})
	default:
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseTime(s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	return time.Parse(time.RFC3339, s)
}

func parseFilter(r *http.Request) (domain.ListSignalsFilter, error) {
	var filter domain.ListSignalsFilter

	if s := r.URL.Query().Get("status"); s != "" {
		status := domain.SignalStatus(s)
		if !status.Valid() {
			return filter, fmt.Errorf("unknown status %q", s)
		}
		filter.Status = &status
	}
	if p := r.URL.Query().Get("priority"); p != "" {
		priority := domain.SignalPriority(p)
		if !priority.Valid() {
			return filter, fmt.Errorf("unknown priority %q", p)
		}
		filter.Priority = &priority
	}
	if f := r.URL.Query().Get("from"); f != "" {
		t, err := time.Parse(time.RFC3339, f)
		if err != nil {
			return filter, fmt.Errorf("from must be RFC3339")
		}
		filter.From = &t
	}
	if t := r.URL.Query().Get("to"); t != "" {
		ts, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return filter, fmt.Errorf("to must be RFC3339")
		}
		filter.To = &ts
	}

	return filter, nil
}
