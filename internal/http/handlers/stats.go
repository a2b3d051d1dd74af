package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const defaultStatsWindow = 7 * 24 * time.Hour

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "parse log disabled")
		return
	}
	since := time.Now().Add(-defaultStatsWindow)
	if v := strings.TrimSpace(r.URL.Query().Get("since")); v != "" {
		parsed, ok := h.parseSince(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid since")
			return
		}
		since = parsed
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	stats, err := h.store.ParseStats(ctx, since)
	if err != nil {
		h.loggerForRequest(r).Error("action", "action", "parse_stats", "status", "db_error", "error", err)
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Attempts(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeError(w, http.StatusServiceUnavailable, "parse log disabled")
		return
	}
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	items, err := h.store.ListRecentParseAttempts(ctx, limit)
	if err != nil {
		h.loggerForRequest(r).Error("action", "action", "list_attempts", "status", "db_error", "error", err)
		writeError(w, http.StatusInternalServerError, "db error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// parseSince accepts RFC 3339 or a bare date taken at midnight in the
// configured timezone.
func (h *Handler) parseSince(v string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	loc := time.UTC
	if h.cfg != nil && h.cfg.Location != nil {
		loc = h.cfg.Location
	}
	t, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
