package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"datebot/internal/bot"
	"datebot/internal/dateinput"
	"datebot/internal/dateparse"
	"datebot/internal/models"
)

type parseDateRequest struct {
	Text      string `json:"text" validate:"required,max=512"`
	Reference string `json:"reference" validate:"omitempty,datetime=2006-01-02"`
}

type formatDateRequest struct {
	Day   int `json:"day" validate:"required"`
	Month int `json:"month" validate:"required"`
	Year  int `json:"year" validate:"required"`
}

type dateFields struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

type parseDateResponse struct {
	Date      dateFields `json:"date"`
	ISO       string     `json:"iso"`
	Formatted string     `json:"formatted"`
	Source    string     `json:"source"`
	Rule      string     `json:"rule"`
}

type formatDateResponse struct {
	ISO       string `json:"iso"`
	Formatted string `json:"formatted"`
}

func (h *Handler) ParseDate(w http.ResponseWriter, r *http.Request) {
	logger := h.loggerForRequest(r)
	var req parseDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "text required (max 512 chars), reference must be YYYY-MM-DD")
		return
	}

	ref := h.resolver.Today()
	if req.Reference != "" {
		parsed, err := time.Parse("2006-01-02", req.Reference)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid reference")
			return
		}
		ref = dateparse.ReferenceFrom(parsed)
	}

	result, err := h.resolver.ResolveAt(req.Text, ref)
	h.recordAttempt(r, req.Text, result, err)
	switch {
	case errors.Is(err, dateinput.ErrInvalidReference):
		writeError(w, http.StatusBadRequest, "invalid reference")
		return
	case errors.Is(err, dateparse.ErrUnrecognized):
		logger.Info("action", "action", "parse_date", "status", "unrecognized")
		writeError(w, http.StatusUnprocessableEntity, "date not recognized")
		return
	case err != nil:
		logger.Error("action", "action", "parse_date", "status", "failed", "error", err)
		writeError(w, http.StatusInternalServerError, "parse failed")
		return
	}

	logger.Info("action", "action", "parse_date", "status", "recognized", "rule", result.Rule)
	d := result.Date
	writeJSON(w, http.StatusOK, parseDateResponse{
		Date:      dateFields{Day: d.Day(), Month: d.Month(), Year: d.Year()},
		ISO:       d.String(),
		Formatted: dateparse.Format(d),
		Source:    string(result.Source),
		Rule:      result.Rule,
	})
}

func (h *Handler) FormatDate(w http.ResponseWriter, r *http.Request) {
	var req formatDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "day, month and year required")
		return
	}
	d, ok := dateparse.NewCalendarDate(req.Day, req.Month, req.Year)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	writeJSON(w, http.StatusOK, formatDateResponse{ISO: d.String(), Formatted: dateparse.Format(d)})
}

func (h *Handler) recordAttempt(r *http.Request, text string, result dateinput.Result, resolveErr error) {
	if h.store == nil {
		return
	}
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	if _, err := h.store.RecordParseAttempt(ctx, bot.Attempt(models.ChannelAPI, text, result, resolveErr)); err != nil {
		h.loggerForRequest(r).Warn("action", "action", "record_attempt", "status", "failed", "error", err)
	}
}
