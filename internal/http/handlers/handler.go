package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"datebot/internal/bot"
	"datebot/internal/config"
	"datebot/internal/dateinput"
	authmw "datebot/internal/http/middleware"
	"datebot/internal/models"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Store is the parse log. The API runs without one; the endpoints that read
// it answer 503 then.
type Store interface {
	bot.AttemptStore
	ListRecentParseAttempts(ctx context.Context, limit int) ([]models.ParseAttempt, error)
	ParseStats(ctx context.Context, since time.Time) (models.ParseStats, error)
}

type Handler struct {
	resolver  *dateinput.Resolver
	store     Store
	bot       *bot.Responder
	cfg       *config.Config
	logger    *slog.Logger
	validator *validator.Validate
}

// New creates the handler set. store and responder may be nil.
func New(resolver *dateinput.Resolver, store Store, responder *bot.Responder, cfg *config.Config, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		resolver:  resolver,
		store:     store,
		bot:       responder,
		cfg:       cfg,
		logger:    logger,
		validator: validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 5*time.Second)
}

func (h *Handler) loggerForRequest(r *http.Request) *slog.Logger {
	logger := h.logger
	if logger == nil {
		return slog.Default()
	}
	if reqID := chimw.GetReqID(r.Context()); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if clientID, ok := authmw.ClientIDFromContext(r.Context()); ok {
		logger = logger.With("client_id", clientID)
	}
	return logger
}
