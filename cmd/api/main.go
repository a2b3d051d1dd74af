package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"datebot/internal/bot"
	"datebot/internal/clock"
	"datebot/internal/config"
	"datebot/internal/dateinput"
	"datebot/internal/db"
	"datebot/internal/http/handlers"
	"datebot/internal/http/middleware"
	"datebot/internal/integrations"
	"datebot/internal/logging"
	"datebot/internal/rate"
	"datebot/internal/repository"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.Logging, nil)
	if err != nil {
		log.Fatalf("log error: %v", err)
	}
	defer func() {
		_ = cleanup()
	}()
	logger = logger.With("service", "api")
	slog.SetDefault(logger)

	ctx := context.Background()
	var store handlers.Store
	var attemptStore bot.AttemptStore
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db error", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo := repository.New(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			logger.Error("schema error", "error", err)
			os.Exit(1)
		}
		store = repo
		attemptStore = repo
	} else {
		logger.Warn("parse_log_disabled", "reason", "DATABASE_URL not set")
	}

	resolver := dateinput.New(clock.NewZoned(cfg.Location), logger)

	var responder *bot.Responder
	if cfg.Telegram.Token != "" {
		telegram := integrations.NewTelegramClient(cfg.Telegram.Token, cfg.Telegram.APIURL)
		chatLimiter := rate.NewWindowLimiter(cfg.RateLimit.ChatPerMinute, time.Minute)
		responder = bot.NewResponder(resolver, telegram, attemptStore, chatLimiter, logger.With("component", "bot"))
	}

	h := handlers.New(resolver, store, responder, cfg, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(10 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/healthz", h.Healthz)
	r.Post("/telegram/webhook", h.TelegramWebhook)

	r.Route("/v1", func(r chi.Router) {
		if cfg.JWTSecret != "" {
			r.Use(middleware.ClientAuth(cfg.JWTSecret))
		} else {
			logger.Warn("api_auth_disabled", "reason", "JWT_SECRET not set")
		}
		r.Use(middleware.RateLimit(rate.NewKeyedLimiter(cfg.RateLimit.APIRPS, cfg.RateLimit.APIBurst)))
		r.Post("/dates/parse", h.ParseDate)
		r.Post("/dates/format", h.FormatDate)
		r.Get("/stats", h.Stats)
		r.Get("/attempts", h.Attempts)
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "addr", cfg.HTTPAddr, "timezone", cfg.Timezone)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutdown", "service", "api")
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
