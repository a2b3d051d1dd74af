package main

import (
	"context"
	"log"
	"log/slog"
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
	"datebot/internal/integrations"
	"datebot/internal/logging"
	"datebot/internal/rate"
	"datebot/internal/repository"
)

const retryDelay = 5 * time.Second

type updateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]integrations.Update, error)
}

type updateHandler interface {
	Handle(ctx context.Context, update integrations.Update) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := cfg.RequireTelegram(); err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.Logging, nil)
	if err != nil {
		log.Fatalf("log error: %v", err)
	}
	defer func() {
		_ = cleanup()
	}()
	logger = logger.With("service", "bot")
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
		attemptStore = repo
	}

	telegram := integrations.NewTelegramClient(cfg.Telegram.Token, cfg.Telegram.APIURL)
	if err := telegram.DeleteWebhook(ctx); err != nil {
		logger.Warn("delete_webhook_failed", "error", err)
	}

	resolver := dateinput.New(clock.NewZoned(cfg.Location), logger)
	chatLimiter := rate.NewWindowLimiter(cfg.RateLimit.ChatPerMinute, time.Minute)
	responder := bot.NewResponder(resolver, telegram, attemptStore, chatLimiter, logger)

	logger.Info("bot_started", "timezone", cfg.Timezone, "poll_timeout", cfg.Telegram.PollTimeout)
	poll(ctx, telegram, responder, cfg.Telegram.PollTimeout, logger)
	logger.Info("shutdown", "service", "bot")
}

// poll feeds updates to handler until ctx is done. The offset only moves past
// an update once it has been handed over, so a crash re-delivers at most the
// current batch.
func poll(ctx context.Context, source updateSource, handler updateHandler, timeout time.Duration, logger *slog.Logger) {
	var offset int64
	for {
		if ctx.Err() != nil {
			return
		}
		updates, err := source.GetUpdates(ctx, offset, timeout)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("get_updates_error", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}
		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			if err := handler.Handle(ctx, update); err != nil {
				logger.Warn("update_failed", "update_id", update.UpdateID, "error", err)
			}
		}
	}
}
