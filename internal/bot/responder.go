// Package bot answers Telegram messages with the date they contain.
package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"datebot/internal/dateinput"
	"datebot/internal/dateparse"
	"datebot/internal/integrations"
	"datebot/internal/models"
	"datebot/internal/rate"
)

const (
	usageText = "Пришлите дату в любом привычном виде, например: 27.01.2026, 27 января 2026, 2026-01-27 или «завтра». " +
		"Я отвечу датой в формате «27» января 2026 г."
	repromptText = "Не удалось распознать дату. Пожалуйста, укажите дату, например: 27.01.2026 или 27 января 2026."
)

// Sender delivers replies.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// AttemptStore records parse attempts.
type AttemptStore interface {
	RecordParseAttempt(ctx context.Context, attempt models.ParseAttempt) (models.ParseAttempt, error)
}

// Responder handles one update at a time and is safe for concurrent use.
type Responder struct {
	resolver *dateinput.Resolver
	sender   Sender
	store    AttemptStore
	limiter  *rate.WindowLimiter
	logger   *slog.Logger
}

// NewResponder creates a responder. store and limiter may be nil.
func NewResponder(resolver *dateinput.Resolver, sender Sender, store AttemptStore, limiter *rate.WindowLimiter, logger *slog.Logger) *Responder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		resolver: resolver,
		sender:   sender,
		store:    store,
		limiter:  limiter,
		logger:   logger,
	}
}

// Handle replies to a text message. Other updates are ignored.
func (b *Responder) Handle(ctx context.Context, update integrations.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat.ID == 0 {
		return nil
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	logger := b.logger.With("chat_id", msg.Chat.ID, "update_id", update.UpdateID)

	if !b.limiter.Allow(strconv.FormatInt(msg.Chat.ID, 10)) {
		logger.Warn("action", "action", "bot_message", "status", "rate_limited")
		return nil
	}

	if isCommand(text, "/start") || isCommand(text, "/help") {
		return b.reply(ctx, logger, msg.Chat.ID, usageText)
	}

	result, err := b.resolver.Resolve(text)
	b.record(ctx, logger, text, result, err)
	if err != nil {
		if !errors.Is(err, dateparse.ErrUnrecognized) {
			logger.Error("action", "action", "bot_message", "status", "resolve_failed", "error", err)
		}
		return b.reply(ctx, logger, msg.Chat.ID, repromptText)
	}
	logger.Info("action", "action", "bot_message", "status", "recognized", "rule", result.Rule)
	return b.reply(ctx, logger, msg.Chat.ID, dateparse.Format(result.Date))
}

func (b *Responder) reply(ctx context.Context, logger *slog.Logger, chatID int64, text string) error {
	if err := b.sender.SendMessage(ctx, chatID, text); err != nil {
		logger.Error("action", "action", "bot_reply", "status", "send_failed", "error", err)
		return err
	}
	return nil
}

func (b *Responder) record(ctx context.Context, logger *slog.Logger, text string, result dateinput.Result, err error) {
	if b.store == nil {
		return
	}
	if _, storeErr := b.store.RecordParseAttempt(ctx, Attempt(models.ChannelTelegram, text, result, err)); storeErr != nil {
		logger.Warn("action", "action", "record_attempt", "status", "failed", "error", storeErr)
	}
}

// Attempt builds the log entry for one resolution.
func Attempt(channel, input string, result dateinput.Result, err error) models.ParseAttempt {
	attempt := models.ParseAttempt{Channel: channel, Input: input}
	if err != nil {
		return attempt
	}
	day, month, year := result.Date.Day(), result.Date.Month(), result.Date.Year()
	attempt.Recognized = true
	attempt.Source = string(result.Source)
	attempt.Rule = result.Rule
	attempt.Day = &day
	attempt.Month = &month
	attempt.Year = &year
	return attempt
}

// isCommand matches "/cmd", "/cmd args" and "/cmd@botname".
func isCommand(text, command string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return strings.EqualFold(name, command)
}
