package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"datebot/internal/integrations"
)

const telegramSecretHeader = "X-Telegram-Bot-Api-Secret-Token"

// TelegramWebhook feeds an update to the bot. Telegram retries anything but
// 2xx, so reply failures are logged and still answered with 200.
func (h *Handler) TelegramWebhook(w http.ResponseWriter, r *http.Request) {
	if h.bot == nil {
		writeError(w, http.StatusNotFound, "telegram disabled")
		return
	}
	logger := h.loggerForRequest(r)
	if secret := h.webhookSecret(); secret != "" {
		got := r.Header.Get(telegramSecretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(secret)) != 1 {
			logger.Warn("action", "action", "telegram_webhook", "status", "bad_secret")
			writeError(w, http.StatusUnauthorized, "invalid secret")
			return
		}
	}

	var update integrations.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "invalid_json")
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()
	if err := h.bot.Handle(ctx, update); err != nil {
		logger.Warn("action", "action", "telegram_webhook", "status", "reply_failed", "error", err)
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) webhookSecret() string {
	if h.cfg == nil {
		return ""
	}
	return h.cfg.Telegram.WebhookSecret
}
