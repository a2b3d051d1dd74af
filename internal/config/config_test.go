package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"TIMEZONE", "DATABASE_URL", "JWT_SECRET", "TELEGRAM_BOT_TOKEN", "TELEGRAM_API_URL", "API_RATE_RPS", "API_RATE_BURST", "CHAT_RATE_LIMIT", "TELEGRAM_POLL_TIMEOUT"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Timezone != "Europe/Moscow" || cfg.Location == nil {
		t.Fatalf("expected Moscow timezone, got %q", cfg.Timezone)
	}
	if cfg.Telegram.APIURL != "https://api.telegram.org" {
		t.Fatalf("unexpected telegram api url %q", cfg.Telegram.APIURL)
	}
	if cfg.Telegram.PollTimeout != 30*time.Second {
		t.Fatalf("unexpected poll timeout %v", cfg.Telegram.PollTimeout)
	}
	if cfg.RateLimit.APIRPS != 5 || cfg.RateLimit.APIBurst != 10 || cfg.RateLimit.ChatPerMinute != 20 {
		t.Fatalf("unexpected rate limits: %+v", cfg.RateLimit)
	}
	if err := cfg.RequireTelegram(); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_API_URL", "http://localhost:9000/")
	t.Setenv("API_RATE_RPS", "2.5")
	t.Setenv("CHAT_RATE_LIMIT", "not-a-number")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Location != time.UTC {
		t.Fatalf("expected UTC location, got %v", cfg.Location)
	}
	if cfg.Telegram.APIURL != "http://localhost:9000" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.Telegram.APIURL)
	}
	if cfg.RateLimit.APIRPS != 2.5 {
		t.Fatalf("expected rps 2.5, got %v", cfg.RateLimit.APIRPS)
	}
	if cfg.RateLimit.ChatPerMinute != 20 {
		t.Fatalf("expected malformed value to fall back to default, got %d", cfg.RateLimit.ChatPerMinute)
	}
	if err := cfg.RequireTelegram(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Mars/Olympus")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}

func TestLoadRejectsNonPositiveRate(t *testing.T) {
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("API_RATE_RPS", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero rps")
	}
}
