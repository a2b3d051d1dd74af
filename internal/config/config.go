package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"datebot/internal/clock"
)

type Config struct {
	Env         string
	HTTPAddr    string
	Timezone    string
	Location    *time.Location
	DatabaseURL string
	JWTSecret   string
	Telegram    TelegramConfig
	RateLimit   RateLimitConfig
	Logging     LoggingConfig
}

type TelegramConfig struct {
	Token         string
	APIURL        string
	WebhookSecret string
	PollTimeout   time.Duration
}

type RateLimitConfig struct {
	APIRPS        float64
	APIBurst      int
	ChatPerMinute int
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// Load reads the configuration from the environment. Every integration is
// optional here; binaries that need one check it themselves.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         getenv("APP_ENV", "dev"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		Timezone:    getenv("TIMEZONE", clock.DefaultZone),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Telegram: TelegramConfig{
			Token:         os.Getenv("TELEGRAM_BOT_TOKEN"),
			APIURL:        strings.TrimRight(getenv("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
			WebhookSecret: os.Getenv("TELEGRAM_WEBHOOK_SECRET"),
			PollTimeout:   getenvDuration("TELEGRAM_POLL_TIMEOUT", 30*time.Second),
		},
		RateLimit: RateLimitConfig{
			APIRPS:        getenvFloat("API_RATE_RPS", 5),
			APIBurst:      getenvInt("API_RATE_BURST", 10),
			ChatPerMinute: getenvInt("CHAT_RATE_LIMIT", 20),
		},
		Logging: LoggingConfig{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "text"),
			File:   os.Getenv("LOG_FILE"),
		},
	}

	loc, err := clock.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.RateLimit.APIRPS <= 0 {
		return nil, fmt.Errorf("API_RATE_RPS must be positive")
	}
	if cfg.RateLimit.APIBurst <= 0 {
		return nil, fmt.Errorf("API_RATE_BURST must be positive")
	}

	return cfg, nil
}

// RequireTelegram fails when the bot token is missing.
func (c *Config) RequireTelegram() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return parsed
}
