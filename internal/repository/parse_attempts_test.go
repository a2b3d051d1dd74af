package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"datebot/internal/db"
	"datebot/internal/models"
)

// TestParseAttemptsRoundTrip verifies attempts are stored, listed and counted.
func TestParseAttemptsRoundTrip(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, dsn)
	if err != nil {
		t.Fatalf("db connection: %v", err)
	}
	defer pool.Close()

	repo := New(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	since := time.Now().Add(-time.Second)
	day, month, year := 27, 1, 2026
	recognized, err := repo.RecordParseAttempt(ctx, models.ParseAttempt{
		Channel:    models.ChannelAPI,
		Input:      "27 января 2026",
		Recognized: true,
		Source:     "text",
		Rule:       "month_name",
		Day:        &day,
		Month:      &month,
		Year:       &year,
	})
	if err != nil {
		t.Fatalf("record recognized: %v", err)
	}
	if recognized.ID == 0 || recognized.CreatedAt.IsZero() {
		t.Fatalf("expected id and created_at to be set, got %+v", recognized)
	}
	if _, err := repo.RecordParseAttempt(ctx, models.ParseAttempt{
		Channel: models.ChannelTelegram,
		Input:   "когда-нибудь",
	}); err != nil {
		t.Fatalf("record unrecognized: %v", err)
	}

	items, err := repo.ListRecentParseAttempts(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(items))
	}
	if items[0].Recognized || items[0].Day != nil {
		t.Fatalf("expected newest attempt to be the unrecognized one, got %+v", items[0])
	}
	if items[1].Day == nil || *items[1].Day != 27 || items[1].Rule != "month_name" {
		t.Fatalf("unexpected recognized attempt: %+v", items[1])
	}

	stats, err := repo.ParseStats(ctx, since)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Total < 2 || stats.Recognized < 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ByChannel[models.ChannelTelegram] < 1 || stats.ByRule["month_name"] < 1 {
		t.Fatalf("unexpected breakdown: %+v", stats)
	}
}
