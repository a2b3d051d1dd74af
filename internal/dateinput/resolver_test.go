package dateinput

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"datebot/internal/clock"
	"datebot/internal/dateparse"
)

var msk = time.FixedZone("MSK", 3*60*60)

func newTestResolver(now time.Time) *Resolver {
	logger := slog.New(slog.NewTextHandler(ioDiscard{}, nil))
	return New(clock.Fixed(now), logger)
}

type ioDiscard struct{}

func (ioDiscard) Write(p []byte) (int, error) { return len(p), nil }

func TestResolveKeywords(t *testing.T) {
	// 23:30 in Moscow on Jan 1; UTC is still Dec 31.
	r := newTestResolver(time.Date(2026, 1, 1, 23, 30, 0, 0, msk))
	tests := []struct {
		input string
		want  string
	}{
		{"сегодня", "2026-01-01"},
		{"Сегодня!", "2026-01-01"},
		{"  вчера ", "2025-12-31"},
		{"завтра.", "2026-01-02"},
		{"позавчера", "2025-12-30"},
		{"послезавтра", "2026-01-03"},
		{"Today", "2026-01-01"},
		{"yesterday", "2025-12-31"},
		{"tomorrow", "2026-01-02"},
	}
	for _, tt := range tests {
		res, err := r.Resolve(tt.input)
		if err != nil {
			t.Fatalf("Resolve(%q): unexpected error: %v", tt.input, err)
		}
		if res.Source != SourceKeyword {
			t.Fatalf("Resolve(%q): expected keyword source, got %q", tt.input, res.Source)
		}
		if got := res.Date.String(); got != tt.want {
			t.Fatalf("Resolve(%q): expected %s, got %s", tt.input, tt.want, got)
		}
	}
}

func TestResolveTextUsesReferenceYear(t *testing.T) {
	r := newTestResolver(time.Date(2025, 6, 15, 10, 0, 0, 0, msk))
	res, err := r.Resolve("27 января")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != SourceText || res.Rule != "month_name" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if got := res.Date.String(); got != "2025-01-27" {
		t.Fatalf("expected 2025-01-27, got %s", got)
	}
}

func TestResolveKeywordOnlyWhenWholeInput(t *testing.T) {
	r := newTestResolver(time.Date(2026, 3, 10, 9, 0, 0, 0, msk))
	if _, err := r.Resolve("сегодня или завтра"); !errors.Is(err, dateparse.ErrUnrecognized) {
		t.Fatalf("expected ErrUnrecognized, got %v", err)
	}
}

func TestResolveAtRejectsInvalidReference(t *testing.T) {
	r := newTestResolver(time.Date(2026, 3, 10, 9, 0, 0, 0, msk))
	_, err := r.ResolveAt("27.01.2026", dateparse.Reference{Day: 31, Month: 2, Year: 2026})
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
}

func TestResolveUnrecognized(t *testing.T) {
	r := newTestResolver(time.Date(2026, 3, 10, 9, 0, 0, 0, msk))
	if _, err := r.Resolve("когда-нибудь"); !errors.Is(err, dateparse.ErrUnrecognized) {
		t.Fatalf("expected ErrUnrecognized, got %v", err)
	}
}
