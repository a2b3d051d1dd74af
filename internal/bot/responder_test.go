package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"datebot/internal/clock"
	"datebot/internal/dateinput"
	"datebot/internal/integrations"
	"datebot/internal/logging"
	"datebot/internal/models"
	"datebot/internal/rate"
)

type sentMessage struct {
	chatID int64
	text   string
}

type fakeSender struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (f *fakeSender) SendMessage(_ context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text})
	return f.err
}

type fakeStore struct {
	attempts []models.ParseAttempt
}

func (f *fakeStore) RecordParseAttempt(_ context.Context, attempt models.ParseAttempt) (models.ParseAttempt, error) {
	f.attempts = append(f.attempts, attempt)
	return attempt, nil
}

func newTestResponder(sender Sender, store AttemptStore, limiter *rate.WindowLimiter) *Responder {
	now := time.Date(2026, 1, 27, 12, 0, 0, 0, time.FixedZone("MSK", 3*60*60))
	resolver := dateinput.New(clock.Fixed(now), logging.Discard())
	return NewResponder(resolver, sender, store, limiter, logging.Discard())
}

func textUpdate(chatID int64, text string) integrations.Update {
	return integrations.Update{
		UpdateID: 1,
		Message:  &integrations.Message{MessageID: 1, Text: text, Chat: integrations.Chat{ID: chatID}},
	}
}

func TestHandleRepliesWithFormattedDate(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	b := newTestResponder(sender, store, nil)

	tests := []struct {
		input string
		want  string
	}{
		{"27.01.2026", "«27» января 2026 г."},
		{"5 марта", "«05» марта 2026 г."},
		{"завтра", "«28» января 2026 г."},
		{"привет", repromptText},
	}
	for _, tt := range tests {
		if err := b.Handle(context.Background(), textUpdate(10, tt.input)); err != nil {
			t.Fatalf("handle %q: %v", tt.input, err)
		}
		last := sender.sent[len(sender.sent)-1]
		if last.chatID != 10 || last.text != tt.want {
			t.Fatalf("input %q: expected %q, got %q", tt.input, tt.want, last.text)
		}
	}

	if len(store.attempts) != 4 {
		t.Fatalf("expected 4 recorded attempts, got %d", len(store.attempts))
	}
	first := store.attempts[0]
	if !first.Recognized || first.Channel != models.ChannelTelegram || first.Day == nil || *first.Day != 27 {
		t.Fatalf("unexpected attempt: %+v", first)
	}
	if store.attempts[2].Source != string(dateinput.SourceKeyword) {
		t.Fatalf("expected keyword source, got %q", store.attempts[2].Source)
	}
	if last := store.attempts[3]; last.Recognized || last.Day != nil {
		t.Fatalf("expected unrecognized attempt, got %+v", last)
	}
}

func TestHandleCommands(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeStore{}
	b := newTestResponder(sender, store, nil)

	for _, cmd := range []string{"/start", "/help", "/start@datebot payload"} {
		if err := b.Handle(context.Background(), textUpdate(5, cmd)); err != nil {
			t.Fatalf("handle %q: %v", cmd, err)
		}
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 3 replies, got %d", len(sender.sent))
	}
	for _, msg := range sender.sent {
		if msg.text != usageText {
			t.Fatalf("expected usage text, got %q", msg.text)
		}
	}
	if len(store.attempts) != 0 {
		t.Fatalf("expected commands not to be recorded, got %d", len(store.attempts))
	}
}

func TestHandleIgnoresNonText(t *testing.T) {
	sender := &fakeSender{}
	b := newTestResponder(sender, nil, nil)

	updates := []integrations.Update{
		{UpdateID: 1},
		textUpdate(0, "27.01.2026"),
		textUpdate(3, "   "),
	}
	for _, u := range updates {
		if err := b.Handle(context.Background(), u); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no replies, got %d", len(sender.sent))
	}
}

func TestHandleRateLimitsPerChat(t *testing.T) {
	sender := &fakeSender{}
	b := newTestResponder(sender, nil, rate.NewWindowLimiter(2, time.Minute))

	for i := 0; i < 3; i++ {
		if err := b.Handle(context.Background(), textUpdate(1, "27.01.2026")); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}
	if err := b.Handle(context.Background(), textUpdate(2, "27.01.2026")); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.sent) != 3 {
		t.Fatalf("expected 2 replies to chat 1 and 1 to chat 2, got %d", len(sender.sent))
	}
}

func TestHandleReturnsSendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("boom")}
	b := newTestResponder(sender, nil, nil)
	if err := b.Handle(context.Background(), textUpdate(1, "27.01.2026")); err == nil {
		t.Fatalf("expected send error")
	}
}
