package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTelegramAPIURL = "https://api.telegram.org"

// TelegramClient talks to the Bot API.
type TelegramClient struct {
	token   string
	baseURL string
	client  *http.Client
}

// Update is the subset of a Bot API update the bot reacts to.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Text      string `json:"text"`
	Chat      Chat   `json:"chat"`
	From      *User  `json:"from,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// apiResponse is the Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// NewTelegramClient creates a client. An empty baseURL means the public Bot API.
func NewTelegramClient(token, baseURL string) *TelegramClient {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = defaultTelegramAPIURL
	}
	return &TelegramClient{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage sends a plain text message.
func (t *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	return t.post(ctx, "sendMessage", payload, nil)
}

// GetUpdates long-polls for updates after offset. The HTTP timeout is
// stretched past the poll timeout so the server answers first.
func (t *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	payload := map[string]interface{}{
		"offset":          offset,
		"timeout":         int(timeout.Seconds()),
		"allowed_updates": []string{"message"},
	}
	client := *t.client
	client.Timeout = timeout + 10*time.Second
	var updates []Update
	if err := t.do(ctx, &client, "getUpdates", payload, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// DeleteWebhook removes a configured webhook; getUpdates fails while one is set.
func (t *TelegramClient) DeleteWebhook(ctx context.Context) error {
	return t.post(ctx, "deleteWebhook", map[string]interface{}{}, nil)
}

func (t *TelegramClient) post(ctx context.Context, method string, payload map[string]interface{}, result interface{}) error {
	return t.do(ctx, t.client, method, payload, result)
}

func (t *TelegramClient) do(ctx context.Context, client *http.Client, method string, payload map[string]interface{}, result interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/%s", t.baseURL, t.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("telegram %s status %d", method, resp.StatusCode)
	}
	var envelope apiResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("telegram %s: decode response: %w", method, err)
	}
	if !envelope.OK {
		return fmt.Errorf("telegram %s: %s", method, envelope.Description)
	}
	if result != nil && len(envelope.Result) > 0 {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("telegram %s: decode result: %w", method, err)
		}
	}
	return nil
}
