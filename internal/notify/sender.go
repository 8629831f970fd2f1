package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultTelegramAPIURL is the Bot API base used when none is configured.
const DefaultTelegramAPIURL = "https://api.telegram.org"

// Sender posts alert text to one chat service.
type Sender interface {
	Name() string
	Send(ctx context.Context, text string) error
}

// postJSON sends payload to endpoint and treats any non-2xx status as a
// failure. Endpoints carry credentials (webhook token, bot token), so
// transport errors are returned without the URL.
func postJSON(ctx context.Context, client *http.Client, endpoint string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", stripURL(err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", stripURL(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// stripURL drops the request URL from a *url.Error, keeping the cause.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// DiscordSender posts to a Discord incoming webhook.
type DiscordSender struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordSender returns a sender for webhookURL. A nil client uses
// http.DefaultClient.
func NewDiscordSender(webhookURL string, client *http.Client) *DiscordSender {
	if client == nil {
		client = http.DefaultClient
	}
	return &DiscordSender{webhookURL: webhookURL, client: client}
}

func (s *DiscordSender) Name() string { return "discord" }

func (s *DiscordSender) Send(ctx context.Context, text string) error {
	return postJSON(ctx, s.client, s.webhookURL, map[string]string{"content": text})
}

// TelegramSender posts through the Telegram Bot API sendMessage method.
type TelegramSender struct {
	apiURL string
	token  string
	chatID string
	client *http.Client
}

// NewTelegramSender returns a sender for the bot token and chat. An empty
// apiURL selects DefaultTelegramAPIURL.
func NewTelegramSender(apiURL, token, chatID string, client *http.Client) *TelegramSender {
	if apiURL == "" {
		apiURL = DefaultTelegramAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &TelegramSender{
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		chatID: chatID,
		client: client,
	}
}

func (s *TelegramSender) Name() string { return "telegram" }

func (s *TelegramSender) Send(ctx context.Context, text string) error {
	endpoint := s.apiURL + "/bot" + s.token + "/sendMessage"
	return postJSON(ctx, s.client, endpoint, map[string]string{"chat_id": s.chatID, "text": text})
}
