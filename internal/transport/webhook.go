package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// WebhookSender delivers outbound texts by POSTing them to a configured URL.
// The receiving side owns the actual chat platform integration. With no URL
// configured messages go to the log instead, which keeps local development
// working without any external service.
type WebhookSender struct {
	url    string
	client *http.Client
	logger *log.Logger
}

func NewWebhookSender(url string, logger *log.Logger) *WebhookSender {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type outboundMessage struct {
	ChatID int64  `json:"chatId"`
	Text   string `json:"text"`
}

func (s *WebhookSender) SendText(ctx context.Context, chatID int64, text string) error {
	if s.url == "" {
		s.logger.Printf("outbound chat_id=%d text=%q", chatID, text)
		return nil
	}
	body, err := json.Marshal(outboundMessage{ChatID: chatID, Text: text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
	return nil
}
