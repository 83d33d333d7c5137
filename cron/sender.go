package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// WebhookSender delivers outbound messages by POSTing them to the chat
// transport's webhook. With no URL configured it degrades to logging, which
// keeps the reminder worker harmless in deployments without a transport
// webhook.
type WebhookSender struct {
	URL    string
	Client *http.Client
}

func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookSender) SendMessage(ctx context.Context, clientName, text string) error {
	if s.URL == "" {
		zap.L().Info("reminder (no transport webhook configured)",
			zap.String("client", clientName),
			zap.String("text", text))
		return nil
	}

	body, err := json.Marshal(map[string]string{
		"clientName": clientName,
		"text":       text,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver to transport webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("transport webhook returned %s", resp.Status)
	}
	return nil
}
