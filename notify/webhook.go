package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// WebhookSink POSTs the JSON record to a fixed URL
// The Origin header identifies the sender to the receiving host
type WebhookSink struct {
	url    string
	origin string
	client *http.Client
}

// NewWebhookSink creates a webhook sink; a nil client uses http.DefaultClient
func NewWebhookSink(url, origin string, client *http.Client) *WebhookSink {
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookSink{url: url, origin: origin, client: client}
}

func (s *WebhookSink) Name() string { return "webhook" }

func (s *WebhookSink) Deliver(ctx context.Context, rec Record) error {
	body, err := rec.Marshal()
	if err != nil {
		return fmt.Errorf("webhook: encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.origin != "" {
		req.Header.Set("Origin", s.origin)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post %s: %w", s.url, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: post %s: %w: %s", s.url, ErrRejected, resp.Status)
	}
	return nil
}
