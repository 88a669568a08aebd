package slack

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

// Service posts preformatted messages to an incoming-webhook URL.
type Service struct {
	webhookURL string
	httpClient *http.Client
}

// NewService creates a new empty service.
func NewService(webhookURL string) *Service {
	return &Service{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// PostMessage sends one text message. Any non-2xx response counts as a
// failed dispatch.
func (s Service) PostMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(Message{Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("Failed to create HTTP request: %v\n", err)
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("Webhook request failed: %v\n", err)
		return err
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		body, _ := io.ReadAll(response.Body)
		log.Printf("Webhook returned %d: %s\n", response.StatusCode, string(body))
		return &DispatchError{StatusCode: response.StatusCode, Body: string(body)}
	}
	return nil
}

// DispatchError is a non-success response from the webhook.
type DispatchError struct {
	StatusCode int
	Body       string
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("webhook dispatch failed with status %d", e.StatusCode)
}
