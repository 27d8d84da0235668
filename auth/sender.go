package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
)

// CodeSender delivers a one-time code to the buyer's email. Delivery is
// external; this module never sends mail itself.
type CodeSender interface {
	Send(ctx context.Context, email, code string) error
}

// WebhookSender posts the code to the configured mail webhook
// (OTP_WEBHOOK_URL), which owns templating and SMTP.
type WebhookSender struct {
	URL    string
	Client *http.Client
}

func NewWebhookSender() *WebhookSender {
	return &WebhookSender{
		URL:    os.Getenv("OTP_WEBHOOK_URL"),
		Client: &http.Client{},
	}
}

func (s *WebhookSender) Send(ctx context.Context, email, code string) error {
	if s.URL == "" {
		// Dev fallback: no mail hook configured, surface the code in the
		// server log so login still works locally.
		log.Printf("📧 OTP for %s: %s (OTP_WEBHOOK_URL not set)", email, code)
		return nil
	}

	payload := map[string]string{
		"email": email,
		"code":  code,
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach mail webhook: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail webhook error (%d)", resp.StatusCode)
	}
	return nil
}
