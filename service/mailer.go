package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"

	"ui-design-gallery/config"
)

// Mailer sends transactional email
type Mailer interface {
	SendWelcome(ctx context.Context, email string) (string, error)
}

// HTTPMailer posts messages to a Resend-compatible JSON API
type HTTPMailer struct {
	cfg     config.MailConfig
	baseURL string
	client  *http.Client
}

// NewHTTPMailer creates a new HTTPMailer. baseURL is used for the unsubscribe link.
func NewHTTPMailer(cfg config.MailConfig, baseURL string) *HTTPMailer {
	return &HTTPMailer{
		cfg:     cfg,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Mailer = (*HTTPMailer)(nil)

type mailMessage struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// SendWelcome sends the welcome email and returns the provider message id
func (m *HTTPMailer) SendWelcome(ctx context.Context, email string) (string, error) {
	if m.cfg.APIKey == "" {
		return "", fmt.Errorf("mail API key not configured")
	}

	body, err := json.Marshal(mailMessage{
		From:    m.cfg.From,
		To:      []string{email},
		Subject: "Welcome to the design gallery",
		HTML: fmt.Sprintf(`<p>Thanks for subscribing! New AI-generated designs land in your inbox every week.</p>`+
			`<p><a href="%s/newsletter/unsubscribe?email=%s">Unsubscribe</a></p>`, m.baseURL, url.QueryEscape(email)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode mail message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send mail: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", fmt.Errorf("failed to read mail response: %w", err)
	}

	if resp.StatusCode >= 300 {
		msg := gjson.GetBytes(respBody, "message").String()
		if msg == "" {
			msg = string(respBody)
		}
		return "", fmt.Errorf("mail API returned status %d: %s", resp.StatusCode, msg)
	}

	id := gjson.GetBytes(respBody, "id")
	if !id.Exists() {
		return "", fmt.Errorf("mail API response has no id")
	}
	return id.String(), nil
}
