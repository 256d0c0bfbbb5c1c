package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"
)

// ErrNotConfigured indicates the mail provider API key is missing, so sending
// is disabled.
var ErrNotConfigured = errors.New("mail sending disabled: missing API key (set MAIL_API_KEY or RESEND_API_KEY)")

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Client exposes email delivery.
type Client interface {
	Send(ctx context.Context, msg Message) error
}

// HTTPClient implements Client against a Resend-compatible HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	from       string
	httpClient *http.Client
	logger     *slog.Logger
}

// request mirrors the JSON payload of the provider's send endpoint.
type request struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewHTTPClient creates HTTP mail client with default timeout.
func NewHTTPClient(baseURL, apiKey, from string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse mail url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("mail url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		from:    from,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Send delivers a single email through the provider.
func (c *HTTPClient) Send(ctx context.Context, msg Message) error {
	if c.apiKey == "" {
		return ErrNotConfigured
	}

	payload, err := json.Marshal(request{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/emails")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	c.logger.Error("mail request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
	return fmt.Errorf("mail error: %s", resp.Status)
}
