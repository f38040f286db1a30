// Package notify отправляет транзакционные письма продавцам через Resend.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

var (
	ErrUnauthorized  = errors.New("email provider rejected api key")
	ErrInvalidEmail  = errors.New("invalid email")
	defaultRateLimit = 5 * time.Second
)

// DefaultBaseURL - адрес API Resend.
const DefaultBaseURL = "https://api.resend.com"

// RateLimitError содержит паузу, которую рекомендует сервис.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e RateLimitError) Error() string {
	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}

// Email - одно исходящее письмо.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Client интерфейс отправки писем.
type Client interface {
	Send(ctx context.Context, email Email) error
}

type sendResponse struct {
	ID string `json:"id"`
}

// ResendClient реализует Client поверх HTTP API Resend.
type ResendClient struct {
	client *resty.Client
}

// NewResendClient создаёт HTTP-клиент.
func NewResendClient(baseURL, apiKey string, timeout time.Duration) *ResendClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &ResendClient{client: client}
}

// Send отправляет письмо.
func (c *ResendClient) Send(ctx context.Context, email Email) error {
	if len(email.To) == 0 || email.To[0] == "" {
		return ErrInvalidEmail
	}

	var result sendResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(email).
		SetResult(&result).
		Post("/emails")
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	switch code := resp.StatusCode(); {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests:
		return RateLimitError{RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After"))}
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("unexpected email provider status: %d", code)
	}
}

func parseRetryAfter(val string) time.Duration {
	if val == "" {
		return defaultRateLimit
	}
	// support seconds value
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	// try http-date
	if t, err := http.ParseTime(val); err == nil {
		return time.Until(t)
	}
	return defaultRateLimit
}
