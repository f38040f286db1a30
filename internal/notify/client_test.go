package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResendClient_Send(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		wantErr    error
		wantRetry  time.Duration
	}{
		{name: "accepted", status: http.StatusOK},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "rate limited", status: http.StatusTooManyRequests, retryAfter: "3", wantRetry: 3 * time.Second},
		{name: "rate limited default", status: http.StatusTooManyRequests, wantRetry: 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Email
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/emails", r.URL.Path)
				assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
				require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"id":"email_1"}`))
			}))
			defer srv.Close()

			client := NewResendClient(srv.URL, "re_test", time.Second)
			err := client.Send(context.Background(), Email{
				From:    "payouts@example.com",
				To:      []string{"shop@example.com"},
				Subject: "hi",
				HTML:    "<p>hi</p>",
			})

			switch {
			case tt.wantRetry > 0:
				var rl RateLimitError
				require.True(t, errors.As(err, &rl), "expected RateLimitError, got %v", err)
				assert.Equal(t, tt.wantRetry, rl.RetryAfter)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				require.NoError(t, err)
				assert.Equal(t, []string{"shop@example.com"}, got.To)
				assert.Equal(t, "hi", got.Subject)
			}
		})
	}
}

func TestResendClient_UnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	err := NewResendClient(srv.URL, "re_test", time.Second).Send(context.Background(), Email{To: []string{"a@b.c"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

func TestResendClient_EmptyRecipient(t *testing.T) {
	err := NewResendClient("http://127.0.0.1:1", "re_test", time.Second).Send(context.Background(), Email{})
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 5*time.Second, parseRetryAfter(""))
	assert.Equal(t, 10*time.Second, parseRetryAfter("10"))
	assert.Equal(t, 5*time.Second, parseRetryAfter("soon"))

	future := time.Now().Add(30 * time.Second).UTC().Format(http.TimeFormat)
	d := parseRetryAfter(future)
	assert.True(t, d > 20*time.Second && d <= 30*time.Second, "got %s", d)
}
