package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PayoutNotifier сообщает продавцу о смене статуса выплаты.
// Без клиента работает как no-op.
type PayoutNotifier struct {
	client  Client
	from    string
	timeout time.Duration
	logger  *zap.Logger
}

// NewPayoutNotifier создаёт уведомитель. client может быть nil.
func NewPayoutNotifier(client Client, from string, logger *zap.Logger) *PayoutNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutNotifier{
		client:  client,
		from:    from,
		timeout: 10 * time.Second,
		logger:  logger,
	}
}

// Enabled сообщает, настроена ли отправка.
func (n *PayoutNotifier) Enabled() bool {
	return n != nil && n.client != nil
}

// PayoutStatusChanged отправляет письмо о новом статусе выплаты.
// При RateLimitError делается одна повторная попытка после паузы.
func (n *PayoutNotifier) PayoutStatusChanged(ctx context.Context, vendor *models.Vendor, payout *models.Payout) error {
	if !n.Enabled() {
		return nil
	}

	email, ok := n.render(vendor, payout)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	err := n.client.Send(ctx, email)
	var rl RateLimitError
	if errors.As(err, &rl) {
		n.logger.Warn("email rate limited, retrying",
			zap.String("payout_id", payout.ID.String()),
			zap.Duration("retry_after", rl.RetryAfter))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rl.RetryAfter):
		}
		err = n.client.Send(ctx, email)
	}
	if err != nil {
		return fmt.Errorf("notify vendor: %w", err)
	}

	n.logger.Info("payout notification sent",
		zap.String("payout_id", payout.ID.String()),
		zap.String("status", string(payout.Status)))
	return nil
}

func (n *PayoutNotifier) render(vendor *models.Vendor, payout *models.Payout) (Email, bool) {
	name := html.EscapeString(vendor.Name)
	ref := html.EscapeString(payout.Reference)

	var subject, body string
	switch payout.Status {
	case models.PayoutStatusProcessing:
		subject = "Your payout is being processed"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your payout <b>%s</b> of %s is now being processed.</p>",
			name, ref, payout.Amount.StringFixed(2))
	case models.PayoutStatusCompleted:
		paid := decimal.Zero
		if payout.AllocatedAmount != nil {
			paid = *payout.AllocatedAmount
		}
		subject = "Your payout is complete"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your payout <b>%s</b> is complete.</p><p>Requested: %s<br>Paid: %s</p>",
			name, ref, payout.Amount.StringFixed(2), paid.StringFixed(2))
	case models.PayoutStatusFailed:
		reason := "no reason given"
		if payout.FailureReason != nil && *payout.FailureReason != "" {
			reason = *payout.FailureReason
		}
		subject = "Your payout failed"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your payout <b>%s</b> of %s failed.</p><p>Reason: %s</p>",
			name, ref, payout.Amount.StringFixed(2), html.EscapeString(reason))
	default:
		return Email{}, false
	}

	return Email{
		From:    n.from,
		To:      []string{vendor.Email},
		Subject: subject,
		HTML:    body,
	}, true
}
