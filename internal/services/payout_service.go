package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/agamariel/vendorpay/internal/metrics"
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/reconcile"
	"github.com/agamariel/vendorpay/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidPayoutAmount  = errors.New("payout amount must be a positive value with at most two decimals")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrInsufficientBalance  = errors.New("Insufficient balance")
	ErrBankAccountRequired  = errors.New("bank account details are required before requesting a payout")
	ErrInvalidPayoutStatus  = errors.New("invalid payout status")
	ErrPayoutFinalized      = errors.New("payout is already completed or failed")
	ErrEarningsChanged      = errors.New("available earnings changed during reconciliation")
)

const (
	DefaultPayoutListLimit = 50
	MaxPayoutListLimit     = 100
)

// PayoutService описывает жизненный цикл выплат.
type PayoutService interface {
	GetAccountSummary(ctx context.Context, vendorID uuid.UUID) (*models.AccountSummary, error)
	RequestPayout(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal, paymentMethod string) (*models.Payout, error)
	ListPayouts(ctx context.Context, filter models.PayoutFilter) (*models.PayoutList, error)
	UpdateStatus(ctx context.Context, payoutID uuid.UUID, status models.PayoutStatus, failureReason string) (*models.Payout, error)
}

// PayoutServiceImpl реализует PayoutService.
type PayoutServiceImpl struct {
	db       TxBeginner
	payouts  PayoutStorage
	earnings EarningStorage
	vendors  VendorStorage
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time

	wg sync.WaitGroup
}

// NewPayoutService создаёт сервис выплат. notifier может быть nil.
func NewPayoutService(db TxBeginner, payouts PayoutStorage, earnings EarningStorage, vendors VendorStorage, notifier Notifier, logger *zap.Logger) *PayoutServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayoutServiceImpl{
		db:       db,
		payouts:  payouts,
		earnings: earnings,
		vendors:  vendors,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// GetAccountSummary возвращает суммы начислений продавца по статусам и историю выплат.
func (s *PayoutServiceImpl) GetAccountSummary(ctx context.Context, vendorID uuid.UUID) (*models.AccountSummary, error) {
	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	totals, err := s.earnings.TotalsByVendor(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("get earning totals: %w", err)
	}

	payouts, err := s.payouts.GetByVendorID(ctx, vendorID)
	if err != nil {
		return nil, fmt.Errorf("get vendor payouts: %w", err)
	}

	return &models.AccountSummary{
		Total:     totals.Total(),
		Available: totals.Available,
		Pending:   totals.Pending,
		Paid:      totals.Paid,
		Payouts:   payouts,
	}, nil
}

// RequestPayout создаёт заявку на выплату, если сумма не превышает доступный баланс.
// Строка продавца блокируется, поэтому заявки одного продавца проверяются по очереди.
func (s *PayoutServiceImpl) RequestPayout(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal, paymentMethod string) (*models.Payout, error) {
	if amount.LessThanOrEqual(decimal.Zero) || !amount.Equal(amount.Round(2)) {
		return nil, ErrInvalidPayoutAmount
	}
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodBankTransfer
	}
	if paymentMethod != models.PaymentMethodBankTransfer {
		return nil, ErrInvalidPaymentMethod
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	vendor, err := s.vendors.GetByIDForUpdateTx(ctx, tx, vendorID)
	if err != nil {
		return nil, err
	}
	if !vendor.HasBankAccount() {
		return nil, ErrBankAccountRequired
	}

	available, err := s.earnings.AvailableTotalTx(ctx, tx, vendorID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(available) {
		return nil, ErrInsufficientBalance
	}

	reference, err := utils.GenerateReference(s.now())
	if err != nil {
		return nil, err
	}

	payout := &models.Payout{
		ID:             uuid.New(),
		VendorID:       vendorID,
		Amount:         amount,
		Status:         models.PayoutStatusPending,
		PaymentMethod:  paymentMethod,
		PaymentDetails: vendor.PaymentDetails(),
		Reference:      reference,
	}
	if err := s.payouts.CreateTx(ctx, tx, payout); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	metrics.RecordPayoutRequested()
	s.logger.Info("payout requested",
		zap.String("payout_id", payout.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("amount", amount.String()),
		zap.String("available", available.String()),
		zap.String("reference", reference))

	return payout, nil
}

// ListPayouts возвращает страницу выплат и сводку начислений по продавцам.
func (s *PayoutServiceImpl) ListPayouts(ctx context.Context, filter models.PayoutFilter) (*models.PayoutList, error) {
	switch filter.Status {
	case "", models.PayoutStatusPending, models.PayoutStatusProcessing, models.PayoutStatusCompleted, models.PayoutStatusFailed:
	default:
		return nil, ErrInvalidPayoutStatus
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultPayoutListLimit
	}
	filter.Limit = min(filter.Limit, MaxPayoutListLimit)
	filter.Offset = max(filter.Offset, 0)

	payouts, total, err := s.payouts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list payouts: %w", err)
	}

	summary, err := s.earnings.SummaryByVendor(ctx, filter.VendorID)
	if err != nil {
		return nil, fmt.Errorf("summarize earnings: %w", err)
	}

	return &models.PayoutList{
		Payouts:          payouts,
		Total:            total,
		Limit:            filter.Limit,
		Offset:           filter.Offset,
		EarningsByVendor: summary,
	}, nil
}

// UpdateStatus переводит выплату в новый статус. Переход в completed сопоставляет
// выплату с самыми старыми доступными начислениями продавца в той же транзакции.
// Достаточность баланса здесь повторно не проверяется: недоплата только логируется.
func (s *PayoutServiceImpl) UpdateStatus(ctx context.Context, payoutID uuid.UUID, status models.PayoutStatus, failureReason string) (*models.Payout, error) {
	switch status {
	case models.PayoutStatusProcessing, models.PayoutStatusCompleted, models.PayoutStatusFailed:
	default:
		return nil, ErrInvalidPayoutStatus
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	payout, err := s.payouts.GetByIDForUpdateTx(ctx, tx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status.Final() {
		return nil, ErrPayoutFinalized
	}

	now := s.now().UTC()
	payout.Status = status

	var alloc *reconcile.Allocation
	switch status {
	case models.PayoutStatusProcessing:
		payout.FailureReason = nil
	case models.PayoutStatusFailed:
		reason := failureReason
		payout.FailureReason = &reason
	case models.PayoutStatusCompleted:
		earnings, err := s.earnings.ListAvailableForUpdateTx(ctx, tx, payout.VendorID)
		if err != nil {
			return nil, err
		}

		a := reconcile.Allocate(payout.Amount, earnings)
		marked, err := s.earnings.MarkPaidTx(ctx, tx, a.PaidIDs(), payout.ID, now)
		if err != nil {
			return nil, err
		}
		if marked != int64(len(a.Paid)) {
			return nil, fmt.Errorf("%w: marked %d of %d", ErrEarningsChanged, marked, len(a.Paid))
		}

		payout.AllocatedAmount = &a.Allocated
		payout.ProcessedAt = &now
		payout.FailureReason = nil
		alloc = &a
	}

	if err := s.payouts.UpdateStatusTx(ctx, tx, payout); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	metrics.RecordPayoutStatus(string(status))
	if alloc != nil {
		s.logReconciliation(payout, alloc)
	} else {
		s.logger.Info("payout status changed",
			zap.String("payout_id", payout.ID.String()),
			zap.String("status", string(status)))
	}

	s.notify(ctx, payout)

	return payout, nil
}

func (s *PayoutServiceImpl) logReconciliation(p *models.Payout, a *reconcile.Allocation) {
	metrics.RecordEarningsPaid(len(a.Paid))

	fields := []zap.Field{
		zap.String("payout_id", p.ID.String()),
		zap.String("vendor_id", p.VendorID.String()),
		zap.String("requested", a.Requested.String()),
		zap.String("allocated", a.Allocated.String()),
		zap.Int("paid", len(a.Paid)),
		zap.Int("skipped", len(a.Skipped)),
	}

	if a.Underpaid() {
		metrics.RecordUnderpaid()
		s.logger.Warn("payout completed with shortfall", append(fields, zap.String("remaining", a.Remaining.String()))...)
		return
	}
	s.logger.Info("payout reconciled", fields...)
}

// notify отправляет письмо в фоне. Ошибки только логируются.
func (s *PayoutServiceImpl) notify(ctx context.Context, payout *models.Payout) {
	if s.notifier == nil {
		return
	}

	ctx = context.WithoutCancel(ctx)
	snapshot := *payout

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		vendor, err := s.vendors.GetByID(ctx, snapshot.VendorID)
		if err != nil {
			s.logger.Error("load vendor for notification", zap.String("payout_id", snapshot.ID.String()), zap.Error(err))
			return
		}
		if err := s.notifier.PayoutStatusChanged(ctx, vendor, &snapshot); err != nil {
			s.logger.Error("payout notification failed", zap.String("payout_id", snapshot.ID.String()), zap.Error(err))
		}
	}()
}

// Wait дожидается фоновых уведомлений.
func (s *PayoutServiceImpl) Wait() {
	s.wg.Wait()
}
