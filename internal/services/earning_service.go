package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	ErrInvalidEarningAmount = errors.New("gross amount must be positive and commission must be between 0 and gross")
)

// EarningService регистрирует продажи продавцов.
type EarningService interface {
	RecordEarning(ctx context.Context, vendorID uuid.UUID, orderRef string, gross, commission decimal.Decimal) (*models.Earning, error)
}

// EarningServiceImpl реализует EarningService.
type EarningServiceImpl struct {
	earnings EarningStorage
	vendors  VendorStorage
	logger   *zap.Logger
}

// NewEarningService создаёт сервис начислений.
func NewEarningService(earnings EarningStorage, vendors VendorStorage, logger *zap.Logger) *EarningServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EarningServiceImpl{earnings: earnings, vendors: vendors, logger: logger}
}

// RecordEarning сохраняет начисление в статусе pending. net = gross - commission.
func (s *EarningServiceImpl) RecordEarning(ctx context.Context, vendorID uuid.UUID, orderRef string, gross, commission decimal.Decimal) (*models.Earning, error) {
	if gross.LessThanOrEqual(decimal.Zero) || commission.IsNegative() || commission.GreaterThan(gross) {
		return nil, ErrInvalidEarningAmount
	}

	if _, err := s.vendors.GetByID(ctx, vendorID); err != nil {
		return nil, err
	}

	earning := &models.Earning{
		ID:               uuid.New(),
		VendorID:         vendorID,
		OrderRef:         strings.TrimSpace(orderRef),
		GrossAmount:      gross.Round(2),
		CommissionAmount: commission.Round(2),
		NetAmount:        gross.Sub(commission).Round(2),
		Status:           models.EarningStatusPending,
	}

	if err := s.earnings.Create(ctx, earning); err != nil {
		return nil, fmt.Errorf("record earning: %w", err)
	}

	s.logger.Info("earning recorded",
		zap.String("earning_id", earning.ID.String()),
		zap.String("vendor_id", vendorID.String()),
		zap.String("net", earning.NetAmount.String()))

	return earning, nil
}
