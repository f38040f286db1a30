package storage

import (
	"context"
	"time"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// MockPayoutStorage - мок хранилища выплат.
type MockPayoutStorage struct {
	CreateTxFunc           func(ctx context.Context, tx pgx.Tx, p *models.Payout) error
	GetByIDForUpdateTxFunc func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Payout, error)
	UpdateStatusTxFunc     func(ctx context.Context, tx pgx.Tx, p *models.Payout) error
	GetByVendorIDFunc      func(ctx context.Context, vendorID uuid.UUID) ([]*models.Payout, error)
	ListFunc               func(ctx context.Context, f models.PayoutFilter) ([]*models.Payout, int, error)
}

func (m *MockPayoutStorage) CreateTx(ctx context.Context, tx pgx.Tx, p *models.Payout) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, p)
	}
	return nil
}

func (m *MockPayoutStorage) GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Payout, error) {
	if m.GetByIDForUpdateTxFunc != nil {
		return m.GetByIDForUpdateTxFunc(ctx, tx, id)
	}
	return nil, ErrPayoutNotFound
}

func (m *MockPayoutStorage) UpdateStatusTx(ctx context.Context, tx pgx.Tx, p *models.Payout) error {
	if m.UpdateStatusTxFunc != nil {
		return m.UpdateStatusTxFunc(ctx, tx, p)
	}
	return nil
}

func (m *MockPayoutStorage) GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*models.Payout, error) {
	if m.GetByVendorIDFunc != nil {
		return m.GetByVendorIDFunc(ctx, vendorID)
	}
	return []*models.Payout{}, nil
}

func (m *MockPayoutStorage) List(ctx context.Context, f models.PayoutFilter) ([]*models.Payout, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return []*models.Payout{}, 0, nil
}

// MockEarningStorage - мок хранилища начислений.
type MockEarningStorage struct {
	CreateFunc                   func(ctx context.Context, e *models.Earning) error
	TotalsByVendorFunc           func(ctx context.Context, vendorID uuid.UUID) (*models.EarningTotals, error)
	AvailableTotalTxFunc         func(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) (decimal.Decimal, error)
	ListAvailableForUpdateTxFunc func(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) ([]*models.Earning, error)
	MarkPaidTxFunc               func(ctx context.Context, tx pgx.Tx, ids []uuid.UUID, payoutID uuid.UUID, paidAt time.Time) (int64, error)
	SummaryByVendorFunc          func(ctx context.Context, vendorID uuid.UUID) ([]*models.VendorEarningsSummary, error)
	ReleasePendingFunc           func(ctx context.Context, cutoff, now time.Time) (int64, error)
}

func (m *MockEarningStorage) Create(ctx context.Context, e *models.Earning) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, e)
	}
	return nil
}

func (m *MockEarningStorage) TotalsByVendor(ctx context.Context, vendorID uuid.UUID) (*models.EarningTotals, error) {
	if m.TotalsByVendorFunc != nil {
		return m.TotalsByVendorFunc(ctx, vendorID)
	}
	return &models.EarningTotals{}, nil
}

func (m *MockEarningStorage) AvailableTotalTx(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) (decimal.Decimal, error) {
	if m.AvailableTotalTxFunc != nil {
		return m.AvailableTotalTxFunc(ctx, tx, vendorID)
	}
	return decimal.Zero, nil
}

func (m *MockEarningStorage) ListAvailableForUpdateTx(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) ([]*models.Earning, error) {
	if m.ListAvailableForUpdateTxFunc != nil {
		return m.ListAvailableForUpdateTxFunc(ctx, tx, vendorID)
	}
	return nil, nil
}

func (m *MockEarningStorage) MarkPaidTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID, payoutID uuid.UUID, paidAt time.Time) (int64, error) {
	if m.MarkPaidTxFunc != nil {
		return m.MarkPaidTxFunc(ctx, tx, ids, payoutID, paidAt)
	}
	return int64(len(ids)), nil
}

func (m *MockEarningStorage) SummaryByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.VendorEarningsSummary, error) {
	if m.SummaryByVendorFunc != nil {
		return m.SummaryByVendorFunc(ctx, vendorID)
	}
	return []*models.VendorEarningsSummary{}, nil
}

func (m *MockEarningStorage) ReleasePending(ctx context.Context, cutoff, now time.Time) (int64, error) {
	if m.ReleasePendingFunc != nil {
		return m.ReleasePendingFunc(ctx, cutoff, now)
	}
	return 0, nil
}

// MockCatalogStorage - мок хранилища каталога.
type MockCatalogStorage struct {
	ListCategoriesFunc  func(ctx context.Context, featuredOnly bool, limit int) ([]models.Category, error)
	ListProductRefsFunc func(ctx context.Context) ([]models.ProductRef, error)
}

func (m *MockCatalogStorage) ListCategories(ctx context.Context, featuredOnly bool, limit int) ([]models.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx, featuredOnly, limit)
	}
	return []models.Category{}, nil
}

func (m *MockCatalogStorage) ListProductRefs(ctx context.Context) ([]models.ProductRef, error) {
	if m.ListProductRefsFunc != nil {
		return m.ListProductRefsFunc(ctx)
	}
	return []models.ProductRef{}, nil
}
