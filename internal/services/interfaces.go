package services

import (
	"context"
	"time"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// TxBeginner открывает транзакции. *pgxpool.Pool удовлетворяет этому интерфейсу.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// UserStorage определяет интерфейс для работы с пользователями.
type UserStorage interface {
	Create(ctx context.Context, user *models.User) error
	CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// VendorStorage определяет интерфейс для работы с продавцами.
type VendorStorage interface {
	CreateTx(ctx context.Context, tx pgx.Tx, v *models.Vendor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Vendor, error)
	UpdateBankAccount(ctx context.Context, id uuid.UUID, account models.PaymentDetails) error
}

// EarningStorage определяет интерфейс для работы с начислениями.
type EarningStorage interface {
	Create(ctx context.Context, e *models.Earning) error
	TotalsByVendor(ctx context.Context, vendorID uuid.UUID) (*models.EarningTotals, error)
	AvailableTotalTx(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) (decimal.Decimal, error)
	ListAvailableForUpdateTx(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) ([]*models.Earning, error)
	MarkPaidTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID, payoutID uuid.UUID, paidAt time.Time) (int64, error)
	SummaryByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.VendorEarningsSummary, error)
	ReleasePending(ctx context.Context, cutoff, now time.Time) (int64, error)
}

// PayoutStorage определяет интерфейс для работы с выплатами.
type PayoutStorage interface {
	CreateTx(ctx context.Context, tx pgx.Tx, p *models.Payout) error
	GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Payout, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, p *models.Payout) error
	GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*models.Payout, error)
	List(ctx context.Context, f models.PayoutFilter) ([]*models.Payout, int, error)
}

// CatalogStorage определяет интерфейс чтения каталога.
type CatalogStorage interface {
	ListCategories(ctx context.Context, featuredOnly bool, limit int) ([]models.Category, error)
	ListProductRefs(ctx context.Context) ([]models.ProductRef, error)
}

// Notifier сообщает продавцу о смене статуса выплаты.
type Notifier interface {
	PayoutStatusChanged(ctx context.Context, vendor *models.Vendor, payout *models.Payout) error
}
