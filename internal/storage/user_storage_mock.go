package storage

import (
	"context"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MockUserStorage - мок для тестирования (экспортируемый для использования в других пакетах)
type MockUserStorage struct {
	CreateFunc     func(ctx context.Context, user *models.User) error
	CreateTxFunc   func(ctx context.Context, tx pgx.Tx, user *models.User) error
	GetByLoginFunc func(ctx context.Context, login string) (*models.User, error)
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*models.User, error)
}

func (m *MockUserStorage) Create(ctx context.Context, user *models.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStorage) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, user)
	}
	return nil
}

func (m *MockUserStorage) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.GetByLoginFunc != nil {
		return m.GetByLoginFunc(ctx, login)
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

// MockVendorStorage - мок хранилища продавцов.
type MockVendorStorage struct {
	CreateTxFunc           func(ctx context.Context, tx pgx.Tx, v *models.Vendor) error
	GetByIDFunc            func(ctx context.Context, id uuid.UUID) (*models.Vendor, error)
	GetByIDForUpdateTxFunc func(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Vendor, error)
	UpdateBankAccountFunc  func(ctx context.Context, id uuid.UUID, account models.PaymentDetails) error
}

func (m *MockVendorStorage) CreateTx(ctx context.Context, tx pgx.Tx, v *models.Vendor) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, v)
	}
	return nil
}

func (m *MockVendorStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ErrVendorNotFound
}

func (m *MockVendorStorage) GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Vendor, error) {
	if m.GetByIDForUpdateTxFunc != nil {
		return m.GetByIDForUpdateTxFunc(ctx, tx, id)
	}
	return nil, ErrVendorNotFound
}

func (m *MockVendorStorage) UpdateBankAccount(ctx context.Context, id uuid.UUID, account models.PaymentDetails) error {
	if m.UpdateBankAccountFunc != nil {
		return m.UpdateBankAccountFunc(ctx, id, account)
	}
	return nil
}
