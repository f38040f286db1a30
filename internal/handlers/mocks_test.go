package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockUserService - мок для тестирования handlers
type MockUserService struct {
	RegisterFunc    func(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	LoginFunc       func(ctx context.Context, login, password string) (*models.User, string, error)
	EnsureAdminFunc func(ctx context.Context, login, password string) error
}

func (m *MockUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, "", nil
}

func (m *MockUserService) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, login, password)
	}
	return nil, "", nil
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, login, password string) error {
	if m.EnsureAdminFunc != nil {
		return m.EnsureAdminFunc(ctx, login, password)
	}
	return nil
}

// MockPayoutService - мок сервиса выплат
type MockPayoutService struct {
	GetAccountSummaryFunc func(ctx context.Context, vendorID uuid.UUID) (*models.AccountSummary, error)
	RequestPayoutFunc     func(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal, paymentMethod string) (*models.Payout, error)
	ListPayoutsFunc       func(ctx context.Context, filter models.PayoutFilter) (*models.PayoutList, error)
	UpdateStatusFunc      func(ctx context.Context, payoutID uuid.UUID, status models.PayoutStatus, failureReason string) (*models.Payout, error)
}

func (m *MockPayoutService) GetAccountSummary(ctx context.Context, vendorID uuid.UUID) (*models.AccountSummary, error) {
	if m.GetAccountSummaryFunc != nil {
		return m.GetAccountSummaryFunc(ctx, vendorID)
	}
	return &models.AccountSummary{}, nil
}

func (m *MockPayoutService) RequestPayout(ctx context.Context, vendorID uuid.UUID, amount decimal.Decimal, paymentMethod string) (*models.Payout, error) {
	if m.RequestPayoutFunc != nil {
		return m.RequestPayoutFunc(ctx, vendorID, amount, paymentMethod)
	}
	return &models.Payout{}, nil
}

func (m *MockPayoutService) ListPayouts(ctx context.Context, filter models.PayoutFilter) (*models.PayoutList, error) {
	if m.ListPayoutsFunc != nil {
		return m.ListPayoutsFunc(ctx, filter)
	}
	return &models.PayoutList{}, nil
}

func (m *MockPayoutService) UpdateStatus(ctx context.Context, payoutID uuid.UUID, status models.PayoutStatus, failureReason string) (*models.Payout, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, payoutID, status, failureReason)
	}
	return &models.Payout{ID: payoutID, Status: status}, nil
}

// MockCategoryService - мок сервиса категорий
type MockCategoryService struct {
	ListFunc func(ctx context.Context, featuredOnly bool, limit int) ([]models.CategoryWithCount, error)
	GetFunc  func(ctx context.Context, key string) (*models.CategoryWithCount, error)
}

func (m *MockCategoryService) List(ctx context.Context, featuredOnly bool, limit int) ([]models.CategoryWithCount, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, featuredOnly, limit)
	}
	return []models.CategoryWithCount{}, nil
}

func (m *MockCategoryService) Get(ctx context.Context, key string) (*models.CategoryWithCount, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	return &models.CategoryWithCount{}, nil
}

// MockVendorService - мок сервиса продавцов
type MockVendorService struct {
	UpdateBankAccountFunc func(ctx context.Context, vendorID uuid.UUID, req models.BankAccountRequest) (*models.Vendor, error)
}

func (m *MockVendorService) UpdateBankAccount(ctx context.Context, vendorID uuid.UUID, req models.BankAccountRequest) (*models.Vendor, error) {
	if m.UpdateBankAccountFunc != nil {
		return m.UpdateBankAccountFunc(ctx, vendorID, req)
	}
	return &models.Vendor{ID: vendorID}, nil
}

// MockEarningService - мок сервиса начислений
type MockEarningService struct {
	RecordEarningFunc func(ctx context.Context, vendorID uuid.UUID, orderRef string, gross, commission decimal.Decimal) (*models.Earning, error)
}

func (m *MockEarningService) RecordEarning(ctx context.Context, vendorID uuid.UUID, orderRef string, gross, commission decimal.Decimal) (*models.Earning, error) {
	if m.RecordEarningFunc != nil {
		return m.RecordEarningFunc(ctx, vendorID, orderRef, gross, commission)
	}
	return &models.Earning{VendorID: vendorID}, nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONContext(e *echo.Echo, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// assertStatus проверяет код ответа или код возвращённой HTTP-ошибки.
func assertStatus(t *testing.T, expected int, err error, rec *httptest.ResponseRecorder) {
	t.Helper()
	if expected < 400 {
		require.NoError(t, err)
		assert.Equal(t, expected, rec.Code)
		return
	}
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok, "expected *echo.HTTPError, got %T", err)
	assert.Equal(t, expected, he.Code)
}
