package services

import (
	"context"
	"strings"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
)

// VendorService управляет профилем продавца.
type VendorService interface {
	UpdateBankAccount(ctx context.Context, vendorID uuid.UUID, req models.BankAccountRequest) (*models.Vendor, error)
}

// VendorServiceImpl реализует VendorService.
type VendorServiceImpl struct {
	vendors VendorStorage
}

// NewVendorService создаёт сервис продавцов.
func NewVendorService(vendors VendorStorage) *VendorServiceImpl {
	return &VendorServiceImpl{vendors: vendors}
}

// UpdateBankAccount сохраняет реквизиты, на которые будут уходить новые выплаты.
// Уже созданные заявки хранят свой снимок реквизитов.
func (s *VendorServiceImpl) UpdateBankAccount(ctx context.Context, vendorID uuid.UUID, req models.BankAccountRequest) (*models.Vendor, error) {
	account := models.PaymentDetails{
		BankName:      strings.TrimSpace(req.BankName),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		AccountName:   strings.TrimSpace(req.AccountName),
	}

	if err := s.vendors.UpdateBankAccount(ctx, vendorID, account); err != nil {
		return nil, err
	}

	return s.vendors.GetByID(ctx, vendorID)
}
