package models

import (
	"time"

	"github.com/google/uuid"
)

// Vendor представляет продавца на площадке.
type Vendor struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Email             string    `db:"email" json:"email"`
	BankName          string    `db:"bank_name" json:"bank_name"`
	BankAccountNumber string    `db:"bank_account_number" json:"bank_account_number"`
	BankAccountName   string    `db:"bank_account_name" json:"bank_account_name"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// HasBankAccount сообщает, заполнены ли реквизиты для выплат.
func (v *Vendor) HasBankAccount() bool {
	return v.BankName != "" && v.BankAccountNumber != "" && v.BankAccountName != ""
}

// PaymentDetails возвращает снимок реквизитов для заявки на выплату.
func (v *Vendor) PaymentDetails() PaymentDetails {
	return PaymentDetails{
		BankName:      v.BankName,
		AccountNumber: v.BankAccountNumber,
		AccountName:   v.BankAccountName,
	}
}

// BankAccountRequest - запрос на обновление реквизитов.
type BankAccountRequest struct {
	BankName      string `json:"bank_name" validate:"required,max=128"`
	AccountNumber string `json:"account_number" validate:"required,numeric,min=6,max=34"`
	AccountName   string `json:"account_name" validate:"required,max=128"`
}
