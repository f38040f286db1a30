package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutStatus описывает статус заявки на выплату.
type PayoutStatus string

const (
	PayoutStatusPending    PayoutStatus = "pending"
	PayoutStatusProcessing PayoutStatus = "processing"
	PayoutStatusCompleted  PayoutStatus = "completed"
	PayoutStatusFailed     PayoutStatus = "failed"
)

// Final сообщает, что из статуса больше нет переходов.
func (s PayoutStatus) Final() bool {
	return s == PayoutStatusCompleted || s == PayoutStatusFailed
}

// PaymentMethodBankTransfer - способ выплаты по умолчанию.
const PaymentMethodBankTransfer = "bank_transfer"

// PaymentDetails - снимок банковских реквизитов продавца на момент заявки.
type PaymentDetails struct {
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

// Payout представляет заявку продавца на вывод доступного баланса.
type Payout struct {
	ID              uuid.UUID        `db:"id" json:"id"`
	VendorID        uuid.UUID        `db:"vendor_id" json:"vendor_id"`
	Amount          decimal.Decimal  `db:"amount" json:"amount"`
	AllocatedAmount *decimal.Decimal `db:"allocated_amount" json:"allocated_amount,omitempty"`
	Status          PayoutStatus     `db:"status" json:"status"`
	PaymentMethod   string           `db:"payment_method" json:"payment_method"`
	PaymentDetails  PaymentDetails   `db:"payment_details" json:"payment_details"`
	Reference       string           `db:"reference" json:"reference"`
	FailureReason   *string          `db:"failure_reason" json:"failure_reason,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at" json:"updated_at"`
	ProcessedAt     *time.Time       `db:"processed_at" json:"processed_at,omitempty"`
}

// PayoutRequest - запрос продавца на выплату.
type PayoutRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,oneof=bank_transfer"`
}

// UpdatePayoutRequest - запрос администратора на смену статуса выплаты.
type UpdatePayoutRequest struct {
	PayoutID      string `json:"payoutId" validate:"required,uuid"`
	Status        string `json:"status" validate:"required,oneof=processing completed failed"`
	FailureReason string `json:"failureReason" validate:"max=500"`
}

// PayoutFilter - параметры выборки выплат для администратора.
type PayoutFilter struct {
	Status   PayoutStatus
	VendorID uuid.UUID
	Limit    int
	Offset   int
}

// PayoutList - ответ со списком выплат и сводкой начислений по продавцам.
type PayoutList struct {
	Payouts          []*Payout                `json:"payouts"`
	Total            int                      `json:"total"`
	Limit            int                      `json:"limit"`
	Offset           int                      `json:"offset"`
	EarningsByVendor []*VendorEarningsSummary `json:"earnings_by_vendor"`
}

// AccountSummary - сводка по счёту продавца.
type AccountSummary struct {
	Total     decimal.Decimal `json:"total"`
	Available decimal.Decimal `json:"available"`
	Pending   decimal.Decimal `json:"pending"`
	Paid      decimal.Decimal `json:"paid"`
	Payouts   []*Payout       `json:"payouts"`
}
