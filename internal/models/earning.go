package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EarningStatus описывает стадию жизненного цикла начисления продавцу.
// Переходы только вперёд: pending -> available -> paid.
type EarningStatus string

const (
	EarningStatusPending   EarningStatus = "pending"
	EarningStatusAvailable EarningStatus = "available"
	EarningStatusPaid      EarningStatus = "paid"
)

// Earning представляет долю продавца в одной позиции заказа за вычетом комиссии площадки.
type Earning struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	VendorID         uuid.UUID       `db:"vendor_id" json:"vendor_id"`
	OrderRef         string          `db:"order_ref" json:"order_ref,omitempty"`
	GrossAmount      decimal.Decimal `db:"gross_amount" json:"gross_amount"`
	CommissionAmount decimal.Decimal `db:"commission_amount" json:"commission_amount"`
	NetAmount        decimal.Decimal `db:"net_amount" json:"net_amount"`
	Status           EarningStatus   `db:"status" json:"status"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	AvailableAt      *time.Time      `db:"available_at" json:"available_at,omitempty"`
	PaidAt           *time.Time      `db:"paid_at" json:"paid_at,omitempty"`
	PayoutID         *uuid.UUID      `db:"payout_id" json:"payout_id,omitempty"`
}

// RecordEarningRequest - запрос на регистрацию продажи продавца.
type RecordEarningRequest struct {
	VendorID         string          `json:"vendor_id" validate:"required,uuid"`
	OrderRef         string          `json:"order_ref" validate:"max=128"`
	GrossAmount      decimal.Decimal `json:"gross_amount"`
	CommissionAmount decimal.Decimal `json:"commission_amount"`
}

// VendorEarningsSummary - суммы начислений продавца, ожидающих выплаты.
type VendorEarningsSummary struct {
	VendorID  uuid.UUID       `json:"vendor_id"`
	Pending   decimal.Decimal `json:"pending"`
	Available decimal.Decimal `json:"available"`
}

// EarningTotals - суммы net_amount продавца по статусам.
type EarningTotals struct {
	Pending   decimal.Decimal
	Available decimal.Decimal
	Paid      decimal.Decimal
}

// Total возвращает сумму по всем статусам.
func (t EarningTotals) Total() decimal.Decimal {
	return t.Pending.Add(t.Available).Add(t.Paid)
}
