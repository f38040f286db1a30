// Package reconcile сопоставляет сумму выплаты с доступными начислениями продавца.
package reconcile

import (
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation - результат сопоставления одной выплаты с начислениями.
type Allocation struct {
	// Paid - начисления, которые покрываются выплатой целиком.
	Paid []*models.Earning
	// Skipped - начисления, которые оказались больше остатка на своём шаге.
	Skipped []*models.Earning

	Requested decimal.Decimal
	Allocated decimal.Decimal
	Remaining decimal.Decimal
}

// Allocate проходит начисления в переданном порядке (старые первыми) и отбирает те,
// чья чистая сумма не превышает текущий остаток. Начисление крупнее остатка
// пропускается и в этом проходе больше не рассматривается. Начисления не делятся.
//
// Порядок earnings должен соответствовать created_at ASC: функция его не меняет.
func Allocate(amount decimal.Decimal, earnings []*models.Earning) Allocation {
	alloc := Allocation{
		Requested: amount,
		Remaining: amount,
	}

	for _, e := range earnings {
		if alloc.Remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		if e.NetAmount.LessThanOrEqual(alloc.Remaining) {
			alloc.Paid = append(alloc.Paid, e)
			alloc.Remaining = alloc.Remaining.Sub(e.NetAmount)
			continue
		}
		alloc.Skipped = append(alloc.Skipped, e)
	}

	alloc.Allocated = amount.Sub(alloc.Remaining)
	return alloc
}

// Underpaid сообщает, что начислений не хватило на всю запрошенную сумму.
func (a Allocation) Underpaid() bool {
	return a.Remaining.GreaterThan(decimal.Zero)
}

// PaidIDs возвращает идентификаторы оплачиваемых начислений.
func (a Allocation) PaidIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.Paid))
	for _, e := range a.Paid {
		ids = append(ids, e.ID)
	}
	return ids
}
