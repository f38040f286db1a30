package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const earningColumns = `id, vendor_id, order_ref, gross_amount, commission_amount, net_amount,
	status, created_at, available_at, paid_at, payout_id`

// PostgresEarningStorage реализует EarningStorage для PostgreSQL.
type PostgresEarningStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresEarningStorage создаёт новый экземпляр PostgresEarningStorage.
func NewPostgresEarningStorage(pool *pgxpool.Pool) *PostgresEarningStorage {
	return &PostgresEarningStorage{pool: pool}
}

// Create сохраняет новое начисление.
func (s *PostgresEarningStorage) Create(ctx context.Context, e *models.Earning) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Status == "" {
		e.Status = models.EarningStatusPending
	}

	query := `
		INSERT INTO earnings (id, vendor_id, order_ref, gross_amount, commission_amount, net_amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING created_at
	`

	err := s.pool.QueryRow(ctx, query,
		e.ID,
		e.VendorID,
		e.OrderRef,
		e.GrossAmount,
		e.CommissionAmount,
		e.NetAmount,
		e.Status,
	).Scan(&e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create earning: %w", err)
	}

	return nil
}

// TotalsByVendor суммирует net_amount начислений продавца по статусам.
func (s *PostgresEarningStorage) TotalsByVendor(ctx context.Context, vendorID uuid.UUID) (*models.EarningTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(net_amount) FILTER (WHERE status = 'pending'), 0),
			COALESCE(SUM(net_amount) FILTER (WHERE status = 'available'), 0),
			COALESCE(SUM(net_amount) FILTER (WHERE status = 'paid'), 0)
		FROM earnings
		WHERE vendor_id = $1
	`

	var totals models.EarningTotals
	err := s.pool.QueryRow(ctx, query, vendorID).Scan(&totals.Pending, &totals.Available, &totals.Paid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum earnings: %w", err)
	}

	return &totals, nil
}

// AvailableTotalTx возвращает доступный к выплате баланс в рамках транзакции.
func (s *PostgresEarningStorage) AvailableTotalTx(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(net_amount), 0)
		FROM earnings
		WHERE vendor_id = $1 AND status = 'available'
	`

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, query, vendorID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum available earnings: %w", err)
	}

	return total, nil
}

// ListAvailableForUpdateTx блокирует и возвращает доступные начисления продавца
// в порядке created_at ASC.
func (s *PostgresEarningStorage) ListAvailableForUpdateTx(ctx context.Context, tx pgx.Tx, vendorID uuid.UUID) ([]*models.Earning, error) {
	query := `
		SELECT ` + earningColumns + `
		FROM earnings
		WHERE vendor_id = $1 AND status = 'available'
		ORDER BY created_at ASC, id ASC
		FOR UPDATE
	`

	rows, err := tx.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query available earnings: %w", err)
	}
	defer rows.Close()

	var earnings []*models.Earning
	for rows.Next() {
		e, err := scanEarning(rows)
		if err != nil {
			return nil, err
		}
		earnings = append(earnings, e)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return earnings, nil
}

// MarkPaidTx переводит начисления в paid и связывает их с выплатой.
// Возвращает число обновлённых строк.
func (s *PostgresEarningStorage) MarkPaidTx(ctx context.Context, tx pgx.Tx, ids []uuid.UUID, payoutID uuid.UUID, paidAt time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := `
		UPDATE earnings
		SET status = 'paid', paid_at = $1, payout_id = $2
		WHERE id = ANY($3) AND status = 'available'
	`

	result, err := tx.Exec(ctx, query, paidAt, payoutID, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to mark earnings paid: %w", err)
	}

	return result.RowsAffected(), nil
}

// SummaryByVendor возвращает суммы pending/available по продавцам.
// При vendorID == uuid.Nil учитываются все продавцы.
func (s *PostgresEarningStorage) SummaryByVendor(ctx context.Context, vendorID uuid.UUID) ([]*models.VendorEarningsSummary, error) {
	query := `
		SELECT vendor_id,
			COALESCE(SUM(net_amount) FILTER (WHERE status = 'pending'), 0),
			COALESCE(SUM(net_amount) FILTER (WHERE status = 'available'), 0)
		FROM earnings
		WHERE status IN ('pending', 'available') AND ($1::uuid IS NULL OR vendor_id = $1)
		GROUP BY vendor_id
		ORDER BY vendor_id
	`

	rows, err := s.pool.Query(ctx, query, nullUUID(vendorID))
	if err != nil {
		return nil, fmt.Errorf("failed to query earnings summary: %w", err)
	}
	defer rows.Close()

	summary := []*models.VendorEarningsSummary{}
	for rows.Next() {
		var v models.VendorEarningsSummary
		if err := rows.Scan(&v.VendorID, &v.Pending, &v.Available); err != nil {
			return nil, fmt.Errorf("failed to scan earnings summary: %w", err)
		}
		summary = append(summary, &v)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return summary, nil
}

// ReleasePending переводит в available начисления, созданные раньше cutoff.
func (s *PostgresEarningStorage) ReleasePending(ctx context.Context, cutoff, now time.Time) (int64, error) {
	query := `
		UPDATE earnings
		SET status = 'available', available_at = $1
		WHERE status = 'pending' AND created_at <= $2
	`

	result, err := s.pool.Exec(ctx, query, now, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to release pending earnings: %w", err)
	}

	return result.RowsAffected(), nil
}

// scanEarning помогает читать начисление из строки результата.
func scanEarning(row pgx.Row) (*models.Earning, error) {
	var e models.Earning
	err := row.Scan(
		&e.ID,
		&e.VendorID,
		&e.OrderRef,
		&e.GrossAmount,
		&e.CommissionAmount,
		&e.NetAmount,
		&e.Status,
		&e.CreatedAt,
		&e.AvailableAt,
		&e.PaidAt,
		&e.PayoutID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan earning: %w", err)
	}
	return &e, nil
}
