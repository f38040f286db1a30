package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const payoutColumns = `id, vendor_id, amount, allocated_amount, status, payment_method, payment_details,
	reference, failure_reason, created_at, updated_at, processed_at`

// PostgresPayoutStorage реализует PayoutStorage для PostgreSQL.
type PostgresPayoutStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresPayoutStorage создаёт новый экземпляр PostgresPayoutStorage.
func NewPostgresPayoutStorage(pool *pgxpool.Pool) *PostgresPayoutStorage {
	return &PostgresPayoutStorage{pool: pool}
}

// CreateTx создаёт заявку на выплату в рамках переданной транзакции.
func (s *PostgresPayoutStorage) CreateTx(ctx context.Context, tx pgx.Tx, p *models.Payout) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	query := `
		INSERT INTO payouts (id, vendor_id, amount, status, payment_method, payment_details, reference, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		p.ID,
		p.VendorID,
		p.Amount,
		p.Status,
		p.PaymentMethod,
		p.PaymentDetails,
		p.Reference,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrPayoutReferenceExists
		}
		return fmt.Errorf("failed to create payout: %w", err)
	}

	return nil
}

// GetByIDForUpdateTx блокирует и возвращает выплату.
func (s *PostgresPayoutStorage) GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Payout, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE id = $1
		FOR UPDATE
	`

	return scanPayout(tx.QueryRow(ctx, query, id))
}

// UpdateStatusTx сохраняет статус выплаты и связанные с ним поля.
func (s *PostgresPayoutStorage) UpdateStatusTx(ctx context.Context, tx pgx.Tx, p *models.Payout) error {
	query := `
		UPDATE payouts
		SET status = $1, failure_reason = $2, processed_at = $3, allocated_amount = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`

	allocated := decimal.NullDecimal{}
	if p.AllocatedAmount != nil {
		allocated = decimal.NewNullDecimal(*p.AllocatedAmount)
	}

	err := tx.QueryRow(ctx, query, p.Status, p.FailureReason, p.ProcessedAt, allocated, p.ID).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPayoutNotFound
		}
		return fmt.Errorf("failed to update payout status: %w", err)
	}

	return nil
}

// GetByVendorID возвращает выплаты продавца (новые первыми).
func (s *PostgresPayoutStorage) GetByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*models.Payout, error) {
	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE vendor_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.pool.Query(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendor payouts: %w", err)
	}
	defer rows.Close()

	return collectPayouts(rows)
}

// List возвращает страницу выплат по фильтру и общее число подходящих записей.
func (s *PostgresPayoutStorage) List(ctx context.Context, f models.PayoutFilter) ([]*models.Payout, int, error) {
	var status any
	if f.Status != "" {
		status = f.Status
	}

	countQuery := `
		SELECT COUNT(*)
		FROM payouts
		WHERE ($1::text IS NULL OR status = $1) AND ($2::uuid IS NULL OR vendor_id = $2)
	`

	var total int
	if err := s.pool.QueryRow(ctx, countQuery, status, nullUUID(f.VendorID)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payouts: %w", err)
	}

	query := `
		SELECT ` + payoutColumns + `
		FROM payouts
		WHERE ($1::text IS NULL OR status = $1) AND ($2::uuid IS NULL OR vendor_id = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := s.pool.Query(ctx, query, status, nullUUID(f.VendorID), f.Limit, f.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payouts: %w", err)
	}
	defer rows.Close()

	payouts, err := collectPayouts(rows)
	if err != nil {
		return nil, 0, err
	}

	return payouts, total, nil
}

func collectPayouts(rows pgx.Rows) ([]*models.Payout, error) {
	payouts := []*models.Payout{}
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, p)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("rows error: %w", rows.Err())
	}

	return payouts, nil
}

// scanPayout помогает читать выплату из строки результата.
func scanPayout(row pgx.Row) (*models.Payout, error) {
	var (
		p         models.Payout
		allocated decimal.NullDecimal
	)

	err := row.Scan(
		&p.ID,
		&p.VendorID,
		&p.Amount,
		&allocated,
		&p.Status,
		&p.PaymentMethod,
		&p.PaymentDetails,
		&p.Reference,
		&p.FailureReason,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ProcessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPayoutNotFound
		}
		return nil, fmt.Errorf("failed to scan payout: %w", err)
	}

	if allocated.Valid {
		p.AllocatedAmount = &allocated.Decimal
	}

	return &p, nil
}
