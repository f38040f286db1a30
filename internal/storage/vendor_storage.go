package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const vendorColumns = `id, name, email, bank_name, bank_account_number, bank_account_name, created_at, updated_at`

// PostgresVendorStorage реализует VendorStorage для PostgreSQL.
type PostgresVendorStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresVendorStorage создаёт новый экземпляр PostgresVendorStorage.
func NewPostgresVendorStorage(pool *pgxpool.Pool) *PostgresVendorStorage {
	return &PostgresVendorStorage{pool: pool}
}

// CreateTx создаёт продавца в рамках переданной транзакции.
func (s *PostgresVendorStorage) CreateTx(ctx context.Context, tx pgx.Tx, v *models.Vendor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}

	query := `
		INSERT INTO vendors (id, name, email, bank_name, bank_account_number, bank_account_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		v.ID,
		v.Name,
		v.Email,
		v.BankName,
		v.BankAccountNumber,
		v.BankAccountName,
	).Scan(&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vendor: %w", err)
	}

	return nil
}

// GetByID ищет продавца по ID.
func (s *PostgresVendorStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`
	return scanVendor(s.pool.QueryRow(ctx, query, id))
}

// GetByIDForUpdateTx блокирует строку продавца до конца транзакции.
// Заявки на выплату одного продавца выполняются строго по очереди.
func (s *PostgresVendorStorage) GetByIDForUpdateTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*models.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1 FOR UPDATE`
	return scanVendor(tx.QueryRow(ctx, query, id))
}

// UpdateBankAccount обновляет реквизиты продавца.
func (s *PostgresVendorStorage) UpdateBankAccount(ctx context.Context, id uuid.UUID, account models.PaymentDetails) error {
	query := `
		UPDATE vendors
		SET bank_name = $1, bank_account_number = $2, bank_account_name = $3, updated_at = NOW()
		WHERE id = $4
	`

	result, err := s.pool.Exec(ctx, query, account.BankName, account.AccountNumber, account.AccountName, id)
	if err != nil {
		return fmt.Errorf("failed to update bank account: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrVendorNotFound
	}

	return nil
}

func scanVendor(row pgx.Row) (*models.Vendor, error) {
	var v models.Vendor
	err := row.Scan(
		&v.ID,
		&v.Name,
		&v.Email,
		&v.BankName,
		&v.BankAccountNumber,
		&v.BankAccountName,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVendorNotFound
		}
		return nil, fmt.Errorf("failed to scan vendor: %w", err)
	}
	return &v, nil
}
