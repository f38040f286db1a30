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

// PostgresUserStorage реализует UserStorage для PostgreSQL.
type PostgresUserStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresUserStorage создаёт новый экземпляр PostgresUserStorage.
func NewPostgresUserStorage(pool *pgxpool.Pool) *PostgresUserStorage {
	return &PostgresUserStorage{pool: pool}
}

const insertUserQuery = `
	INSERT INTO users (id, login, password_hash, role, vendor_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	RETURNING created_at, updated_at
`

// Create создаёт нового пользователя.
func (s *PostgresUserStorage) Create(ctx context.Context, user *models.User) error {
	return createUser(ctx, s.pool, user)
}

// CreateTx создаёт пользователя в рамках переданной транзакции.
func (s *PostgresUserStorage) CreateTx(ctx context.Context, tx pgx.Tx, user *models.User) error {
	return createUser(ctx, tx, user)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func createUser(ctx context.Context, q rowQuerier, user *models.User) error {
	// Генерируем UUID, если не задан
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	err := q.QueryRow(ctx, insertUserQuery,
		user.ID,
		user.Login,
		user.PasswordHash,
		user.Role,
		nullUUID(user.VendorID),
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		// Проверка на уникальность логина
		if isUniqueViolation(err) {
			return ErrLoginExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByLogin ищет пользователя по логину.
func (s *PostgresUserStorage) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `
		SELECT id, login, password_hash, role, vendor_id, created_at, updated_at
		FROM users
		WHERE login = $1
	`

	return scanUser(s.pool.QueryRow(ctx, query, login))
}

// GetByID ищет пользователя по ID.
func (s *PostgresUserStorage) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, login, password_hash, role, vendor_id, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	return scanUser(s.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		user     models.User
		vendorID *uuid.UUID
	)

	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.PasswordHash,
		&user.Role,
		&vendorID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if vendorID != nil {
		user.VendorID = *vendorID
	}

	return &user, nil
}
