package storage

import (
	"context"
	"fmt"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCatalogStorage читает категории и товары для подсчёта.
type PostgresCatalogStorage struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalogStorage создаёт новый экземпляр PostgresCatalogStorage.
func NewPostgresCatalogStorage(pool *pgxpool.Pool) *PostgresCatalogStorage {
	return &PostgresCatalogStorage{pool: pool}
}

// ListCategories возвращает категории по sort_order. limit <= 0 снимает ограничение.
func (s *PostgresCatalogStorage) ListCategories(ctx context.Context, featuredOnly bool, limit int) ([]models.Category, error) {
	query := `
		SELECT id, name, slug, description, image_url, featured, sort_order, created_at
		FROM categories
		WHERE ($1 = FALSE OR featured = TRUE)
		ORDER BY sort_order ASC, name ASC
		LIMIT NULLIF($2, 0)
	`

	if limit < 0 {
		limit = 0
	}

	rows, err := s.pool.Query(ctx, query, featuredOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.Category])
	if err != nil {
		return nil, fmt.Errorf("failed to collect categories: %w", err)
	}

	return categories, nil
}

// ListProductRefs возвращает все товары с минимальным набором полей.
func (s *PostgresCatalogStorage) ListProductRefs(ctx context.Context) ([]models.ProductRef, error) {
	query := `
		SELECT id, category_id, COALESCE(category, ''), COALESCE(sub_category, ''), COALESCE(status, '')
		FROM products
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, pgx.RowToStructByPos[models.ProductRef])
	if err != nil {
		return nil, fmt.Errorf("failed to collect products: %w", err)
	}

	return products, nil
}
