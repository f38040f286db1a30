package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agamariel/vendorpay/internal/catalog"
	"github.com/agamariel/vendorpay/internal/models"
)

var ErrCategoryNotFound = errors.New("category not found")

// CategoryService отдаёт категории с подсчитанным числом товаров.
// Кэша нет: товары читаются заново на каждый запрос.
type CategoryService interface {
	List(ctx context.Context, featuredOnly bool, limit int) ([]models.CategoryWithCount, error)
	Get(ctx context.Context, key string) (*models.CategoryWithCount, error)
}

// CategoryServiceImpl реализует CategoryService.
type CategoryServiceImpl struct {
	catalog CatalogStorage
}

// NewCategoryService создаёт сервис категорий.
func NewCategoryService(catalog CatalogStorage) *CategoryServiceImpl {
	return &CategoryServiceImpl{catalog: catalog}
}

// List возвращает категории с product_count.
func (s *CategoryServiceImpl) List(ctx context.Context, featuredOnly bool, limit int) ([]models.CategoryWithCount, error) {
	categories, err := s.catalog.ListCategories(ctx, featuredOnly, limit)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if len(categories) == 0 {
		return []models.CategoryWithCount{}, nil
	}

	products, err := s.catalog.ListProductRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return catalog.AttachCounts(categories, products), nil
}

// Get ищет категорию по id, slug или имени и считает её товары.
func (s *CategoryServiceImpl) Get(ctx context.Context, key string) (*models.CategoryWithCount, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrCategoryNotFound
	}

	categories, err := s.catalog.ListCategories(ctx, false, 0)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	category, ok := catalog.Find(categories, key)
	if !ok {
		return nil, ErrCategoryNotFound
	}

	products, err := s.catalog.ListProductRefs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &models.CategoryWithCount{
		Category:     category,
		ProductCount: catalog.CountProducts(category, products),
	}, nil
}
