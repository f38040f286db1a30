package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestCategoryHandler_Get(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		mockService    *MockCategoryService
		expectedStatus int
		bodyContains   string
	}{
		{
			name:  "single category by slug",
			query: "?slug=electronics",
			mockService: &MockCategoryService{
				GetFunc: func(ctx context.Context, key string) (*models.CategoryWithCount, error) {
					assert.Equal(t, "electronics", key)
					return &models.CategoryWithCount{
						Category:     models.Category{Name: "Electronics", Slug: "electronics"},
						ProductCount: 3,
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			bodyContains:   `"product_count":3`,
		},
		{
			name:  "unknown slug",
			query: "?slug=missing",
			mockService: &MockCategoryService{
				GetFunc: func(ctx context.Context, key string) (*models.CategoryWithCount, error) {
					return nil, services.ErrCategoryNotFound
				},
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:  "featured list with limit",
			query: "?featured=true&limit=5",
			mockService: &MockCategoryService{
				ListFunc: func(ctx context.Context, featuredOnly bool, limit int) ([]models.CategoryWithCount, error) {
					assert.True(t, featuredOnly)
					assert.Equal(t, 5, limit)
					return []models.CategoryWithCount{
						{Category: models.Category{Name: "Books", Slug: "books", Featured: true}, ProductCount: 0},
					}, nil
				},
			},
			expectedStatus: http.StatusOK,
			bodyContains:   `"product_count":0`,
		},
		{
			name:           "empty list renders array",
			query:          "",
			mockService:    &MockCategoryService{},
			expectedStatus: http.StatusOK,
			bodyContains:   `[]`,
		},
		{
			name:           "bad featured flag",
			query:          "?featured=maybe",
			mockService:    &MockCategoryService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "bad limit",
			query:          "?limit=ten",
			mockService:    &MockCategoryService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:  "internal error",
			query: "",
			mockService: &MockCategoryService{
				ListFunc: func(ctx context.Context, featuredOnly bool, limit int) ([]models.CategoryWithCount, error) {
					return nil, errors.New("database error")
				},
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			c, rec := newJSONContext(e, http.MethodGet, "/api/categories"+tt.query, nil)

			err := NewCategoryHandler(tt.mockService).Get(c)
			assertStatus(t, tt.expectedStatus, err, rec)
			if tt.bodyContains != "" {
				assert.Contains(t, rec.Body.String(), tt.bodyContains)
			}
		})
	}
}
