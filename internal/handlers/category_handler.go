package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/vendorpay/internal/services"
	"github.com/labstack/echo/v4"
)

// CategoryHandler отдаёт публичный каталог категорий.
type CategoryHandler struct {
	categoryService services.CategoryService
}

// NewCategoryHandler создаёт новый экземпляр CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Get обрабатывает GET /api/categories.
// С параметром slug возвращает одну категорию, иначе список.
func (h *CategoryHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	if key := c.QueryParam("slug"); key != "" {
		category, err := h.categoryService.Get(ctx, key)
		if err != nil {
			if errors.Is(err, services.ErrCategoryNotFound) {
				return echo.NewHTTPError(http.StatusNotFound, err.Error())
			}
			return internalError(err)
		}
		return c.JSON(http.StatusOK, category)
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	featured := false
	if s := c.QueryParam("featured"); s != "" {
		featured, err = strconv.ParseBool(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid featured")
		}
	}

	categories, err := h.categoryService.List(ctx, featured, limit)
	if err != nil {
		return internalError(err)
	}

	return c.JSON(http.StatusOK, categories)
}
