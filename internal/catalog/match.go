// Package catalog считает товары по категориям, сопоставляя как ссылку category_id,
// так и свободные строки category / sub_category.
package catalog

import (
	"strings"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/google/uuid"
)

// Normalize приводит название категории к сравнимому виду: нижний регистр,
// дефисы в пробелы, & в "and", только [a-z0-9] и одиночные пробелы.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// Matches сравнивает две строки после нормализации: равенство или вхождение
// одной в другую в любую сторону. Пустая строка ни с чем не совпадает.
func Matches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb || strings.Contains(na, nb) || strings.Contains(nb, na)
}

// Countable сообщает, учитывается ли товар с данным статусом.
func Countable(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "active", "approved", "published":
		return true
	}
	return false
}

// BelongsTo проверяет принадлежность товара категории по id, названию или slug.
func BelongsTo(p models.ProductRef, c models.Category) bool {
	if p.CategoryID != nil && *p.CategoryID == c.ID {
		return true
	}
	for _, value := range []string{p.Category, p.SubCategory} {
		if Matches(value, c.Name) || Matches(value, c.Slug) {
			return true
		}
	}
	return false
}

// CountProducts возвращает число учитываемых товаров категории.
func CountProducts(c models.Category, products []models.ProductRef) int {
	count := 0
	for _, p := range products {
		if Countable(p.Status) && BelongsTo(p, c) {
			count++
		}
	}
	return count
}

// AttachCounts добавляет product_count к каждой категории.
func AttachCounts(categories []models.Category, products []models.ProductRef) []models.CategoryWithCount {
	out := make([]models.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		out = append(out, models.CategoryWithCount{
			Category:     c,
			ProductCount: CountProducts(c, products),
		})
	}
	return out
}

// Find ищет категорию по id, затем по slug, затем по нормализованному названию или slug.
func Find(categories []models.Category, key string) (models.Category, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return models.Category{}, false
	}

	if id, err := uuid.Parse(key); err == nil {
		for _, c := range categories {
			if c.ID == id {
				return c, true
			}
		}
	}

	for _, c := range categories {
		if strings.EqualFold(c.Slug, key) {
			return c, true
		}
	}

	normalized := Normalize(key)
	if normalized == "" {
		return models.Category{}, false
	}
	for _, c := range categories {
		if Normalize(c.Name) == normalized || Normalize(c.Slug) == normalized {
			return c, true
		}
	}

	return models.Category{}, false
}
