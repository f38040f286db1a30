package models

import (
	"time"

	"github.com/google/uuid"
)

// Category представляет категорию каталога.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" json:"image_url,omitempty"`
	Featured    bool      `db:"featured" json:"featured"`
	SortOrder   int       `db:"sort_order" json:"sort_order"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// CategoryWithCount - категория с вычисленным числом товаров.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}

// ProductRef - минимальный набор полей товара для подсчёта по категориям.
type ProductRef struct {
	ID          uuid.UUID  `db:"id"`
	CategoryID  *uuid.UUID `db:"category_id"`
	Category    string     `db:"category"`
	SubCategory string     `db:"sub_category"`
	Status      string     `db:"status"`
}
