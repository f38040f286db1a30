package models

import (
	"time"

	"github.com/google/uuid"
)

// Role определяет права пользователя.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleVendor Role = "vendor"
)

// User представляет учётную запись администратора или продавца.
type User struct {
	ID           uuid.UUID `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	VendorID     uuid.UUID `db:"vendor_id"` // uuid.Nil для администратора
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// RegisterRequest - запрос на регистрацию продавца.
type RegisterRequest struct {
	Login      string `json:"login" validate:"required,min=3,max=64"`
	Password   string `json:"password" validate:"required,min=6,max=72"`
	VendorName string `json:"vendor_name" validate:"required,max=128"`
	Email      string `json:"email" validate:"required,email"`
}

// LoginRequest - запрос на аутентификацию пользователя.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse - ответ при успешной аутентификации.
type AuthResponse struct {
	UserID   uuid.UUID  `json:"user_id"`
	Login    string     `json:"login"`
	Role     Role       `json:"role"`
	VendorID *uuid.UUID `json:"vendor_id,omitempty"`
}
