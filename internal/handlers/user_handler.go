package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/agamariel/vendorpay/internal/auth"
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/services"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserHandler обрабатывает регистрацию и вход.
type UserHandler struct {
	userService     services.UserService
	tokenExpiration time.Duration
}

// NewUserHandler создаёт новый экземпляр UserHandler.
func NewUserHandler(userService services.UserService, tokenExpiration time.Duration) *UserHandler {
	return &UserHandler{
		userService:     userService,
		tokenExpiration: tokenExpiration,
	}
}

// Register обрабатывает POST /api/auth/register.
func (h *UserHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.userService.Register(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) || errors.Is(err, auth.ErrPasswordTooLong) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, storage.ErrLoginExists) {
			return echo.NewHTTPError(http.StatusConflict, "login already exists")
		}
		return internalError(err)
	}

	h.setAuthToken(c, token)
	return c.JSON(http.StatusOK, authResponse(user))
}

// Login обрабатывает POST /api/auth/login.
func (h *UserHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.userService.Login(c.Request().Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid login or password")
		}
		return internalError(err)
	}

	h.setAuthToken(c, token)
	return c.JSON(http.StatusOK, authResponse(user))
}

func authResponse(user *models.User) models.AuthResponse {
	resp := models.AuthResponse{
		UserID: user.ID,
		Login:  user.Login,
		Role:   user.Role,
	}
	if user.VendorID != uuid.Nil {
		vendorID := user.VendorID
		resp.VendorID = &vendorID
	}
	return resp
}

// setAuthToken устанавливает токен в cookie и заголовок ответа.
func (h *UserHandler) setAuthToken(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "Authorization",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(h.tokenExpiration.Seconds()),
	})

	c.Response().Header().Set("Authorization", "Bearer "+token)
}
