package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agamariel/vendorpay/internal/auth"
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyCredentials   = errors.New("login and password are required")
	ErrAdminLoginTaken    = errors.New("admin login is already used by a vendor account")
)

// UserService определяет интерфейс для работы с пользователями.
type UserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error)
	Login(ctx context.Context, login, password string) (*models.User, string, error)
	EnsureAdmin(ctx context.Context, login, password string) error
}

// UserServiceImpl реализует UserService.
type UserServiceImpl struct {
	db              TxBeginner
	userStorage     UserStorage
	vendorStorage   VendorStorage
	jwtSecret       string
	tokenExpiration time.Duration
	logger          *zap.Logger
}

// NewUserService создаёт новый экземпляр UserService.
func NewUserService(db TxBeginner, userStorage UserStorage, vendorStorage VendorStorage, jwtSecret string, tokenExpiration time.Duration, logger *zap.Logger) *UserServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserServiceImpl{
		db:              db,
		userStorage:     userStorage,
		vendorStorage:   vendorStorage,
		jwtSecret:       jwtSecret,
		tokenExpiration: tokenExpiration,
		logger:          logger,
	}
}

// Register создаёт продавца и его учётную запись в одной транзакции.
func (s *UserServiceImpl) Register(ctx context.Context, req models.RegisterRequest) (*models.User, string, error) {
	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		return nil, "", ErrEmptyCredentials
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	vendor := &models.Vendor{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.VendorName),
		Email: strings.TrimSpace(req.Email),
	}
	if err := s.vendorStorage.CreateTx(ctx, tx, vendor); err != nil {
		return nil, "", fmt.Errorf("failed to create vendor: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         models.RoleVendor,
		VendorID:     vendor.ID,
	}
	if err := s.userStorage.CreateTx(ctx, tx, user); err != nil {
		if errors.Is(err, storage.ErrLoginExists) {
			return nil, "", storage.ErrLoginExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, "", fmt.Errorf("commit tx: %w", err)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("vendor registered", zap.String("vendor_id", vendor.ID.String()), zap.String("login", login))
	return user, token, nil
}

// Login аутентифицирует пользователя.
func (s *UserServiceImpl) Login(ctx context.Context, login, password string) (*models.User, string, error) {
	if login == "" || password == "" {
		return nil, "", ErrEmptyCredentials
	}

	user, err := s.userStorage.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to get user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// EnsureAdmin создаёт администратора, если его ещё нет. Пароль существующего
// администратора не меняется.
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, login, password string) error {
	if login == "" || password == "" {
		return ErrEmptyCredentials
	}

	existing, err := s.userStorage.GetByLogin(ctx, login)
	switch {
	case err == nil:
		if existing.Role != models.RoleAdmin {
			return ErrAdminLoginTaken
		}
		return nil
	case !errors.Is(err, storage.ErrUserNotFound):
		return fmt.Errorf("failed to get user: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: passwordHash,
		Role:         models.RoleAdmin,
	}
	if err := s.userStorage.Create(ctx, admin); err != nil {
		if errors.Is(err, storage.ErrLoginExists) {
			return nil
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}

	s.logger.Info("admin account created", zap.String("login", login))
	return nil
}

// generateToken генерирует JWT токен для пользователя.
func (s *UserServiceImpl) generateToken(user *models.User) (string, error) {
	exp := s.tokenExpiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	return auth.GenerateToken(user, s.jwtSecret, exp)
}
