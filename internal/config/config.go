package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

const defaultJWTSecret = "default-secret-change-in-production"

// Config содержит конфигурацию приложения.
type Config struct {
	RunAddress      string        `env:"RUN_ADDRESS"`
	DatabaseURI     string        `env:"DATABASE_URI"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenExpiration time.Duration `env:"TOKEN_EXPIRATION"`
	LogLevel        string        `env:"LOG_LEVEL"`

	// Учётная запись администратора, создаётся при старте, если задана.
	AdminLogin    string `env:"ADMIN_LOGIN"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// Resend. Пустой ключ отключает отправку писем.
	ResendAPIKey  string `env:"RESEND_API_KEY"`
	ResendBaseURL string `env:"RESEND_BASE_URL"`
	EmailFrom     string `env:"EMAIL_FROM"`

	// Перевод начислений pending -> available.
	EarningHoldPeriod time.Duration `env:"EARNING_HOLD_PERIOD"`
	ReleaseSchedule   string        `env:"RELEASE_SCHEDULE"`
}

// Load загружает конфигурацию из флагов командной строки и переменных окружения.
// Приоритет: переменные окружения > флаги > значения по умолчанию.
func Load() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse разбирает переданные аргументы и накладывает поверх них окружение.
func Parse(args []string) (*Config, error) {
	cfg := &Config{}

	fs := flag.NewFlagSet("vendorpay", flag.ContinueOnError)
	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "адрес и порт запуска сервиса")
	fs.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL")
	fs.DurationVar(&cfg.TokenExpiration, "t", 24*time.Hour, "время жизни JWT токена")
	fs.StringVar(&cfg.LogLevel, "l", "info", "уровень логирования")
	fs.DurationVar(&cfg.EarningHoldPeriod, "hold", 72*time.Hour, "срок удержания начислений")
	fs.StringVar(&cfg.ReleaseSchedule, "release", "@every 5m", "расписание перевода начислений (cron)")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	cfg.JWTSecret = defaultJWTSecret
	cfg.ResendBaseURL = "https://api.resend.com"
	cfg.EmailFrom = "payouts@vendorpay.local"

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.TokenExpiration <= 0 {
		return errors.New("token expiration must be positive")
	}
	if c.EarningHoldPeriod < 0 {
		return errors.New("earning hold period must not be negative")
	}
	if c.ReleaseSchedule == "" {
		return errors.New("release schedule must not be empty")
	}
	if (c.AdminLogin == "") != (c.AdminPassword == "") {
		return errors.New("ADMIN_LOGIN and ADMIN_PASSWORD must be set together")
	}
	return nil
}

// EmailEnabled сообщает, настроена ли отправка писем.
func (c *Config) EmailEnabled() bool {
	return c.ResendAPIKey != ""
}
