package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agamariel/vendorpay/internal/auth"
	"github.com/agamariel/vendorpay/internal/config"
	"github.com/agamariel/vendorpay/internal/handlers"
	"github.com/agamariel/vendorpay/internal/metrics"
	"github.com/agamariel/vendorpay/internal/migrations"
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/notify"
	"github.com/agamariel/vendorpay/internal/services"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// App структура для управления приложением и его зависимостями.
type App struct {
	cfg      *config.Config
	logger   *zap.Logger
	dbPool   *pgxpool.Pool
	echo     *echo.Echo
	releaser *services.EarningReleaser

	userService   *services.UserServiceImpl
	payoutService *services.PayoutServiceImpl

	// Handlers
	userHandler     *handlers.UserHandler
	payoutHandler   *handlers.PayoutHandler
	vendorHandler   *handlers.VendorHandler
	earningHandler  *handlers.EarningHandler
	categoryHandler *handlers.CategoryHandler
}

// NewApp создаёт и инициализирует новое приложение.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	decimal.MarshalJSONWithoutQuotes = true

	app := &App{
		cfg:    cfg,
		logger: logger,
	}

	if err := app.initDatabase(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	app.initDependencies()

	if err := app.ensureAdmin(ctx); err != nil {
		app.dbPool.Close()
		return nil, err
	}

	app.initServer()

	return app, nil
}

// initDatabase выполняет миграции и открывает пул подключений.
func (app *App) initDatabase(ctx context.Context) error {
	if app.cfg.DatabaseURI == "" {
		return fmt.Errorf("DATABASE_URI is required")
	}

	app.logger.Info("running database migrations")
	sqlDB, err := sql.Open("pgx", app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to open database connection: %w", err)
	}
	defer sqlDB.Close()

	if err := migrations.Run(sqlDB); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	version, err := migrations.Version(sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	app.logger.Info("migrations completed", zap.Int64("version", version))

	dbPool, err := pgxpool.New(ctx, app.cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return fmt.Errorf("unable to ping database: %w", err)
	}

	app.dbPool = dbPool
	app.logger.Info("connected to database")

	return nil
}

// initDependencies собирает storage, сервисы и обработчики.
func (app *App) initDependencies() {
	// Storage layer
	userStorage := storage.NewPostgresUserStorage(app.dbPool)
	vendorStorage := storage.NewPostgresVendorStorage(app.dbPool)
	earningStorage := storage.NewPostgresEarningStorage(app.dbPool)
	payoutStorage := storage.NewPostgresPayoutStorage(app.dbPool)
	catalogStorage := storage.NewPostgresCatalogStorage(app.dbPool)

	// Уведомления. Без ключа Resend сервис выплат работает без писем.
	var notifier services.Notifier
	if app.cfg.EmailEnabled() {
		client := notify.NewResendClient(app.cfg.ResendBaseURL, app.cfg.ResendAPIKey, 5*time.Second)
		notifier = notify.NewPayoutNotifier(client, app.cfg.EmailFrom, app.logger)
		app.logger.Info("payout emails enabled", zap.String("from", app.cfg.EmailFrom))
	} else {
		app.logger.Warn("RESEND_API_KEY is not configured, payout emails are disabled")
	}

	// Service layer
	app.userService = services.NewUserService(app.dbPool, userStorage, vendorStorage,
		app.cfg.JWTSecret, app.cfg.TokenExpiration, app.logger)
	app.payoutService = services.NewPayoutService(app.dbPool, payoutStorage, earningStorage,
		vendorStorage, notifier, app.logger)
	earningService := services.NewEarningService(earningStorage, vendorStorage, app.logger)
	vendorService := services.NewVendorService(vendorStorage)
	categoryService := services.NewCategoryService(catalogStorage)

	app.releaser = services.NewEarningReleaser(earningStorage, app.cfg.EarningHoldPeriod,
		app.cfg.ReleaseSchedule, app.logger)

	// Handler layer
	app.userHandler = handlers.NewUserHandler(app.userService, app.cfg.TokenExpiration)
	app.payoutHandler = handlers.NewPayoutHandler(app.payoutService)
	app.vendorHandler = handlers.NewVendorHandler(vendorService)
	app.earningHandler = handlers.NewEarningHandler(earningService)
	app.categoryHandler = handlers.NewCategoryHandler(categoryService)
}

// ensureAdmin создаёт учётную запись администратора из конфигурации.
func (app *App) ensureAdmin(ctx context.Context) error {
	if app.cfg.AdminLogin == "" {
		app.logger.Warn("ADMIN_LOGIN is not configured, admin endpoints are unreachable")
		return nil
	}
	if err := app.userService.EnsureAdmin(ctx, app.cfg.AdminLogin, app.cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}
	return nil
}

// initServer инициализирует HTTP-сервер и настраивает маршруты.
func (app *App) initServer() {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.NewHTTPErrorHandler(app.logger)

	// Middleware
	e.Use(handlers.RequestLogger(app.logger))
	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch},
	}))

	e.GET("/metrics", metrics.Handler())

	// Публичные маршруты
	e.POST("/api/auth/register", app.userHandler.Register)
	e.POST("/api/auth/login", app.userHandler.Login)
	e.GET("/api/categories", app.categoryHandler.Get)

	jwt := auth.JWTMiddleware(app.cfg.JWTSecret)

	vendor := e.Group("/api/vendor", jwt, auth.RequireRole(models.RoleVendor))
	vendor.GET("/payouts", app.payoutHandler.GetSummary)
	vendor.POST("/payouts", app.payoutHandler.Request)
	vendor.PUT("/bank-account", app.vendorHandler.UpdateBankAccount)

	admin := e.Group("/api/admin", jwt, auth.RequireRole(models.RoleAdmin))
	admin.GET("/payouts", app.payoutHandler.List)
	admin.PATCH("/payouts", app.payoutHandler.UpdateStatus)
	admin.POST("/earnings", app.earningHandler.Record)

	app.echo = e
}

// Start запускает воркер начислений и HTTP-сервер.
func (app *App) Start(ctx context.Context) error {
	if err := app.releaser.Start(ctx); err != nil {
		return fmt.Errorf("failed to start earning releaser: %w", err)
	}

	app.logger.Info("starting server", zap.String("address", app.cfg.RunAddress))
	if err := app.echo.Start(app.cfg.RunAddress); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

// Shutdown корректно завершает работу приложения.
func (app *App) Shutdown(ctx context.Context) error {
	app.logger.Info("shutting down server")

	if err := app.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	app.releaser.Stop(ctx)
	app.payoutService.Wait()

	if app.dbPool != nil {
		app.dbPool.Close()
	}

	app.logger.Info("server gracefully stopped")
	return nil
}
