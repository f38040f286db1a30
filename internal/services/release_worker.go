package services

import (
	"context"
	"fmt"
	"time"

	"github.com/agamariel/vendorpay/internal/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// EarningReleaser по расписанию переводит начисления из pending в available
// после окончания срока удержания.
type EarningReleaser struct {
	earnings EarningStorage
	hold     time.Duration
	schedule string
	cron     *cron.Cron
	logger   *zap.Logger
	now      func() time.Time
}

// NewEarningReleaser создаёт воркер. schedule - cron-выражение или дескриптор вида "@every 5m".
func NewEarningReleaser(earnings EarningStorage, hold time.Duration, schedule string, logger *zap.Logger) *EarningReleaser {
	if schedule == "" {
		schedule = "@every 5m"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EarningReleaser{
		earnings: earnings,
		hold:     hold,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// Start регистрирует задание и запускает планировщик. Первый проход выполняется сразу.
func (w *EarningReleaser) Start(ctx context.Context) error {
	_, err := w.cron.AddFunc(w.schedule, func() {
		if _, err := w.Release(ctx); err != nil {
			w.logger.Error("earning release failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule earning release %q: %w", w.schedule, err)
	}

	if _, err := w.Release(ctx); err != nil {
		w.logger.Error("earning release failed on initial run", zap.Error(err))
	}

	w.cron.Start()
	w.logger.Info("earning releaser started",
		zap.String("schedule", w.schedule),
		zap.Duration("hold", w.hold))
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущего прохода.
func (w *EarningReleaser) Stop(ctx context.Context) {
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Release переводит в available начисления старше срока удержания.
func (w *EarningReleaser) Release(ctx context.Context) (int64, error) {
	now := w.now().UTC()
	cutoff := now.Add(-w.hold)

	n, err := w.earnings.ReleasePending(ctx, cutoff, now)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		metrics.RecordEarningsReleased(n)
		w.logger.Info("earnings released", zap.Int64("count", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}
