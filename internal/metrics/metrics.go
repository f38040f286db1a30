// Package metrics содержит прометеевские метрики сервиса.
package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorpay_http_requests_total",
			Help: "Число HTTP-запросов",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendorpay_http_request_duration_seconds",
			Help:    "Длительность HTTP-запросов",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	payoutsRequested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendorpay_payouts_requested_total",
			Help: "Число созданных заявок на выплату",
		},
	)

	payoutStatusChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendorpay_payout_status_changes_total",
			Help: "Число смен статуса выплат",
		},
		[]string{"status"},
	)

	earningsPaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendorpay_earnings_paid_total",
			Help: "Число начислений, закрытых выплатами",
		},
	)

	payoutsUnderpaid = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendorpay_payouts_underpaid_total",
			Help: "Число выплат, завершённых с недоплатой",
		},
	)

	earningsReleased = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vendorpay_earnings_released_total",
			Help: "Число начислений, переведённых в available",
		},
	)
)

// Middleware собирает метрики HTTP-запросов.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				// отдаём ошибку обработчику сразу, чтобы видеть итоговый статус
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}

			httpRequestsTotal.WithLabelValues(
				c.Request().Method,
				path,
				strconv.Itoa(c.Response().Status),
			).Inc()

			httpRequestDuration.WithLabelValues(
				c.Request().Method,
				path,
			).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

// Handler отдаёт метрики в формате Prometheus.
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}

func RecordPayoutRequested() {
	payoutsRequested.Inc()
}

func RecordPayoutStatus(status string) {
	payoutStatusChanges.WithLabelValues(status).Inc()
}

func RecordEarningsPaid(n int) {
	earningsPaid.Add(float64(n))
}

func RecordUnderpaid() {
	payoutsUnderpaid.Inc()
}

func RecordEarningsReleased(n int64) {
	earningsReleased.Add(float64(n))
}
