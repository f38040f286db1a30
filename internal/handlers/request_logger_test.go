package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agamariel/vendorpay/internal/auth"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	userID := uuid.New()

	core, logs := observer.New(zapcore.InfoLevel)
	e := newTestEcho()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zap.NewNop())
	e.Use(RequestLogger(zap.New(core)))
	e.GET("/api/vendor/payouts", func(c echo.Context) error {
		c.Set(string(auth.UserIDKey), userID)
		return c.NoContent(http.StatusOK)
	})
	e.GET("/api/categories", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "category not found")
	})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/vendor/payouts", nil))
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/categories?slug=x", nil))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)

	authed := entries[0].ContextMap()
	assert.Equal(t, "/api/vendor/payouts", authed["uri"])
	assert.EqualValues(t, http.StatusOK, authed["status"])
	assert.Equal(t, userID.String(), authed["user_id"])

	public := entries[1].ContextMap()
	assert.EqualValues(t, http.StatusNotFound, public["status"])
	assert.NotContains(t, public, "user_id")
}
