package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/agamariel/vendorpay/internal/auth"
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/services"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PayoutHandler обрабатывает запросы продавцов и администраторов по выплатам.
type PayoutHandler struct {
	payoutService services.PayoutService
}

// NewPayoutHandler создаёт новый экземпляр PayoutHandler.
func NewPayoutHandler(payoutService services.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutService: payoutService}
}

// GetSummary обрабатывает GET /api/vendor/payouts.
func (h *PayoutHandler) GetSummary(c echo.Context) error {
	vendorID, err := auth.GetVendorIDFromContext(c)
	if err != nil {
		return err
	}

	summary, err := h.payoutService.GetAccountSummary(c.Request().Context(), vendorID)
	if err != nil {
		if errors.Is(err, storage.ErrVendorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return internalError(err)
	}

	return c.JSON(http.StatusOK, summary)
}

// Request обрабатывает POST /api/vendor/payouts.
func (h *PayoutHandler) Request(c echo.Context) error {
	vendorID, err := auth.GetVendorIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.PayoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payout, err := h.payoutService.RequestPayout(c.Request().Context(), vendorID, req.Amount, req.PaymentMethod)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPayoutAmount),
			errors.Is(err, services.ErrInvalidPaymentMethod),
			errors.Is(err, services.ErrInsufficientBalance),
			errors.Is(err, services.ErrBankAccountRequired):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrVendorNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return internalError(err)
	}

	return c.JSON(http.StatusCreated, payout)
}

// List обрабатывает GET /api/admin/payouts.
func (h *PayoutHandler) List(c echo.Context) error {
	var filter models.PayoutFilter

	if s := c.QueryParam("status"); s != "" {
		filter.Status = models.PayoutStatus(s)
	}
	if s := c.QueryParam("vendor_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid vendor_id")
		}
		filter.VendorID = id
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		return err
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		return err
	}

	list, err := h.payoutService.ListPayouts(c.Request().Context(), filter)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPayoutStatus) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return internalError(err)
	}

	return c.JSON(http.StatusOK, list)
}

// UpdateStatus обрабатывает PATCH /api/admin/payouts.
func (h *PayoutHandler) UpdateStatus(c echo.Context) error {
	var req models.UpdatePayoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	payoutID, err := uuid.Parse(req.PayoutID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payoutId")
	}

	payout, err := h.payoutService.UpdateStatus(c.Request().Context(), payoutID,
		models.PayoutStatus(req.Status), req.FailureReason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPayoutStatus),
			errors.Is(err, services.ErrPayoutFinalized):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrPayoutNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrEarningsChanged):
			return echo.NewHTTPError(http.StatusConflict, err.Error())
		}
		return internalError(err)
	}

	return c.JSON(http.StatusOK, payout)
}

// queryInt читает неотрицательный целый параметр запроса, 0 если он не задан.
func queryInt(c echo.Context, name string) (int, error) {
	s := c.QueryParam(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}
