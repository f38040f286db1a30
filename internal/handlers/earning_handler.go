package handlers

import (
	"errors"
	"net/http"

	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/services"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// EarningHandler регистрирует продажи продавцов.
type EarningHandler struct {
	earningService services.EarningService
}

// NewEarningHandler создаёт новый экземпляр EarningHandler.
func NewEarningHandler(earningService services.EarningService) *EarningHandler {
	return &EarningHandler{earningService: earningService}
}

// Record обрабатывает POST /api/admin/earnings.
func (h *EarningHandler) Record(c echo.Context) error {
	var req models.RecordEarningRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vendorID, err := uuid.Parse(req.VendorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid vendor_id")
	}

	earning, err := h.earningService.RecordEarning(c.Request().Context(), vendorID,
		req.OrderRef, req.GrossAmount, req.CommissionAmount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEarningAmount):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, storage.ErrVendorNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return internalError(err)
	}

	return c.JSON(http.StatusCreated, earning)
}
