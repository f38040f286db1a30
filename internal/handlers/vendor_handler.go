package handlers

import (
	"errors"
	"net/http"

	"github.com/agamariel/vendorpay/internal/auth"
	"github.com/agamariel/vendorpay/internal/models"
	"github.com/agamariel/vendorpay/internal/services"
	"github.com/agamariel/vendorpay/internal/storage"
	"github.com/labstack/echo/v4"
)

// VendorHandler обрабатывает запросы к профилю продавца.
type VendorHandler struct {
	vendorService services.VendorService
}

// NewVendorHandler создаёт новый экземпляр VendorHandler.
func NewVendorHandler(vendorService services.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// UpdateBankAccount обрабатывает PUT /api/vendor/bank-account.
func (h *VendorHandler) UpdateBankAccount(c echo.Context) error {
	vendorID, err := auth.GetVendorIDFromContext(c)
	if err != nil {
		return err
	}

	var req models.BankAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	vendor, err := h.vendorService.UpdateBankAccount(c.Request().Context(), vendorID, req)
	if err != nil {
		if errors.Is(err, storage.ErrVendorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return internalError(err)
	}

	return c.JSON(http.StatusOK, vendor)
}
