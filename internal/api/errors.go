package api

import (
	"errors"
	"net/http"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/category"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/product"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/supplier"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/user"

	"github.com/labstack/echo/v4"
)

// httpStatus maps domain sentinels onto HTTP statuses. Anything unmapped is a
// store or programming error and stays a 500 with a generic body.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, category.ErrCategoryNotFound),
		errors.Is(err, order.ErrOrderNotFound),
		errors.Is(err, product.ErrProductNotFound),
		errors.Is(err, supplier.ErrSupplierNotFound),
		errors.Is(err, user.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, user.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, order.ErrUnauthorized),
		errors.Is(err, product.ErrUnauthorized):
		return http.StatusForbidden

	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrConcurrentModification),
		errors.Is(err, category.ErrCyclicReference),
		errors.Is(err, supplier.ErrAlreadyDecided),
		errors.Is(err, product.ErrHotDealExists),
		errors.Is(err, user.ErrEmailExists):
		return http.StatusConflict

	case errors.Is(err, category.ErrNameRequired),
		errors.Is(err, category.ErrParentNotFound),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidQuantity),
		errors.Is(err, order.ErrNegativeAmount),
		errors.Is(err, order.ErrInvalidPaymentStatus),
		errors.Is(err, order.ErrProductUnavailable),
		errors.Is(err, product.ErrNameRequired),
		errors.Is(err, product.ErrNegativePrice),
		errors.Is(err, supplier.ErrNameRequired),
		errors.Is(err, user.ErrWeakPassword):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func respondError(c echo.Context, err error) error {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		return c.JSON(status, map[string]string{"error": "internal server error"})
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
