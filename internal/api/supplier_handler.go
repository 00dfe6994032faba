package api

import (
	"net/http"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/supplier"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/labstack/echo/v4"
)

type SupplierHandler struct {
	suppliers supplier.Service
}

func NewSupplierHandler(suppliers supplier.Service) *SupplierHandler {
	return &SupplierHandler{suppliers: suppliers}
}

type applyRequest struct {
	NameEn      string  `json:"nameEn"`
	NameAr      *string `json:"nameAr"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
}

// Apply registers a supplier application for the calling user.
func (h *SupplierHandler) Apply(c echo.Context) error {
	ctx := c.Request().Context()
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return respondError(c, order.ErrUnauthorized)
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	s, err := h.suppliers.Apply(ctx, supplier.ApplyInput{
		UserID:      userID,
		NameEn:      req.NameEn,
		NameAr:      req.NameAr,
		Description: req.Description,
		Phone:       req.Phone,
		Address:     req.Address,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SupplierHandler) List(c echo.Context) error {
	var filter supplier.Filter
	if s := c.QueryParam("status"); s != "" {
		status := supplier.ApprovalStatus(s)
		filter.Status = &status
	}

	suppliers, err := h.suppliers.ListSuppliers(c.Request().Context(),
		filter, int32QueryParam(c, "limit"), int32QueryParam(c, "page"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, suppliers)
}

func (h *SupplierHandler) Detail(c echo.Context) error {
	s, err := h.suppliers.GetSupplier(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SupplierHandler) Approve(c echo.Context) error {
	s, err := h.suppliers.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

type rejectRequest struct {
	Reason *string `json:"reason"`
}

func (h *SupplierHandler) Reject(c echo.Context) error {
	var req rejectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	s, err := h.suppliers.Reject(c.Request().Context(), c.Param("id"), req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
