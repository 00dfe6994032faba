package api

import (
	"net/http"
	"strconv"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orders order.Service
}

func NewOrderHandler(orders order.Service) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Checkout creates one pending order per supplier in the cart.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var req order.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	orders, err := h.orders.Checkout(c.Request().Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, orders)
}

func (h *OrderHandler) List(c echo.Context) error {
	var filter order.Filter
	if s := c.QueryParam("status"); s != "" {
		status := order.Status(s)
		if !status.Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
		}
		filter.Status = &status
	}

	limit := int32QueryParam(c, "limit")
	page := int32QueryParam(c, "page")

	orders, err := h.orders.GetOrders(c.Request().Context(), filter, limit, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Detail(c echo.Context) error {
	o, err := h.orders.GetOrderDetail(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

type transitionRequest struct {
	Status string `json:"status"`
}

// Transition moves an order to its next lifecycle status.
func (h *OrderHandler) Transition(c echo.Context) error {
	var req transitionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	next := order.Status(req.Status)
	if !next.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	o, err := h.orders.TransitionStatus(c.Request().Context(), c.Param("id"), next)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, o)
}

type paymentWebhookRequest struct {
	OrderID       string `json:"orderId"`
	PaymentStatus string `json:"paymentStatus"`
}

// PaymentWebhook is the gateway callback; it only flips the payment field.
func (h *OrderHandler) PaymentWebhook(c echo.Context) error {
	var req paymentWebhookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.orders.SetPaymentStatus(c.Request().Context(), req.OrderID, req.PaymentStatus); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *OrderHandler) SetNotes(c echo.Context) error {
	var req notesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.orders.SetNotes(c.Request().Context(), c.Param("id"), req.Notes); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func int32QueryParam(c echo.Context, name string) *int32 {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}
	return utils.Int32Ptr(int32(v))
}
