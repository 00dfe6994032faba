package api

import (
	"net/http"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/product"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	products product.Service
}

func NewProductHandler(products product.Service) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) List(c echo.Context) error {
	filter := product.Filter{
		AvailableOnly: c.QueryParam("availableOnly") == "true",
	}
	if s := c.QueryParam("supplierId"); s != "" {
		filter.SupplierID = &s
	}
	if s := c.QueryParam("categoryId"); s != "" {
		filter.CategoryID = &s
	}

	products, err := h.products.ListProducts(c.Request().Context(),
		filter, int32QueryParam(c, "limit"), int32QueryParam(c, "page"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Detail(c echo.Context) error {
	p, err := h.products.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

type createProductRequest struct {
	CategoryID      *string `json:"categoryId"`
	NameEn          string  `json:"nameEn"`
	NameAr          *string `json:"nameAr"`
	Description     *string `json:"description"`
	Price           int64   `json:"price"`
	DiscountedPrice *int64  `json:"discountedPrice"`
}

// Create lists a new product under the calling supplier's account.
func (h *ProductHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()
	supplierID, ok := utils.GetSupplierIDFromContext(ctx)
	if !ok {
		return respondError(c, order.ErrUnauthorized)
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	p, err := h.products.CreateProduct(ctx, product.CreateProductInput{
		SupplierID:      supplierID,
		CategoryID:      req.CategoryID,
		NameEn:          req.NameEn,
		NameAr:          req.NameAr,
		Description:     req.Description,
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

type availabilityRequest struct {
	IsAvailable bool `json:"isAvailable"`
}

func (h *ProductHandler) SetAvailability(c echo.Context) error {
	var req availabilityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.products.SetAvailability(c.Request().Context(), c.Param("id"), req.IsAvailable); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type hotDealRequest struct {
	IsHotDeal bool `json:"isHotDeal"`
}

func (h *ProductHandler) SetHotDeal(c echo.Context) error {
	var req hotDealRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.products.SetHotDeal(c.Request().Context(), c.Param("id"), req.IsHotDeal); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
