// Package api is the REST surface of the marketplace. Handlers stay thin:
// bind, call the service, map the error, encode the result.
package api

import (
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/category"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/middleware"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/product"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/realtime"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/supplier"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/user"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/labstack/echo/v4"
)

type Services struct {
	Users      user.Service
	Tokens     *user.TokenManager
	Categories category.Service
	Products   product.Service
	Orders     order.Service
	Suppliers  supplier.Service
	Hub        *realtime.Hub
}

// NewServer builds the echo instance with all routes and middleware attached.
func NewServer(s Services) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Auth(s.Tokens))
	e.Use(middleware.NewRateLimiter().Middleware())

	auth := NewAuthHandler(s.Users)
	categories := NewCategoryHandler(s.Categories)
	products := NewProductHandler(s.Products)
	orders := NewOrderHandler(s.Orders)
	suppliers := NewSupplierHandler(s.Suppliers)
	feed := NewFeedHandler(s.Hub)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	api.POST("/auth/register", auth.Register)
	api.POST("/auth/login", auth.Login)

	// Category reads are public; writes are admin console operations.
	api.GET("/categories", categories.GetTree)
	api.GET("/categories/parent-options", categories.GetParentOptions)
	api.POST("/categories", categories.Create, middleware.RequireRole(utils.RoleAdmin))
	api.PATCH("/categories/:id", categories.Update, middleware.RequireRole(utils.RoleAdmin))
	api.PATCH("/categories/:id/active", categories.SetActive, middleware.RequireRole(utils.RoleAdmin))
	api.DELETE("/categories/:id", categories.Delete, middleware.RequireRole(utils.RoleAdmin))

	api.GET("/products", products.List)
	api.GET("/products/:id", products.Detail)
	api.POST("/products", products.Create, middleware.RequireRole(utils.RoleSupplier))
	api.PATCH("/products/:id/availability", products.SetAvailability,
		middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin))
	api.PATCH("/products/:id/hot-deal", products.SetHotDeal,
		middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin))

	api.POST("/orders/checkout", orders.Checkout, middleware.RequireRole(utils.RoleCustomer))
	api.GET("/orders", orders.List, middleware.RequireAuth())
	api.GET("/orders/:id", orders.Detail, middleware.RequireAuth())
	api.PATCH("/orders/:id/status", orders.Transition,
		middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin))
	api.PATCH("/orders/:id/notes", orders.SetNotes, middleware.RequireAuth())

	// Payment gateway callback, no user session.
	e.POST("/webhooks/payment", orders.PaymentWebhook)

	api.GET("/suppliers", suppliers.List)
	api.GET("/suppliers/:id", suppliers.Detail)
	api.POST("/suppliers/apply", suppliers.Apply, middleware.RequireAuth())
	api.POST("/suppliers/:id/approve", suppliers.Approve, middleware.RequireRole(utils.RoleAdmin))
	api.POST("/suppliers/:id/reject", suppliers.Reject, middleware.RequireRole(utils.RoleAdmin))

	api.GET("/feed", feed.Subscribe, middleware.RequireRole(utils.RoleSupplier, utils.RoleAdmin))

	return e
}
