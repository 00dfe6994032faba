package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/category"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/product"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/realtime"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/supplier"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/user"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCategoryService struct {
	mock.Mock
}

func (m *mockCategoryService) GetTree(ctx context.Context, query *string, includeInactive bool) ([]*category.Category, error) {
	args := m.Called(ctx, query, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *mockCategoryService) GetParentOptions(ctx context.Context, excludeID *string) ([]*category.Category, error) {
	args := m.Called(ctx, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*category.Category), args.Error(1)
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, input category.CreateCategoryInput) (*category.Category, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, id string, input category.UpdateCategoryInput) (*category.Category, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*category.Category), args.Error(1)
}

func (m *mockCategoryService) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) Checkout(ctx context.Context, input order.CheckoutInput) ([]*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *mockOrderService) GetOrders(ctx context.Context, filter order.Filter, limit, page *int32) ([]*order.Order, error) {
	args := m.Called(ctx, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *mockOrderService) GetOrderDetail(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) TransitionStatus(ctx context.Context, id string, next order.Status) (*order.Order, error) {
	args := m.Called(ctx, id, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderService) SetPaymentStatus(ctx context.Context, id, paymentStatus string) error {
	return m.Called(ctx, id, paymentStatus).Error(0)
}

func (m *mockOrderService) SetNotes(ctx context.Context, id, notes string) error {
	return m.Called(ctx, id, notes).Error(0)
}

func (m *mockOrderService) RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	args := m.Called(ctx, olderThan)
	return args.Int(0), args.Error(1)
}

type testServer struct {
	e          *echo.Echo
	tokens     *user.TokenManager
	categories *mockCategoryService
	orders     *mockOrderService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	tokens, err := user.NewTokenManager("test-secret")
	require.NoError(t, err)

	categories := new(mockCategoryService)
	orders := new(mockOrderService)

	e := NewServer(Services{
		Tokens:     tokens,
		Categories: categories,
		Orders:     orders,
		Hub:        realtime.NewHub(),
	})

	return &testServer{e: e, tokens: tokens, categories: categories, orders: orders}
}

func (ts *testServer) request(t *testing.T, method, path, body string, u *user.User) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if u != nil {
		token, err := ts.tokens.Generate(u)
		require.NoError(t, err)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)
	return rec
}

func adminUser() *user.User {
	return &user.User{ID: "admin-1", Email: "admin@example.com", Role: utils.RoleAdmin}
}

func supplierUser(supplierID string) *user.User {
	return &user.User{ID: "user-2", Email: "owner@example.com", Role: utils.RoleSupplier, SupplierID: &supplierID}
}

func customerUser() *user.User {
	return &user.User{ID: "user-1", Email: "c@example.com", Role: utils.RoleCustomer}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCategoryWrite_AdminOnly(t *testing.T) {
	ts := newTestServer(t)

	t.Run("Anonymous", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/api/categories", `{"nameEn":"Food"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Customer", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/api/categories", `{"nameEn":"Food"}`, customerUser())
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Admin", func(t *testing.T) {
		ts.categories.On("CreateCategory", mock.Anything, mock.MatchedBy(func(in category.CreateCategoryInput) bool {
			return in.NameEn == "Food"
		})).Return(&category.Category{ID: "cat-1", NameEn: "Food"}, nil)

		rec := ts.request(t, http.MethodPost, "/api/categories", `{"nameEn":"Food"}`, adminUser())
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestCategoryUpdate_CycleMapsToConflict(t *testing.T) {
	ts := newTestServer(t)

	ts.categories.On("UpdateCategory", mock.Anything, "cat-1", mock.Anything).
		Return(nil, category.ErrCyclicReference)

	rec := ts.request(t, http.MethodPatch, "/api/categories/cat-1", `{"parentCategoryId":"cat-3"}`, adminUser())
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCheckout_RoleGate(t *testing.T) {
	ts := newTestServer(t)

	body := `{"items":[{"productId":"prod-1","quantity":1}]}`

	t.Run("SupplierForbidden", func(t *testing.T) {
		rec := ts.request(t, http.MethodPost, "/api/orders/checkout", body, supplierUser("sup-1"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("CustomerAllowed", func(t *testing.T) {
		ts.orders.On("Checkout", mock.Anything, mock.Anything).
			Return([]*order.Order{{ID: "order-1"}}, nil)

		rec := ts.request(t, http.MethodPost, "/api/orders/checkout", body, customerUser())
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestTransition_StatusCodes(t *testing.T) {
	ts := newTestServer(t)

	t.Run("UnknownStatus", func(t *testing.T) {
		rec := ts.request(t, http.MethodPatch, "/api/orders/order-1/status", `{"status":"shipped"}`, supplierUser("sup-1"))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Conflict", func(t *testing.T) {
		ts.orders.On("TransitionStatus", mock.Anything, "order-1", order.StatusConfirmed).
			Return(nil, order.ErrConcurrentModification).Once()

		rec := ts.request(t, http.MethodPatch, "/api/orders/order-1/status", `{"status":"confirmed"}`, supplierUser("sup-1"))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Success", func(t *testing.T) {
		ts.orders.On("TransitionStatus", mock.Anything, "order-1", order.StatusConfirmed).
			Return(&order.Order{ID: "order-1", Status: order.StatusConfirmed}, nil).Once()

		rec := ts.request(t, http.MethodPatch, "/api/orders/order-1/status", `{"status":"confirmed"}`, supplierUser("sup-1"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPaymentWebhook(t *testing.T) {
	ts := newTestServer(t)

	ts.orders.On("SetPaymentStatus", mock.Anything, "order-1", "paid").Return(nil)

	rec := ts.request(t, http.MethodPost, "/webhooks/payment", `{"orderId":"order-1","paymentStatus":"paid"}`, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHttpStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{order.ErrOrderNotFound, http.StatusNotFound},
		{category.ErrCategoryNotFound, http.StatusNotFound},
		{product.ErrProductNotFound, http.StatusNotFound},
		{supplier.ErrSupplierNotFound, http.StatusNotFound},
		{user.ErrInvalidCredentials, http.StatusUnauthorized},
		{order.ErrUnauthorized, http.StatusForbidden},
		{product.ErrUnauthorized, http.StatusForbidden},
		{order.ErrInvalidTransition, http.StatusConflict},
		{order.ErrConcurrentModification, http.StatusConflict},
		{category.ErrCyclicReference, http.StatusConflict},
		{supplier.ErrAlreadyDecided, http.StatusConflict},
		{product.ErrHotDealExists, http.StatusConflict},
		{user.ErrEmailExists, http.StatusConflict},
		{order.ErrNoItems, http.StatusBadRequest},
		{order.ErrProductUnavailable, http.StatusBadRequest},
		{category.ErrNameRequired, http.StatusBadRequest},
		{user.ErrWeakPassword, http.StatusBadRequest},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, httpStatus(tc.err), tc.err.Error())
	}

	// Wrapped sentinels map the same way.
	wrapped := errors.Join(errors.New("context"), order.ErrInvalidTransition)
	assert.Equal(t, http.StatusConflict, httpStatus(wrapped))
}
