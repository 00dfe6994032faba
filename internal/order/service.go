package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/metrics"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/product"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrProductUnavailable is returned when a checkout line references a product
// that does not exist or is not currently purchasable.
var ErrProductUnavailable = errors.New("product is not available")

const (
	// Flat delivery fee per supplier order until zone-based pricing lands.
	defaultDeliveryFee = 1000

	maxNumberRetries = 3
)

// Catalog resolves priced products at checkout time.
type Catalog interface {
	GetProductsForCheckout(ctx context.Context, productIDs []string) (map[string]*product.Product, error)
}

// Notifier dispatches customer/supplier notifications. Failures are secondary:
// they are logged and never fail the order write.
type Notifier interface {
	OrderCreated(ctx context.Context, o *Order) error
	OrderStatusChanged(ctx context.Context, o *Order) error
	OrderPendingReminder(ctx context.Context, o *Order) error
}

// Feed pushes order events to connected supplier sessions. Delivery is
// at-least-once and best effort; a broken client never fails the write.
type Feed interface {
	BroadcastOrderEvent(event OrderEvent)
}

type CheckoutItemInput struct {
	ProductID           string  `json:"productId"`
	Quantity            int32   `json:"quantity"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

type CheckoutInput struct {
	Items []CheckoutItemInput `json:"items"`
}

type Service interface {
	// Checkout splits the cart by supplier and creates one pending order per
	// supplier, each priced independently.
	Checkout(ctx context.Context, input CheckoutInput) ([]*Order, error)
	GetOrders(ctx context.Context, filter Filter, limit, page *int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, id string) (*Order, error)
	TransitionStatus(ctx context.Context, id string, next Status) (*Order, error)
	SetPaymentStatus(ctx context.Context, id, paymentStatus string) error
	SetNotes(ctx context.Context, id, notes string) error
	RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error)
}

type service struct {
	repo     Repository
	catalog  Catalog
	numbers  NumberGenerator
	notifier Notifier
	feed     Feed
}

func NewService(repo Repository, catalog Catalog, numbers NumberGenerator, notifier Notifier, feed Feed) Service {
	return &service{
		repo:     repo,
		catalog:  catalog,
		numbers:  numbers,
		notifier: notifier,
		feed:     feed,
	}
}

func (s *service) Checkout(ctx context.Context, input CheckoutInput) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Checkout"),
		zap.Int("item_count", len(input.Items)),
	)
	log.Info("checkout started")

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if len(input.Items) == 0 {
		return nil, ErrNoItems
	}

	productIDs := make([]string, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			log.Warn("invalid quantity", zap.String("product_id", item.ProductID))
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.catalog.GetProductsForCheckout(ctx, productIDs)
	if err != nil {
		log.Error("failed to load products for checkout", zap.Error(err))
		return nil, err
	}

	items := make([]CheckoutItem, 0, len(input.Items))
	for _, in := range input.Items {
		p, found := products[in.ProductID]
		if !found || !p.IsAvailable {
			log.Warn("product unavailable", zap.String("product_id", in.ProductID))
			return nil, fmt.Errorf("%w: %s", ErrProductUnavailable, in.ProductID)
		}

		items = append(items, CheckoutItem{
			ProductID:           p.ID,
			SupplierID:          p.SupplierID,
			Quantity:            in.Quantity,
			Price:               p.Price,
			DiscountedPrice:     p.DiscountedPrice,
			SpecialInstructions: in.SpecialInstructions,
		})
	}

	groups, supplierIDs := GroupItemsBySupplier(items)

	orders := make([]*Order, 0, len(supplierIDs))
	for _, supplierID := range supplierIDs {
		group := groups[supplierID]

		fee := s.deliveryFee(supplierID)
		tax := s.taxAmount(totalsBase(group))

		totals, err := ComputeTotals(group, fee, tax, 0)
		if err != nil {
			log.Error("totals computation failed", zap.String("supplier_id", supplierID), zap.Error(err))
			return nil, err
		}

		o := &Order{
			ID:             uuid.NewString(),
			UserID:         userID,
			SupplierID:     supplierID,
			Status:         StatusPending,
			PaymentStatus:  PaymentPending,
			Subtotal:       totals.Subtotal,
			DeliveryFee:    fee,
			TaxAmount:      tax,
			DiscountAmount: 0,
			TotalAmount:    totals.TotalAmount,
			NeedsReview:    totals.NeedsReview,
		}

		for _, item := range group {
			unit := item.Price
			if item.DiscountedPrice != nil {
				unit = *item.DiscountedPrice
			}
			o.Items = append(o.Items, &OrderItem{
				ID:                  uuid.NewString(),
				OrderID:             o.ID,
				ProductID:           item.ProductID,
				Quantity:            item.Quantity,
				UnitPrice:           unit,
				TotalPrice:          unit * int64(item.Quantity),
				SpecialInstructions: item.SpecialInstructions,
			})
		}

		if err := s.createWithNumberRetry(ctx, o); err != nil {
			log.Error("failed to persist order", zap.String("supplier_id", supplierID), zap.Error(err))
			return nil, err
		}
		metrics.OrdersCreated.Inc()

		s.dispatchSecondary(ctx, o, EventOrderCreated, s.notifier.OrderCreated)
		orders = append(orders, o)
	}

	log.Info("checkout success", zap.Int("orders_created", len(orders)))
	return orders, nil
}

// createWithNumberRetry regenerates the display number on a unique-constraint
// conflict instead of surfacing the collision to the customer.
func (s *service) createWithNumberRetry(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx)

	var err error
	for attempt := 0; attempt < maxNumberRetries; attempt++ {
		o.OrderNumber = s.numbers.Generate()

		err = s.repo.CreateOrderTx(ctx, o)
		if err == nil || !IsOrderNumberConflict(err) {
			return err
		}
		log.Warn("order number collision, regenerating",
			zap.String("order_number", o.OrderNumber),
			zap.Int("attempt", attempt+1),
		)
	}
	return err
}

// deliveryFee is a flat rate for every supplier. The supplier id stays in the
// signature for zone-based pricing, which keys the fee off the supplier's
// delivery zone.
func (s *service) deliveryFee(supplierID string) int64 {
	return defaultDeliveryFee
}

func (s *service) taxAmount(subtotal int64) int64 {
	// Prices are tax inclusive.
	return 0
}

// totalsBase is the pre-fee subtotal, needed before ComputeTotals runs because
// the tax amount is an input to it.

func totalsBase(items []CheckoutItem) int64 {
	var subtotal int64
	for _, item := range items {
		unit := item.Price
		if item.DiscountedPrice != nil {
			unit = *item.DiscountedPrice
		}
		subtotal += unit * int64(item.Quantity)
	}
	return subtotal
}

func (s *service) GetOrders(ctx context.Context, filter Filter, limit, page *int32) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetOrders"),
	)

	// Non-admin callers only ever see their own slice of the order table.
	switch utils.GetUserRoleFromContext(ctx) {
	case utils.RoleAdmin:
	case utils.RoleSupplier:
		supplierID, ok := utils.GetSupplierIDFromContext(ctx)
		if !ok {
			return nil, ErrUnauthorized
		}
		filter.SupplierID = &supplierID
	default:
		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok {
			return nil, ErrUnauthorized
		}
		filter.UserID = &userID
	}

	orders, err := s.repo.GetOrders(ctx, filter, limit, page)
	if err != nil {
		log.Error("failed to get orders", zap.Error(err))
		return nil, err
	}

	log.Info("GetOrders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (s *service) GetOrderDetail(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	switch utils.GetUserRoleFromContext(ctx) {
	case utils.RoleAdmin:
	case utils.RoleSupplier:
		supplierID, ok := utils.GetSupplierIDFromContext(ctx)
		if !ok || supplierID != o.SupplierID {
			return nil, ErrUnauthorized
		}
	default:
		userID, ok := utils.GetUserIDFromContext(ctx)
		if !ok || userID != o.UserID {
			return nil, ErrUnauthorized
		}
	}

	return o, nil
}

func (s *service) TransitionStatus(ctx context.Context, id string, next Status) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "TransitionStatus"),
		zap.String("order_id", id),
		zap.String("next_status", string(next)),
	)
	log.Info("TransitionStatus started")

	o, err := s.repo.GetOrderDetail(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeSupplierAction(ctx, o); err != nil {
		log.Warn("transition rejected: unauthorized")
		return nil, err
	}

	diff, err := Transition(o.Status, next, time.Now())
	if err != nil {
		log.Warn("transition rejected", zap.String("current_status", string(o.Status)), zap.Error(err))
		return nil, err
	}

	if err := s.repo.UpdateOrderStatus(ctx, id, o.Status, diff); err != nil {
		if errors.Is(err, ErrConcurrentModification) {
			metrics.TransitionConflicts.Inc()
		}
		log.Error("failed to persist transition", zap.Error(err))
		return nil, err
	}
	metrics.OrderTransitions.Inc()

	o.Status = diff.Status
	o.UpdatedAt = diff.UpdatedAt
	if diff.EstimatedDeliveryTime != nil {
		o.EstimatedDeliveryTime = diff.EstimatedDeliveryTime
	}
	if diff.ActualDeliveryTime != nil {
		o.ActualDeliveryTime = diff.ActualDeliveryTime
	}

	s.dispatchSecondary(ctx, o, EventOrderStatusChanged, s.notifier.OrderStatusChanged)

	log.Info("TransitionStatus success")
	return o, nil
}

func (s *service) authorizeSupplierAction(ctx context.Context, o *Order) error {
	switch utils.GetUserRoleFromContext(ctx) {
	case utils.RoleAdmin:
		return nil
	case utils.RoleSupplier:
		supplierID, ok := utils.GetSupplierIDFromContext(ctx)
		if ok && supplierID == o.SupplierID {
			return nil
		}
	}
	return ErrUnauthorized
}

func (s *service) SetPaymentStatus(ctx context.Context, id, paymentStatus string) error {
	switch paymentStatus {
	case PaymentPending, PaymentPaid, PaymentFailed:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, paymentStatus)
	}

	return s.repo.UpdatePaymentStatus(ctx, id, paymentStatus)
}

func (s *service) SetNotes(ctx context.Context, id, notes string) error {
	return s.repo.SetNotes(ctx, id, notes)
}

// RemindStalePending re-surfaces orders stuck in pending: the supplier gets a
// notification and the order is re-broadcast on the feed. Used by the cron
// sweep; all failures are secondary.
func (s *service) RemindStalePending(ctx context.Context, olderThan time.Duration) (int, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemindStalePending"),
	)

	cutoff := time.Now().Add(-olderThan)
	stale, err := s.repo.ListStalePending(ctx, cutoff)
	if err != nil {
		log.Error("failed to list stale pending orders", zap.Error(err))
		return 0, err
	}

	for _, o := range stale {
		s.dispatchSecondary(ctx, o, EventOrderReminder, s.notifier.OrderPendingReminder)
	}

	if len(stale) > 0 {
		log.Info("stale pending reminders dispatched", zap.Int("count", len(stale)))
	}
	return len(stale), nil
}

// dispatchSecondary runs the notification and feed broadcast for an order
// change. Both are log-and-continue: the primary write already succeeded.
func (s *service) dispatchSecondary(ctx context.Context, o *Order, eventType string, notify func(context.Context, *Order) error) {
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.ID))

	if err := notify(ctx, o); err != nil {
		log.Warn("notification dispatch failed", zap.String("event", eventType), zap.Error(err))
	}

	s.feed.BroadcastOrderEvent(OrderEvent{Type: eventType, Order: o})
}
