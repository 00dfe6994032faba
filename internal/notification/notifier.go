// Package notification dispatches outbound customer/supplier messages. The
// default sender only logs; swapping in email/SMS/push later means implementing
// the same interfaces. Every caller treats dispatch as secondary and must not
// fail its primary action on a notification error.
package notification

import (
	"context"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/order"
	"github.com/smsgrouprw-hash/Talabat-sub000/internal/supplier"

	"go.uber.org/zap"
)

// LogNotifier satisfies both order.Notifier and supplier.Notifier by writing a
// structured log line per event.
type LogNotifier struct{}

var (
	_ order.Notifier    = (*LogNotifier)(nil)
	_ supplier.Notifier = (*LogNotifier)(nil)
)

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) OrderCreated(ctx context.Context, o *order.Order) error {
	logger.FromCtx(ctx).Info("notify: order created",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", o.UserID),
		zap.String("supplier_id", o.SupplierID),
		zap.Int64("total_amount", o.TotalAmount),
	)
	return nil
}

func (n *LogNotifier) OrderStatusChanged(ctx context.Context, o *order.Order) error {
	logger.FromCtx(ctx).Info("notify: order status changed",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("user_id", o.UserID),
		zap.String("status", string(o.Status)),
	)
	return nil
}

func (n *LogNotifier) OrderPendingReminder(ctx context.Context, o *order.Order) error {
	logger.FromCtx(ctx).Info("notify: order pending reminder",
		zap.String("order_id", o.ID),
		zap.String("order_number", o.OrderNumber),
		zap.String("supplier_id", o.SupplierID),
		zap.Time("created_at", o.CreatedAt),
	)
	return nil
}

func (n *LogNotifier) SupplierApproved(ctx context.Context, s *supplier.Supplier) error {
	logger.FromCtx(ctx).Info("notify: supplier approved",
		zap.String("supplier_id", s.ID),
		zap.String("user_id", s.UserID),
	)
	return nil
}

func (n *LogNotifier) SupplierRejected(ctx context.Context, s *supplier.Supplier) error {
	logger.FromCtx(ctx).Info("notify: supplier rejected",
		zap.String("supplier_id", s.ID),
		zap.String("user_id", s.UserID),
		zap.Stringp("reason", s.RejectReason),
	)
	return nil
}
