package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order) error
	GetOrders(ctx context.Context, filter Filter, limit, page *int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, id string) (*Order, error)

	// UpdateOrderStatus persists a transition diff with an optimistic-concurrency
	// precondition: the row is only touched while its status still equals
	// expected. Zero rows affected on an existing order means a concurrent
	// session won the race and the caller gets ErrConcurrentModification.
	UpdateOrderStatus(ctx context.Context, id string, expected Status, diff *TransitionDiff) error

	UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error
	SetNotes(ctx context.Context, id, notes string) error
	ListStalePending(ctx context.Context, olderThan time.Time) ([]*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// IsOrderNumberConflict reports whether err is the unique-constraint violation
// on the human-readable order number. The generator is not collision-free, so
// checkout regenerates and retries on this error.
func IsOrderNumberConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "order_number")
	}
	return false
}

const orderColumns = `id, order_number, user_id, supplier_id, status, payment_status,
	subtotal, delivery_fee, tax_amount, discount_amount, total_amount, needs_review,
	notes, estimated_delivery_time, actual_delivery_time, created_at, updated_at`

func scanOrder(scanner interface{ Scan(...interface{}) error }) (*Order, error) {
	var o Order
	err := scanner.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.UserID,
		&o.SupplierID,
		&o.Status,
		&o.PaymentStatus,
		&o.Subtotal,
		&o.DeliveryFee,
		&o.TaxAmount,
		&o.DiscountAmount,
		&o.TotalAmount,
		&o.NeedsReview,
		&o.Notes,
		&o.EstimatedDeliveryTime,
		&o.ActualDeliveryTime,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_number", o.OrderNumber),
		zap.String("supplier_id", o.SupplierID),
	)
	log.Info("CreateOrderTx started")

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin checkout tx failed: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, order_number, user_id, supplier_id, status, payment_status,
			subtotal, delivery_fee, tax_amount, discount_amount, total_amount, needs_review
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.OrderNumber, o.UserID, o.SupplierID, o.Status, o.PaymentStatus,
		o.Subtotal, o.DeliveryFee, o.TaxAmount, o.DiscountAmount, o.TotalAmount, o.NeedsReview,
	)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return fmt.Errorf("insert order failed: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price, special_instructions)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			item.ID, o.ID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice, item.SpecialInstructions,
		)
		if err != nil {
			log.Error("insert order item failed", zap.Error(err))
			return fmt.Errorf("insert order item failed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit checkout tx failed: %w", err)
	}

	log.Info("CreateOrderTx success", zap.String("order_id", o.ID))
	return nil
}

func (r *repository) GetOrders(ctx context.Context, filter Filter, limit, page *int32) ([]*Order, error) {
	finalLimit := int32(20)
	finalPage := int32(1)
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	finalOffset := (finalPage - 1) * finalLimit

	query := `SELECT ` + orderColumns + ` FROM orders`
	where := []string{}
	args := []interface{}{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get orders failed: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, id string) (*Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(
		ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, total_price, special_instructions
		FROM order_items WHERE order_id = $1`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get order items failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID,
			&item.Quantity, &item.UnitPrice, &item.TotalPrice,
			&item.SpecialInstructions,
		)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, id string, expected Status, diff *TransitionDiff) error {
	log := logger.FromCtx(ctx).With(
		zap.String("order_id", id),
		zap.String("expected_status", string(expected)),
		zap.String("next_status", string(diff.Status)),
	)

	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1,
			updated_at = $2,
			estimated_delivery_time = COALESCE($3, estimated_delivery_time),
			actual_delivery_time = COALESCE($4, actual_delivery_time)
		WHERE id = $5 AND status = $6`,
		string(diff.Status), diff.UpdatedAt, diff.EstimatedDeliveryTime, diff.ActualDeliveryTime,
		id, string(expected),
	)
	if err != nil {
		log.Error("UpdateOrderStatus DB query failed", zap.Error(err))
		return fmt.Errorf("update order status failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the order is gone or another session moved it first.
		var current string
		err := r.db.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		if err != nil {
			return fmt.Errorf("status recheck failed: %w", err)
		}
		log.Warn("conditional status update lost the race", zap.String("current_status", current))
		return ErrConcurrentModification
	}

	log.Info("UpdateOrderStatus success")
	return nil
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id, paymentStatus string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET payment_status = $1, updated_at = NOW() WHERE id = $2`,
		paymentStatus, id,
	)
	if err != nil {
		return fmt.Errorf("update payment status failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) SetNotes(ctx context.Context, id, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET notes = $1, updated_at = NOW() WHERE id = $2`,
		notes, id,
	)
	if err != nil {
		return fmt.Errorf("set order notes failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) ListStalePending(ctx context.Context, olderThan time.Time) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE status = $1 AND created_at < $2 ORDER BY created_at ASC`,
		string(StatusPending), olderThan,
	)
	if err != nil {
		return nil, fmt.Errorf("list stale pending orders failed: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
