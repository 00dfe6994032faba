package order

import "time"

// Status is the order lifecycle state. Transitions are validated by Transition;
// delivered and cancelled are terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Payment state is a plain field updated by the payment webhook,
// deliberately not part of the lifecycle state machine.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
)

// Monetary amounts are integer minor units (fils/cents).
type Order struct {
	ID            string  `json:"id"`
	OrderNumber   string  `json:"orderNumber"`
	UserID        string  `json:"userId"`
	SupplierID    string  `json:"supplierId"`
	Status        Status  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	Subtotal      int64   `json:"subtotal"`
	DeliveryFee   int64   `json:"deliveryFee"`
	TaxAmount     int64   `json:"taxAmount"`
	DiscountAmount int64  `json:"discountAmount"`
	TotalAmount   int64   `json:"totalAmount"`
	NeedsReview   bool    `json:"needsReview"`
	Notes         *string `json:"notes,omitempty"`

	EstimatedDeliveryTime *time.Time `json:"estimatedDeliveryTime,omitempty"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Items []*OrderItem `json:"items,omitempty"`
}

// OrderItem is created atomically with its order at checkout and is immutable
// afterward. TotalPrice is always UnitPrice * Quantity.
type OrderItem struct {
	ID                  string  `json:"id"`
	OrderID             string  `json:"orderId"`
	ProductID           string  `json:"productId"`
	Quantity            int32   `json:"quantity"`
	UnitPrice           int64   `json:"unitPrice"`
	TotalPrice          int64   `json:"totalPrice"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`
}

// CheckoutItem is a priced cart line, ready for totals computation.
// UnitPrice already reflects the discounted price when one applies.
type CheckoutItem struct {
	ProductID           string
	SupplierID          string
	Quantity            int32
	Price               int64
	DiscountedPrice     *int64
	SpecialInstructions *string
}

// Filter narrows order listings; nil fields match everything.
type Filter struct {
	UserID     *string
	SupplierID *string
	Status     *Status
}

// OrderEvent is pushed to the realtime feed whenever an order changes.
type OrderEvent struct {
	Type  string `json:"type"`
	Order *Order `json:"order"`
}

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
	EventOrderReminder      = "order_reminder"
)
