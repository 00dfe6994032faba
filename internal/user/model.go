package user

import "time"

// User is an authenticated account. Role is one of the utils.Role* values;
// SupplierID is set only for supplier accounts and travels inside the JWT so
// supplier-scoped endpoints never need an extra lookup.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Role       string    `json:"role"`
	SupplierID *string   `json:"supplierId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
