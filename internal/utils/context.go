package utils

import "context"

type contextKey string

const (
	UserIDKey     contextKey = "user_id"
	UserEmailKey  contextKey = "email"
	UserRoleKey   contextKey = "role"
	SupplierIDKey contextKey = "supplier_id"
)

const (
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// SetUserContext stores the authenticated identity, called by the auth middleware.
func SetUserContext(ctx context.Context, id, email, role string, supplierID *string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserRoleKey, role)
	if supplierID != nil {
		ctx = context.WithValue(ctx, SupplierIDKey, *supplierID)
	}
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(UserIDKey).(string)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUserRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(UserRoleKey).(string)
	return role
}

func GetSupplierIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(SupplierIDKey).(string)
	return id, ok
}
