package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash, role string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func isEmailConflict(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "email")
	}
	return false
}

func (r *repository) Create(ctx context.Context, email, passwordHash, role string) (*User, error) {
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	var u User
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (id, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, role, created_at, updated_at`,
		uuid.NewString(), email, passwordHash, role,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isEmailConflict(err) {
			return nil, ErrEmailExists
		}
		log.Error("insert user failed", zap.Error(err))
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	return &u, nil
}

// FindByEmail loads the account plus the supplier id when the user owns an
// approved supplier. The left join keeps plain customers and admins working.
func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.password, u.role, s.id, u.created_at, u.updated_at
		FROM users u
		LEFT JOIN suppliers s ON s.user_id = u.id AND s.approval_status = 'approved'
		WHERE u.email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.SupplierID, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by email failed: %w", err)
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, `
		SELECT u.id, u.email, u.password, u.role, s.id, u.created_at, u.updated_at
		FROM users u
		LEFT JOIN suppliers s ON s.user_id = u.id AND s.approval_status = 'approved'
		WHERE u.id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.Password, &u.Role, &u.SupplierID, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id failed: %w", err)
	}
	return &u, nil
}
