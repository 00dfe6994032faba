package supplier

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateSupplier(ctx context.Context, input ApplyInput) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	ListSuppliers(ctx context.Context, filter Filter, limit, page *int32) ([]*Supplier, error)

	// SetApproval moves a pending supplier to approved or rejected. The update
	// is conditional on the row still being pending so two admins cannot both
	// win; losing the race surfaces ErrAlreadyDecided.
	SetApproval(ctx context.Context, id string, status ApprovalStatus, rejectReason *string) (*Supplier, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const supplierColumns = `id, user_id, name_en, name_ar, description, phone, address,
	approval_status, reject_reason, created_at, updated_at`

func scanSupplier(scanner interface{ Scan(...interface{}) error }) (*Supplier, error) {
	var s Supplier
	err := scanner.Scan(
		&s.ID,
		&s.UserID,
		&s.NameEn,
		&s.NameAr,
		&s.Description,
		&s.Phone,
		&s.Address,
		&s.ApprovalStatus,
		&s.RejectReason,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) CreateSupplier(ctx context.Context, input ApplyInput) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("user_id", input.UserID),
		zap.String("supplier_name", input.NameEn),
	)
	log.Info("CreateSupplier started")

	s, err := scanSupplier(r.db.QueryRowContext(ctx, `
		INSERT INTO suppliers (id, user_id, name_en, name_ar, description, phone, address, approval_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+supplierColumns,
		uuid.NewString(),
		input.UserID,
		input.NameEn,
		input.NameAr,
		input.Description,
		input.Phone,
		input.Address,
		string(ApprovalPending),
	))
	if err != nil {
		log.Error("CreateSupplier DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create supplier failed: %w", err)
	}

	log.Info("CreateSupplier success", zap.String("supplier_id", s.ID))
	return s, nil
}

func (r *repository) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	s, err := scanSupplier(r.db.QueryRowContext(
		ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get supplier failed: %w", err)
	}
	return s, nil
}

func (r *repository) ListSuppliers(ctx context.Context, filter Filter, limit, page *int32) ([]*Supplier, error) {
	finalLimit := int32(20)
	finalPage := int32(1)
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	finalOffset := (finalPage - 1) * finalLimit

	query := `SELECT ` + supplierColumns + ` FROM suppliers`
	where := []string{}
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where = append(where, fmt.Sprintf("approval_status = $%d", len(args)))
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list suppliers failed: %w", err)
	}
	defer rows.Close()

	var suppliers []*Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return suppliers, nil
}

func (r *repository) SetApproval(ctx context.Context, id string, status ApprovalStatus, rejectReason *string) (*Supplier, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("supplier_id", id),
		zap.String("approval_status", string(status)),
	)

	s, err := scanSupplier(r.db.QueryRowContext(ctx, `
		UPDATE suppliers
		SET approval_status = $1, reject_reason = $2, updated_at = NOW()
		WHERE id = $3 AND approval_status = $4
		RETURNING `+supplierColumns,
		string(status), rejectReason, id, string(ApprovalPending),
	))
	if err == sql.ErrNoRows {
		// Missing row or a decision already made; distinguish for the caller.
		var current string
		err := r.db.QueryRowContext(ctx, `SELECT approval_status FROM suppliers WHERE id = $1`, id).Scan(&current)
		if err == sql.ErrNoRows {
			return nil, ErrSupplierNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("approval recheck failed: %w", err)
		}
		log.Warn("approval update lost the race", zap.String("current_status", current))
		return nil, ErrAlreadyDecided
	}
	if err != nil {
		log.Error("SetApproval DB query failed", zap.Error(err))
		return nil, fmt.Errorf("set supplier approval failed: %w", err)
	}

	log.Info("SetApproval success")
	return s, nil
}
