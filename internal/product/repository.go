package product

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
	GetProductsForCheckout(ctx context.Context, productIDs []string) (map[string]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter Filter, limit, page *int32) ([]*Product, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error)
	SetAvailability(ctx context.Context, id string, available bool) error
	SetHotDeal(ctx context.Context, id string, hot bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `id, supplier_id, category_id, name_en, name_ar, description,
	price, discounted_price, is_hot_deal, is_available, created_at, updated_at`

func scanProduct(scanner interface{ Scan(...interface{}) error }) (*Product, error) {
	var p Product
	err := scanner.Scan(
		&p.ID,
		&p.SupplierID,
		&p.CategoryID,
		&p.NameEn,
		&p.NameAr,
		&p.Description,
		&p.Price,
		&p.DiscountedPrice,
		&p.IsHotDeal,
		&p.IsAvailable,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetProductsForCheckout(ctx context.Context, productIDs []string) (map[string]*Product, error) {
	if len(productIDs) == 0 {
		return map[string]*Product{}, nil
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ANY($1)`,
		pq.Array(productIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("get products for checkout failed: %w", err)
	}
	defer rows.Close()

	products := make(map[string]*Product, len(productIDs))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products[p.ID] = p
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(
		ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id,
	))
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product failed: %w", err)
	}
	return p, nil
}

func (r *repository) ListProducts(ctx context.Context, filter Filter, limit, page *int32) ([]*Product, error) {
	finalLimit := int32(20)
	finalPage := int32(1)
	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	finalOffset := (finalPage - 1) * finalLimit

	query := `SELECT ` + productColumns + ` FROM products`
	where := []string{}
	args := []interface{}{}

	if filter.SupplierID != nil {
		args = append(args, *filter.SupplierID)
		where = append(where, fmt.Sprintf("supplier_id = $%d", len(args)))
	}
	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		where = append(where, fmt.Sprintf("category_id = $%d", len(args)))
	}
	if filter.AvailableOnly {
		where = append(where, "is_available = TRUE")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name_en ASC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, finalOffset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products failed: %w", err)
	}
	defer rows.Close()

	products := make([]*Product, 0, finalLimit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("supplier_id", input.SupplierID),
		zap.String("product_name", input.NameEn),
	)
	log.Info("CreateProduct started")

	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		INSERT INTO products (id, supplier_id, category_id, name_en, name_ar, description, price, discounted_price, is_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE)
		RETURNING `+productColumns,
		uuid.NewString(),
		input.SupplierID,
		input.CategoryID,
		input.NameEn,
		input.NameAr,
		input.Description,
		input.Price,
		input.DiscountedPrice,
	))
	if err != nil {
		log.Error("CreateProduct DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create product failed: %w", err)
	}

	log.Info("CreateProduct success", zap.String("product_id", p.ID))
	return p, nil
}

func (r *repository) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_available = $1, updated_at = NOW() WHERE id = $2`,
		available, id,
	)
	if err != nil {
		return fmt.Errorf("set product availability failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) SetHotDeal(ctx context.Context, id string, hot bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_hot_deal = $1, updated_at = NOW() WHERE id = $2`,
		hot, id,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "hot_deal") {
			return ErrHotDealExists
		}
		return fmt.Errorf("set hot deal failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
