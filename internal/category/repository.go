package category

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
	GetCategories(ctx context.Context, includeInactive bool) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error)
	UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error)
	SetActive(ctx context.Context, id string, active bool) error
	DeleteCategory(ctx context.Context, id string) error

	// CheckCircularReference is the authoritative server-side guard. It walks the
	// persisted tree with a recursive CTE and must agree with WouldCreateCycle.
	CheckCircularReference(ctx context.Context, categoryID, parentID string) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const categoryColumns = `id, name_en, name_ar, description, parent_category_id, is_active, sort_order, created_at, updated_at`

func scanCategory(scanner interface{ Scan(...interface{}) error }) (*Category, error) {
	var c Category
	err := scanner.Scan(
		&c.ID,
		&c.NameEn,
		&c.NameAr,
		&c.Description,
		&c.ParentCategoryID,
		&c.IsActive,
		&c.SortOrder,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCategories(ctx context.Context, includeInactive bool) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.Bool("include_inactive", includeInactive),
	)

	query := `SELECT ` + categoryColumns + ` FROM categories`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY sort_order ASC, name_en ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, fmt.Errorf("get categories failed: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetCategory(ctx context.Context, id string) (*Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get category failed: %w", err)
	}
	return c, nil
}

func (r *repository) CreateCategory(ctx context.Context, input CreateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("category_name", input.NameEn),
	)
	log.Info("CreateCategory started")

	query := `
		INSERT INTO categories (id, name_en, name_ar, description, parent_category_id, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6)
		RETURNING ` + categoryColumns

	c, err := scanCategory(r.db.QueryRowContext(
		ctx,
		query,
		uuid.NewString(),
		input.NameEn,
		input.NameAr,
		input.Description,
		input.ParentCategoryID,
		input.SortOrder,
	))
	if err != nil {
		log.Error("CreateCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create category failed: %w", err)
	}

	log.Info("CreateCategory success", zap.String("category_id", c.ID))
	return c, nil
}

func (r *repository) UpdateCategory(ctx context.Context, id string, input UpdateCategoryInput) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("category_id", id),
	)
	log.Info("UpdateCategory started")

	sets := []string{"updated_at = NOW()"}
	args := []interface{}{}

	if input.NameEn != nil {
		args = append(args, *input.NameEn)
		sets = append(sets, fmt.Sprintf("name_en = $%d", len(args)))
	}
	if input.NameAr != nil {
		args = append(args, *input.NameAr)
		sets = append(sets, fmt.Sprintf("name_ar = $%d", len(args)))
	}
	if input.Description != nil {
		args = append(args, *input.Description)
		sets = append(sets, fmt.Sprintf("description = $%d", len(args)))
	}
	if input.ClearParent {
		sets = append(sets, "parent_category_id = NULL")
	} else if input.ParentCategoryID != nil {
		args = append(args, *input.ParentCategoryID)
		sets = append(sets, fmt.Sprintf("parent_category_id = $%d", len(args)))
	}
	if input.SortOrder != nil {
		args = append(args, *input.SortOrder)
		sets = append(sets, fmt.Sprintf("sort_order = $%d", len(args)))
	}
	if input.IsActive != nil {
		args = append(args, *input.IsActive)
		sets = append(sets, fmt.Sprintf("is_active = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE categories SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), categoryColumns,
	)

	c, err := scanCategory(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		log.Error("UpdateCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("update category failed: %w", err)
	}

	log.Info("UpdateCategory success")
	return c, nil
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE categories SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("set category active failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *repository) DeleteCategory(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("category_id", id),
	)

	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		log.Error("DeleteCategory DB query failed", zap.Error(err))
		return fmt.Errorf("delete category failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	log.Info("DeleteCategory success")
	return nil
}

func (r *repository) CheckCircularReference(ctx context.Context, categoryID, parentID string) (bool, error) {
	query := `
		WITH RECURSIVE descendants AS (
			SELECT id FROM categories WHERE parent_category_id = $1
			UNION ALL
			SELECT c.id FROM categories c
			JOIN descendants d ON c.parent_category_id = d.id
		)
		SELECT $1 = $2 OR EXISTS (SELECT 1 FROM descendants WHERE id = $2)
	`

	var circular bool
	if err := r.db.QueryRowContext(ctx, query, categoryID, parentID).Scan(&circular); err != nil {
		return false, fmt.Errorf("circular reference check failed: %w", err)
	}
	return circular, nil
}
