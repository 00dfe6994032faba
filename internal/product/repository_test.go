package product

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var productCols = []string{
	"id", "supplier_id", "category_id", "name_en", "name_ar", "description",
	"price", "discounted_price", "is_hot_deal", "is_available", "created_at", "updated_at",
}

func productRow(id, supplierID, name string, price int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(productCols).
		AddRow(id, supplierID, nil, name, nil, nil, price, nil, false, true, now, now)
}

func TestRepository_GetProductsForCheckout(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(productCols).
			AddRow("prod-1", "sup-1", nil, "Juice", nil, nil, int64(1000), nil, false, true, time.Now(), time.Now()).
			AddRow("prod-2", "sup-2", nil, "Cake", nil, nil, int64(2500), nil, false, true, time.Now(), time.Now())

		mock.ExpectQuery(`SELECT .* FROM products WHERE id = ANY\(\$1\)`).
			WithArgs(pq.Array([]string{"prod-1", "prod-2"})).
			WillReturnRows(rows)

		res, err := repo.GetProductsForCheckout(context.Background(), []string{"prod-1", "prod-2"})
		assert.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "sup-2", res["prod-2"].SupplierID)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		res, err := repo.GetProductsForCheckout(context.Background(), nil)
		assert.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestRepository_GetProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs("prod-1").
			WillReturnRows(productRow("prod-1", "sup-1", "Juice", 1000))

		res, err := repo.GetProduct(context.Background(), "prod-1")
		assert.NoError(t, err)
		assert.Equal(t, "Juice", res.NameEn)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(productCols))

		_, err := repo.GetProduct(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_ListProducts(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("SupplierAndAvailability", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE supplier_id = \$1 AND is_available = TRUE ORDER BY name_en ASC LIMIT \$2 OFFSET \$3`).
			WithArgs("sup-1", int32(20), int32(0)).
			WillReturnRows(productRow("prod-1", "sup-1", "Juice", 1000))

		res, err := repo.ListProducts(context.Background(), Filter{
			SupplierID:    utils.StrPtr("sup-1"),
			AvailableOnly: true,
		}, nil, nil)
		assert.NoError(t, err)
		require.Len(t, res, 1)
	})

	t.Run("Pagination", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products ORDER BY name_en ASC LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(10), int32(20)).
			WillReturnRows(sqlmock.NewRows(productCols))

		res, err := repo.ListProducts(context.Background(), Filter{}, utils.Int32Ptr(10), utils.Int32Ptr(3))
		assert.NoError(t, err)
		assert.Empty(t, res)
	})
}

func TestRepository_CreateProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery("INSERT INTO products").
		WithArgs(sqlmock.AnyArg(), "sup-1", nil, "Juice", nil, nil, int64(1000), nil).
		WillReturnRows(productRow("prod-1", "sup-1", "Juice", 1000))

	res, err := repo.CreateProduct(context.Background(), CreateProductInput{
		SupplierID: "sup-1",
		NameEn:     "Juice",
		Price:      1000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "prod-1", res.ID)
}

func TestRepository_SetAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_available").
			WithArgs(false, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetAvailability(context.Background(), "prod-1", false))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_available").
			WithArgs(true, "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SetAvailability(context.Background(), "ghost", true), ErrProductNotFound)
	})
}

func TestRepository_SetHotDeal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_hot_deal").
			WithArgs(true, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SetHotDeal(context.Background(), "prod-1", true))
	})

	t.Run("UniqueViolation", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_hot_deal").
			WithArgs(true, "prod-2").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "products_one_hot_deal_per_supplier"})

		assert.ErrorIs(t, repo.SetHotDeal(context.Background(), "prod-2", true), ErrHotDealExists)
	})

	t.Run("OtherError", func(t *testing.T) {
		mock.ExpectExec("UPDATE products SET is_hot_deal").
			WithArgs(false, "prod-3").
			WillReturnError(errors.New("db down"))

		err := repo.SetHotDeal(context.Background(), "prod-3", false)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrHotDealExists)
	})
}
