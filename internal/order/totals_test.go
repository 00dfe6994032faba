package order

import (
	"testing"

	"github.com/smsgrouprw-hash/Talabat-sub000/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals_WorkedExample(t *testing.T) {
	// 2 x 1000 + 1 x 300 (discounted from 500) = 2300; plus 1000 delivery fee.
	items := []CheckoutItem{
		{ProductID: "prod-1", Quantity: 2, Price: 1000},
		{ProductID: "prod-2", Quantity: 1, Price: 500, DiscountedPrice: utils.Int64Ptr(300)},
	}

	totals, err := ComputeTotals(items, 1000, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(2300), totals.Subtotal)
	assert.Equal(t, int64(3300), totals.TotalAmount)
	assert.False(t, totals.NeedsReview)
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	totals, err := ComputeTotals(nil, 1000, 200, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(0), totals.Subtotal)
	assert.Equal(t, int64(1200), totals.TotalAmount)
}

func TestComputeTotals_DiscountClampsToZero(t *testing.T) {
	items := []CheckoutItem{
		{ProductID: "prod-1", Quantity: 1, Price: 500},
	}

	totals, err := ComputeTotals(items, 0, 0, 900)
	require.NoError(t, err)

	assert.Equal(t, int64(500), totals.Subtotal)
	assert.Equal(t, int64(0), totals.TotalAmount)
	assert.True(t, totals.NeedsReview)
}

func TestComputeTotals_ExactZeroIsNotFlagged(t *testing.T) {
	items := []CheckoutItem{
		{ProductID: "prod-1", Quantity: 1, Price: 500},
	}

	totals, err := ComputeTotals(items, 0, 0, 500)
	require.NoError(t, err)

	assert.Equal(t, int64(0), totals.TotalAmount)
	assert.False(t, totals.NeedsReview)
}

func TestComputeTotals_RejectsBadInput(t *testing.T) {
	valid := []CheckoutItem{{ProductID: "prod-1", Quantity: 1, Price: 100}}

	_, err := ComputeTotals(valid, -1, 0, 0)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ComputeTotals(valid, 0, -1, 0)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ComputeTotals(valid, 0, 0, -1)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ComputeTotals([]CheckoutItem{{ProductID: "prod-1", Quantity: 0, Price: 100}}, 0, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ComputeTotals([]CheckoutItem{{ProductID: "prod-1", Quantity: 1, Price: -100}}, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = ComputeTotals([]CheckoutItem{
		{ProductID: "prod-1", Quantity: 1, Price: 100, DiscountedPrice: utils.Int64Ptr(-50)},
	}, 0, 0, 0)
	assert.ErrorIs(t, err, ErrNegativeAmount)
}

func TestGroupItemsBySupplier(t *testing.T) {
	items := []CheckoutItem{
		{ProductID: "prod-1", SupplierID: "sup-b"},
		{ProductID: "prod-2", SupplierID: "sup-a"},
		{ProductID: "prod-3", SupplierID: "sup-b"},
	}

	groups, supplierIDs := GroupItemsBySupplier(items)

	// First-appearance order, not lexical.
	assert.Equal(t, []string{"sup-b", "sup-a"}, supplierIDs)
	require.Len(t, groups["sup-b"], 2)
	require.Len(t, groups["sup-a"], 1)
	assert.Equal(t, "prod-1", groups["sup-b"][0].ProductID)
	assert.Equal(t, "prod-3", groups["sup-b"][1].ProductID)
}

func TestGroupItemsBySupplier_Empty(t *testing.T) {
	groups, supplierIDs := GroupItemsBySupplier(nil)
	assert.Empty(t, groups)
	assert.Empty(t, supplierIDs)
}
