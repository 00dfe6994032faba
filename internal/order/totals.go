package order

import "fmt"

// Totals is the monetary summary of a single supplier's order.
// TotalAmount = Subtotal + DeliveryFee + TaxAmount - DiscountAmount, clamped at
// zero. A clamped order is flagged for manual review instead of being persisted
// with a silently wrong total.
type Totals struct {
	Subtotal    int64
	TotalAmount int64
	NeedsReview bool
}

// ComputeTotals prices one order. Each line uses the discounted price when one
// is set, the regular price otherwise. All inputs must be non-negative.
func ComputeTotals(items []CheckoutItem, deliveryFee, taxAmount, discountAmount int64) (*Totals, error) {
	if deliveryFee < 0 || taxAmount < 0 || discountAmount < 0 {
		return nil, ErrNegativeAmount
	}

	var subtotal int64
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, item.ProductID)
		}
		if item.Price < 0 || (item.DiscountedPrice != nil && *item.DiscountedPrice < 0) {
			return nil, fmt.Errorf("%w: product %s", ErrNegativeAmount, item.ProductID)
		}

		unit := item.Price
		if item.DiscountedPrice != nil {
			unit = *item.DiscountedPrice
		}
		subtotal += unit * int64(item.Quantity)
	}

	total := subtotal + deliveryFee + taxAmount - discountAmount

	needsReview := false
	if total < 0 {
		total = 0
		needsReview = true
	}

	return &Totals{
		Subtotal:    subtotal,
		TotalAmount: total,
		NeedsReview: needsReview,
	}, nil
}

// GroupItemsBySupplier splits a mixed cart into per-supplier item lists, one
// order per supplier downstream. Supplier order follows first appearance in the
// input so checkout output is deterministic.
func GroupItemsBySupplier(items []CheckoutItem) (map[string][]CheckoutItem, []string) {
	groups := make(map[string][]CheckoutItem, len(items))
	supplierIDs := make([]string, 0, len(items))

	for _, item := range items {
		if _, seen := groups[item.SupplierID]; !seen {
			supplierIDs = append(supplierIDs, item.SupplierID)
		}
		groups[item.SupplierID] = append(groups[item.SupplierID], item)
	}

	return groups, supplierIDs
}
