package domain

type (
	CartItem struct {
		Product  Product
		Quantity int
	}

	CartTotals struct {
		Count    int
		Subtotal int
		Discount int
		Total    int
	}
)

// ComputeCartTotals sums quantities, full prices and discounted prices
// over the cart lines.
func ComputeCartTotals(items []CartItem) CartTotals {
	var t CartTotals
	for _, item := range items {
		t.Count += item.Quantity
		t.Subtotal += item.Product.Price * item.Quantity
		t.Total += item.Product.DiscountedPrice() * item.Quantity
	}
	t.Discount = t.Subtotal - t.Total
	return t
}
