package order

import (
	"storefront/domain/catalog"
	"storefront/domain/shared"
)

// PricingInput is one (product, quantity) pair with the product already
// resolved to its current catalog state.
type PricingInput struct {
	Product  *catalog.Product
	Quantity int
}

// PricedLine is the pricing calculator's output for one input line: the
// unit price snapshot taken at calculation time and the derived
// subtotal. Checkout turns these into immutable order lines.
type PricedLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   shared.Money
	Subtotal    shared.Money
}

// Price derives per-line subtotals and the grand total from resolved
// (product, quantity) pairs. Pure function: no persistence, no side
// effects. Fails with catalog.ErrProductUnavailable (carrying the
// product id) as soon as an off-sale product is seen, so checkout never
// proceeds for discontinued items.
func Price(inputs []PricingInput) ([]PricedLine, *shared.Money, error) {
	lines := make([]PricedLine, len(inputs))
	total := shared.NewMoney(0, shared.DefaultCurrency)

	for i, in := range inputs {
		if in.Quantity < 1 {
			return nil, nil, ErrInvalidQuantity
		}
		if !in.Product.IsAvailable() {
			return nil, nil, catalog.NewProductUnavailableError(in.Product.ID())
		}

		unitPrice := in.Product.Price()
		subtotal, err := unitPrice.Multiply(in.Quantity)
		if err != nil {
			return nil, nil, err
		}

		lines[i] = PricedLine{
			ProductID:   in.Product.ID(),
			ProductName: in.Product.Name(),
			Quantity:    in.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    *subtotal,
		}

		total, err = total.Add(*subtotal)
		if err != nil {
			return nil, nil, err
		}
	}

	return lines, total, nil
}
