package pricing

import "github.com/shopspring/decimal"

// DefaultTaxRate is applied to the subtotal unless configured otherwise.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Line is a priced quantity of one product.
type Line struct {
	Price    decimal.Decimal
	Quantity int
}

// Summary is the full price breakdown of a cart. Values are exact;
// round with Rounded before presenting them.
type Summary struct {
	Option      DeliveryOption
	ItemCount   int
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	DeliveryFee decimal.Decimal
	Total       decimal.Decimal
}

// Rounded returns a copy of s with every amount rounded to cents.
func (s Summary) Rounded() Summary {
	s.Subtotal = s.Subtotal.Round(2)
	s.Tax = s.Tax.Round(2)
	s.DeliveryFee = s.DeliveryFee.Round(2)
	s.Total = s.Total.Round(2)
	return s
}

// Calculator prices carts.
type Calculator struct {
	TaxRate decimal.Decimal
}

// NewCalculator builds a Calculator with the given tax rate.
func NewCalculator(taxRate decimal.Decimal) *Calculator {
	return &Calculator{TaxRate: taxRate}
}

// Summarize prices lines with the chosen delivery option:
// subtotal is the sum of price times quantity, tax is subtotal times the rate,
// and total is subtotal plus tax plus the option fee.
func (c *Calculator) Summarize(lines []Line, option DeliveryOption) Summary {
	subtotal := decimal.Zero
	count := 0
	for _, l := range lines {
		subtotal = subtotal.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
		count += l.Quantity
	}
	tax := subtotal.Mul(c.TaxRate)

	return Summary{
		Option:      option,
		ItemCount:   count,
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: option.Fee,
		Total:       subtotal.Add(tax).Add(option.Fee),
	}
}
