package quote

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals are accumulated in full precision; round only for display.
type Totals struct {
	RawTotal        decimal.Decimal
	ItemDiscounts   decimal.Decimal
	Subtotal        decimal.Decimal
	GeneralDiscount decimal.Decimal
	Total           decimal.Decimal
}

// ComputeTotals expects non-negative quantities, prices and percentages.
func ComputeTotals(lines []Line, generalDiscountPercent decimal.Decimal) Totals {
	var t Totals
	for _, l := range lines {
		raw := l.Quantity.Mul(l.UnitPrice)
		t.RawTotal = t.RawTotal.Add(raw)
		t.ItemDiscounts = t.ItemDiscounts.Add(percentOf(raw, l.DiscountPercent))
	}
	t.Subtotal = t.RawTotal.Sub(t.ItemDiscounts)
	t.GeneralDiscount = percentOf(t.Subtotal, generalDiscountPercent)
	t.Total = t.Subtotal.Sub(t.GeneralDiscount)
	return t
}

// Rounded returns a copy rounded half away from zero to cents.
func (t Totals) Rounded() Totals {
	return Totals{
		RawTotal:        t.RawTotal.Round(2),
		ItemDiscounts:   t.ItemDiscounts.Round(2),
		Subtotal:        t.Subtotal.Round(2),
		GeneralDiscount: t.GeneralDiscount.Round(2),
		Total:           t.Total.Round(2),
	}
}

func (t Totals) GrandTotal(additional decimal.Decimal) decimal.Decimal {
	return t.Total.Add(additional)
}

// Total is the line amount after its own discount.
func (l Line) Total() decimal.Decimal {
	raw := l.Quantity.Mul(l.UnitPrice)
	return raw.Sub(percentOf(raw, l.DiscountPercent))
}

func percentOf(v, pct decimal.Decimal) decimal.Decimal {
	if pct.IsZero() {
		return decimal.Zero
	}
	return v.Mul(pct).Div(hundred)
}
