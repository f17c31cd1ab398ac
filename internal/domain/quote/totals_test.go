package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(qty, price, disc string) Line {
	return Line{Quantity: dec(qty), UnitPrice: dec(price), DiscountPercent: dec(disc)}
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeTotalsMixedLines(t *testing.T) {
	lines := []Line{
		line("2", "100", "0"),
		line("1", "50", "10"),
		line("3", "20", "0"),
	}
	got := ComputeTotals(lines, dec("5")).Rounded()

	assertDec(t, "310.00", got.RawTotal)
	assertDec(t, "5.00", got.ItemDiscounts)
	assertDec(t, "305.00", got.Subtotal)
	assertDec(t, "15.25", got.GeneralDiscount)
	assertDec(t, "289.75", got.Total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, dec("10"))
	for _, v := range []decimal.Decimal{got.RawTotal, got.ItemDiscounts, got.Subtotal, got.GeneralDiscount, got.Total} {
		assert.True(t, v.IsZero())
	}
}

func TestComputeTotalsRelations(t *testing.T) {
	lines := []Line{
		line("7", "13.37", "12.5"),
		line("1", "0.01", "99"),
		line("3", "1999.99", "33.3"),
	}
	got := ComputeTotals(lines, dec("7.5"))

	assert.True(t, got.Subtotal.Equal(got.RawTotal.Sub(got.ItemDiscounts)))
	assert.True(t, got.Total.Equal(got.Subtotal.Sub(got.GeneralDiscount)))
	assert.True(t, got.GeneralDiscount.Equal(got.Subtotal.Mul(dec("7.5")).Div(dec("100"))))
	assert.False(t, got.Total.IsNegative())
	assert.True(t, got.Total.LessThanOrEqual(got.Subtotal))
	assert.True(t, got.Subtotal.LessThanOrEqual(got.RawTotal))
}

func TestComputeTotalsRoundsOnlyAtTheEnd(t *testing.T) {
	// Three lines of 0.333 each: rounding per line would give 0.99.
	lines := []Line{line("1", "0.333", "0"), line("1", "0.333", "0"), line("1", "0.333", "0")}
	got := ComputeTotals(lines, decimal.Zero)
	assertDec(t, "0.999", got.RawTotal)
	assertDec(t, "1.00", got.Rounded().RawTotal)
}

func TestLineTotalAndGrandTotal(t *testing.T) {
	assertDec(t, "45", line("1", "50", "10").Total())
	assertDec(t, "60", line("3", "20", "0").Total())

	totals := ComputeTotals([]Line{line("2", "100", "0")}, dec("10"))
	assertDec(t, "230", totals.GrandTotal(dec("50")))
}
