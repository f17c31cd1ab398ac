package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders a monetary value as "R$ 1.234,56".
func FormatBRL(v decimal.Decimal) string {
	s := v.Round(2).StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString("R$ ")
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// FormatQuantity prints whole quantities without decimals.
func FormatQuantity(v decimal.Decimal) string {
	if v.Equal(v.Truncate(0)) {
		return v.Truncate(0).String()
	}
	return strings.Replace(v.String(), ".", ",", 1)
}

func FormatPercent(v decimal.Decimal) string {
	return strings.Replace(v.Round(1).String(), ".", ",", 1) + "%"
}
