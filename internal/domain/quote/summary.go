package quote

// SummaryLine is a label/value pair of a totals block.
type SummaryLine struct {
	Label string
	Value string
}

// Summary lists the breakdown shown above the grand total.
func (d Document) Summary() []SummaryLine {
	t := d.Totals().Rounded()
	return []SummaryLine{
		{"Subtotal:", FormatBRL(t.Subtotal)},
		{"Desc. itens:", "- " + FormatBRL(t.ItemDiscounts)},
		{"Valor adicional:", "+ " + FormatBRL(d.AdditionalValue)},
		{"Desc. geral (" + FormatPercent(d.GeneralDiscountPercent) + "):", "- " + FormatBRL(t.GeneralDiscount)},
	}
}

// PaymentLines are the deposit and balance of a confirmed booking.
func (d Document) PaymentLines() []SummaryLine {
	return []SummaryLine{
		{"Valor pago (sinal):", FormatBRL(d.AmountPaid)},
		{"Saldo restante:", FormatBRL(d.Balance())},
	}
}

func (d Document) TotalLine() SummaryLine {
	return SummaryLine{"TOTAL:", FormatBRL(d.Totals().GrandTotal(d.AdditionalValue))}
}
