package quote

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"mensalizou/go_backend/internal/domain/quote/render"
)

const (
	DefaultEventTime          = "16:00"
	DefaultEventDurationHours = 3
	DefaultEventType          = "Aniversário"
	DefaultAddress            = "Endereço não definido"
	DefaultEventDate          = "Data não definida"
	DefaultPeriod             = "3 horas"

	DefaultNotes = "• Tempo padrão de operação: 3 horas com monitor incluso\n" +
		"• Valores sujeitos a disponibilidade\n" +
		"• Montagem e desmontagem inclusas"

	dateLayout = "02/01/2006"
)

// Document is the render-ready view of a quote. It is built fresh for every
// render and never mutated afterwards.
type Document struct {
	Client                 Client
	Event                  Event
	Lines                  []Line
	GeneralDiscountPercent decimal.Decimal
	AdditionalValue        decimal.Decimal
	AmountPaid             decimal.Decimal
	Notes                  string
	Status                 Status
	CreationDate           time.Time
}

type Event struct {
	Type            string
	Address         string
	Date            string
	StartTime       string
	AssemblyTime    string
	DisassemblyTime string
}

type Line struct {
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	Period          string
}

// Build maps a stored quote onto a Document. It reads q only.
func Build(q Quote) Document {
	start := normalizeClock(q.EventTime)
	duration := parseDuration(q.EventDurationHours)
	assembly := shiftHour(start, -1)
	disassembly := shiftHour(assembly, duration+1)

	doc := Document{
		Client: q.Client,
		Event: Event{
			Type:            orDefault(q.EventType, DefaultEventType),
			Address:         orDefault(q.Address, DefaultAddress),
			Date:            DefaultEventDate,
			StartTime:       start.String(),
			AssemblyTime:    assembly.String(),
			DisassemblyTime: disassembly.String(),
		},
		GeneralDiscountPercent: q.GeneralDiscount,
		AdditionalValue:        q.AdditionalValue,
		AmountPaid:             q.AmountPaid,
		Notes:                  q.Notes,
		Status:                 q.Status,
		CreationDate:           q.CreatedAt,
	}
	if q.EventDate != nil && !q.EventDate.IsZero() {
		doc.Event.Date = q.EventDate.Format(dateLayout)
	}

	doc.Lines = make([]Line, 0, len(q.Items))
	for _, it := range q.Items {
		doc.Lines = append(doc.Lines, buildLine(it))
	}
	return doc
}

func buildLine(it LineItem) Line {
	l := Line{
		Description:     it.Item.Description,
		Quantity:        decimal.NewFromInt(int64(it.Quantity)),
		UnitPrice:       it.Item.UnitPrice,
		DiscountPercent: it.Item.Discount,
		Period:          orDefault(it.Item.Period, DefaultPeriod),
	}
	if it.Item.Name != nil && strings.TrimSpace(*it.Item.Name) != "" {
		l.Description = *it.Item.Name
	}
	if it.UnitPrice != nil {
		l.UnitPrice = *it.UnitPrice
	}
	if it.Discount != nil {
		l.DiscountPercent = *it.Discount
	}
	return l
}

func (d Document) Variant() render.Variant {
	if d.Status == StatusConfirmed {
		return render.VariantConfirmation
	}
	return render.VariantQuote
}

func (d Document) Totals() Totals {
	return ComputeTotals(d.Lines, d.GeneralDiscountPercent)
}

func (d Document) NotesOrDefault() string {
	if strings.TrimSpace(d.Notes) == "" {
		return DefaultNotes
	}
	return d.Notes
}

func (d Document) CreationDateLabel() string {
	return d.CreationDate.Format(dateLayout)
}

// Balance is what remains to be paid after the deposit.
func (d Document) Balance() decimal.Decimal {
	return d.Totals().GrandTotal(d.AdditionalValue).Sub(d.AmountPaid)
}

// AddressLines groups the comma separated address into at most three
// lines: the street, the next two segments, then whatever remains.
func (d Document) AddressLines() []string {
	parts := strings.Split(d.Event.Address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	lines := []string{parts[0]}
	if len(parts) > 1 {
		lines = append(lines, strings.Join(parts[1:min(3, len(parts))], ", "))
	}
	if len(parts) > 3 {
		lines = append(lines, strings.Join(parts[3:], ", "))
	}
	return lines
}

type clock struct {
	hour, minute int
}

func (c clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.hour, c.minute)
}

func shiftHour(c clock, delta int) clock {
	c.hour = min(max(c.hour+delta, 0), 23)
	return c
}

func normalizeClock(s string) clock {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return clock{hour: t.Hour(), minute: t.Minute()}
		}
	}
	t, _ := time.Parse("15:04", DefaultEventTime)
	return clock{hour: t.Hour(), minute: t.Minute()}
}

func parseDuration(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return DefaultEventDurationHours
	}
	return n
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
