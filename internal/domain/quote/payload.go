package quote

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Payload is the JSON form of a quote accepted by the render endpoint and
// the quotegen command.
type Payload struct {
	Client struct {
		Name  string `json:"name" validate:"required"`
		Phone string `json:"phone"`
	} `json:"client"`
	EventType          string          `json:"event_type"`
	Address            string          `json:"address"`
	EventDate          string          `json:"event_date"`
	EventTime          string          `json:"event_time"`
	EventDurationHours string          `json:"event_duration_hours"`
	GeneralDiscount    decimal.Decimal `json:"general_discount"`
	AdditionalValue    decimal.Decimal `json:"additional_value"`
	AmountPaid         decimal.Decimal `json:"amount_paid"`
	Notes              string          `json:"notes"`
	Status             string          `json:"status" validate:"omitempty,oneof=pendente confirmado concluido cancelado reagendar"`
	Items              []PayloadItem   `json:"items" validate:"dive"`
}

type PayloadItem struct {
	Name        string          `json:"name"`
	Description string          `json:"description" validate:"required_without=Name"`
	Quantity    int             `json:"quantity" validate:"gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Period      string          `json:"period"`
}

// Quote converts the payload. Negative amounts and percentages above 100
// fail with ErrInvalidAmount.
func (p Payload) Quote(now time.Time) (Quote, error) {
	if err := checkPercent("general_discount", p.GeneralDiscount); err != nil {
		return Quote{}, err
	}
	if err := checkAmount("additional_value", p.AdditionalValue); err != nil {
		return Quote{}, err
	}
	if err := checkAmount("amount_paid", p.AmountPaid); err != nil {
		return Quote{}, err
	}

	q := Quote{
		Client:             Client{Name: p.Client.Name, Phone: p.Client.Phone},
		EventType:          p.EventType,
		Address:            p.Address,
		EventTime:          p.EventTime,
		EventDurationHours: p.EventDurationHours,
		GeneralDiscount:    p.GeneralDiscount,
		AdditionalValue:    p.AdditionalValue,
		AmountPaid:         p.AmountPaid,
		Notes:              p.Notes,
		Status:             Status(p.Status),
		CreatedAt:          now,
	}
	if q.Status == "" {
		q.Status = StatusPending
	}
	if d := strings.TrimSpace(p.EventDate); d != "" {
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			return Quote{}, fmt.Errorf("quote: event_date %q: %w", d, err)
		}
		q.EventDate = &t
	}

	for i, it := range p.Items {
		if it.Quantity <= 0 {
			return Quote{}, fmt.Errorf("items[%d].quantity must be > 0: %w", i, ErrInvalidAmount)
		}
		if err := checkAmount(fmt.Sprintf("items[%d].unit_price", i), it.UnitPrice); err != nil {
			return Quote{}, err
		}
		if err := checkPercent(fmt.Sprintf("items[%d].discount", i), it.Discount); err != nil {
			return Quote{}, err
		}
		item := CatalogItem{
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
			Discount:    it.Discount,
			Period:      it.Period,
		}
		if it.Name != "" {
			name := it.Name
			item.Name = &name
		}
		q.Items = append(q.Items, LineItem{Quantity: it.Quantity, Item: item})
	}
	return q, nil
}

func checkAmount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%s must not be negative: %w", field, ErrInvalidAmount)
	}
	return nil
}

func checkPercent(field string, v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(hundred) {
		return fmt.Errorf("%s must be within [0,100]: %w", field, ErrInvalidAmount)
	}
	return nil
}
