package quote

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("quote: invalid amount")

type Status string

const (
	StatusPending     Status = "pendente"
	StatusConfirmed   Status = "confirmado"
	StatusCompleted   Status = "concluido"
	StatusCancelled   Status = "cancelado"
	StatusRescheduled Status = "reagendar"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusRescheduled:
		return true
	}
	return false
}

// Quote is the stored quote record as loaded from persistence. Optional
// fields stay empty/nil here; Build applies the defaults.
type Quote struct {
	ID        int64
	CompanyID int64
	Client    Client
	EventType string
	Address   string
	EventDate *time.Time
	// EventTime is "HH:MM" (seconds are tolerated).
	EventTime string
	// EventDurationHours is the raw stored value, e.g. "3".
	EventDurationHours string
	GeneralDiscount    decimal.Decimal
	AdditionalValue    decimal.Decimal
	AmountPaid         decimal.Decimal
	Notes              string
	Status             Status
	CreatedAt          time.Time
	Items              []LineItem
}

type Client struct {
	Name  string
	Phone string
}

// LineItem is a catalog item on a quote. Nil overrides fall back to the
// catalog values.
type LineItem struct {
	Quantity  int
	UnitPrice *decimal.Decimal
	Discount  *decimal.Decimal
	Item      CatalogItem
}

type CatalogItem struct {
	// Name is the optional custom display name.
	Name        *string
	Description string
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	Period      string
}
