package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote"
)

const quoteQuery = `
SELECT o.id, o.empresa_id, c.nome, c.telefone, o.tipo_evento, o.endereco,
       o.data_evento, CAST(o.hora_evento AS CHAR(8)), o.periodo_evento,
       o.desconto_geral, o.valor_adicional, o.valor_pago, o.observacoes,
       o.status, o.data_criacao
  FROM orcamentos_orcamento o
  JOIN orcamentos_cliente c ON c.id = o.cliente_id
 WHERE o.id = ? AND o.empresa_id = ?`

const itemsQuery = `
SELECT oi.quantidade, oi.valor, oi.desconto, i.nome, i.descricao,
       i.valor_unitario, i.desconto
  FROM orcamentos_orcamentoitem oi
  JOIN orcamentos_item i ON i.id = oi.item_id
 WHERE oi.orcamento_id = ?
 ORDER BY oi.id`

const companyQuery = `
SELECT id, nome, cidade, instagram, whatsapp, logo,
       cor_principal, cor_secundaria, cor_acento
  FROM accounts_empresa
 WHERE id = ? AND ativa = ?`

type quoteRow struct {
	id, companyID   int64
	client, phone   sql.NullString
	eventType       sql.NullString
	address         sql.NullString
	eventDate       sql.NullTime
	eventTime       sql.NullString
	duration        sql.NullString
	generalDiscount decimal.NullDecimal
	additional      decimal.NullDecimal
	paid            decimal.NullDecimal
	notes           sql.NullString
	status          sql.NullString
	createdAt       sql.NullTime
}

func (r quoteRow) quote() quote.Quote {
	q := quote.Quote{
		ID:                 r.id,
		CompanyID:          r.companyID,
		Client:             quote.Client{Name: r.client.String, Phone: r.phone.String},
		EventType:          r.eventType.String,
		Address:            r.address.String,
		EventTime:          r.eventTime.String,
		EventDurationHours: r.duration.String,
		GeneralDiscount:    r.generalDiscount.Decimal,
		AdditionalValue:    r.additional.Decimal,
		AmountPaid:         r.paid.Decimal,
		Notes:              r.notes.String,
		Status:             quote.Status(strings.TrimSpace(r.status.String)),
		CreatedAt:          r.createdAt.Time,
	}
	if r.eventDate.Valid {
		d := r.eventDate.Time
		q.EventDate = &d
	}
	if !q.Status.Valid() {
		q.Status = quote.StatusPending
	}
	return q
}

type itemRow struct {
	quantity     int
	price        decimal.NullDecimal
	discount     decimal.NullDecimal
	name         sql.NullString
	description  sql.NullString
	catalogPrice decimal.NullDecimal
	catalogDisc  decimal.NullDecimal
}

func (r itemRow) lineItem() quote.LineItem {
	li := quote.LineItem{
		Quantity: r.quantity,
		Item: quote.CatalogItem{
			Description: r.description.String,
			UnitPrice:   r.catalogPrice.Decimal,
			Discount:    r.catalogDisc.Decimal,
		},
	}
	if r.price.Valid {
		p := r.price.Decimal
		li.UnitPrice = &p
	}
	if r.discount.Valid {
		d := r.discount.Decimal
		li.Discount = &d
	}
	if r.name.Valid && strings.TrimSpace(r.name.String) != "" {
		n := r.name.String
		li.Item.Name = &n
	}
	return li
}

// Quote loads quoteID with its items, scoped to companyID.
func (r *Repository) Quote(ctx context.Context, companyID, quoteID int64) (quote.Quote, error) {
	var row quoteRow
	err := r.queryRow(ctx, quoteQuery, quoteID, companyID).Scan(
		&row.id, &row.companyID, &row.client, &row.phone, &row.eventType, &row.address,
		&row.eventDate, &row.eventTime, &row.duration,
		&row.generalDiscount, &row.additional, &row.paid, &row.notes,
		&row.status, &row.createdAt,
	)
	if err != nil {
		return quote.Quote{}, notFound(err, "quote", quoteID)
	}
	q := row.quote()

	rows, err := r.query(ctx, itemsQuery, quoteID)
	if err != nil {
		return quote.Quote{}, fmt.Errorf("repository: load items of quote %d: %w", quoteID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var it itemRow
		if err := rows.Scan(&it.quantity, &it.price, &it.discount, &it.name, &it.description, &it.catalogPrice, &it.catalogDisc); err != nil {
			return quote.Quote{}, fmt.Errorf("repository: scan item of quote %d: %w", quoteID, err)
		}
		q.Items = append(q.Items, it.lineItem())
	}
	if err := rows.Err(); err != nil {
		return quote.Quote{}, fmt.Errorf("repository: load items of quote %d: %w", quoteID, err)
	}
	return q, nil
}

type companyRow struct {
	id                         int64
	name                       sql.NullString
	city, instagram, whatsapp  sql.NullString
	logo                       sql.NullString
	primary, secondary, accent sql.NullString
}

func (r companyRow) company() company.Company {
	return company.Company{
		ID:        r.id,
		Name:      r.name.String,
		City:      r.city.String,
		Instagram: r.instagram.String,
		WhatsApp:  r.whatsapp.String,
		Logo:      r.logo.String,
		Primary:   r.primary.String,
		Secondary: r.secondary.String,
		Accent:    r.accent.String,
	}
}

// Company loads an active company.
func (r *Repository) Company(ctx context.Context, companyID int64) (company.Company, error) {
	var row companyRow
	err := r.queryRow(ctx, companyQuery, companyID, true).Scan(
		&row.id, &row.name, &row.city, &row.instagram, &row.whatsapp, &row.logo,
		&row.primary, &row.secondary, &row.accent,
	)
	if err != nil {
		return company.Company{}, notFound(err, "company", companyID)
	}
	return row.company(), nil
}
