package raster

import (
	"time"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/layout"
	"mensalizou/go_backend/internal/domain/quote/render"
)

// metrics are the fixed layout sizes for a 1080px canvas scaled to width.
type metrics struct {
	scale    float64
	width    int
	margin   int
	contentW int

	headerH      int
	clientH      int
	tableHeaderH int
	rowMinH      int
	pad          int
	totalsH      int
	footerH      int
	bottom       int
	slack        int
}

func newMetrics(width int) metrics {
	m := metrics{scale: float64(width) / DefaultWidth, width: width}
	m.margin = m.px(40)
	m.contentW = width - 2*m.margin
	m.headerH = m.px(140)
	m.clientH = m.px(80)
	m.tableHeaderH = m.px(50)
	m.rowMinH = m.px(60)
	m.pad = m.px(10)
	m.totalsH = m.px(180)
	m.footerH = m.px(60)
	m.bottom = m.px(30)
	m.slack = 90
	return m
}

func (m metrics) px(v float64) int { return int(v * m.scale) }

type column struct {
	x, w int
}

type row struct {
	y, h  int
	lines []string
	cells []string
}

// plan is the full vertical layout, computed before the canvas exists.
type plan struct {
	variant render.Variant
	m       metrics
	f       faces
	pitch   int

	titleBoxY, titleBoxH int
	title                string
	captions             [2]string

	clientY int
	clientH int
	left    []string
	addr    []string

	tableY  int
	headers []string
	cols    []column
	rows    []row

	totalsY, totalsH int
	summary          []quote.SummaryLine
	total            quote.SummaryLine

	notesY int
	notes  []string

	footerY    int
	stamp      string
	height     int
	usedHeight int
}

// measure lays out doc; now dates the quote caption.
func measure(doc quote.Document, v render.Variant, m metrics, f faces, now time.Time) plan {
	p := plan{variant: v, m: m, f: f, pitch: f.regular.size + m.px(6)}
	regular := advance(f.regular)

	switch v {
	case render.VariantConfirmation:
		p.titleBoxH = m.px(50)
		p.titleBoxY = m.headerH - m.px(40)
		p.title = "CONFIRMAÇÃO DE AGENDAMENTO"
		p.captions = [2]string{"Data de emissão: " + doc.CreationDateLabel(), "Documento de confirmação"}
		p.clientY = p.titleBoxY + p.titleBoxH + m.px(20)
		p.left = []string{
			"Nome: " + orDash(doc.Client.Name) + " - " + orDash(doc.Client.Phone),
			"Montagem prevista: " + doc.Event.AssemblyTime,
			"Desmontagem prevista: " + doc.Event.DisassemblyTime,
		}
		p.headers = []string{"BRINQUEDO", "QTD", "PERÍODO"}
		p.cols = columns(m, 0.70, 0.15, 0.15)
		p.summary = append(doc.Summary(), doc.PaymentLines()...)
		p.stamp = "Confirmação #" + now.Format("20060102")
	default:
		p.titleBoxH = m.px(60)
		p.titleBoxY = m.headerH - m.px(30)
		p.title = "ORÇAMENTO"
		p.captions = [2]string{"Data: " + now.Format("02/01/2006"), "Validade: 7 dias"}
		p.clientY = p.titleBoxY + p.titleBoxH + m.px(10)
		p.left = []string{"Nome: " + orDash(doc.Client.Name) + " - " + orDash(doc.Client.Phone)}
		p.headers = []string{"DESCRIÇÃO", "QTD", "VALOR UNIT.", "TOTAL"}
		p.cols = columns(m, 0.60, 0.10, 0.15, 0.15)
		p.summary = doc.Summary()
	}
	p.total = doc.TotalLine()

	addrW := float64(m.px(300))
	for _, l := range doc.AddressLines() {
		p.addr = append(p.addr, layout.Lines(layout.Wrap(l, addrW, regular))...)
	}
	when := "data do evento: " + doc.Event.Date + " às " + doc.Event.StartTime
	p.addr = append(p.addr, layout.Lines(layout.Wrap(when, addrW, regular))...)
	body := max(len(p.left), len(p.addr)) * p.pitch
	p.clientH = max(m.clientH, f.header.size+m.px(8)+body)

	p.tableY = p.clientY + p.clientH + m.px(10)
	y := p.tableY + m.tableHeaderH + m.px(8)
	descW := float64(p.cols[0].w - 2*m.pad)
	for _, l := range doc.Lines {
		lines := layout.Lines(layout.Wrap(l.Description, descW, regular))
		if len(lines) == 0 {
			lines = []string{""}
		}
		r := row{y: y, lines: lines, h: max(m.rowMinH, len(lines)*p.pitch)}
		if v == render.VariantConfirmation {
			r.cells = []string{quote.FormatQuantity(l.Quantity), l.Period}
		} else {
			r.cells = []string{quote.FormatQuantity(l.Quantity), quote.FormatBRL(l.UnitPrice), quote.FormatBRL(l.Total())}
		}
		p.rows = append(p.rows, r)
		y += r.h
	}

	p.totalsY = y + m.px(12)
	p.totalsH = max(m.totalsH, m.px(12)+len(p.summary)*p.pitch+m.px(16)+f.header.size+m.px(12))

	p.notesY = p.totalsY + p.totalsH + m.px(12)
	p.notes = layout.WrapAll(doc.NotesOrDefault(), float64(m.contentW-2*m.pad), regular)
	notesH := f.header.size + m.px(6) + max(m.px(60), len(p.notes)*p.pitch)
	contentEnd := p.notesY + notesH

	p.height = contentEnd + m.footerH + m.bottom + m.slack
	if v == render.VariantConfirmation {
		p.footerY = contentEnd + m.px(20)
		p.usedHeight = min(p.height, p.footerY+m.footerH+m.px(20))
	} else {
		p.footerY = p.height - m.footerH
		p.usedHeight = p.height
	}
	return p
}

func columns(m metrics, fractions ...float64) []column {
	cols := make([]column, 0, len(fractions))
	x := m.margin
	for _, f := range fractions {
		w := int(f * float64(m.contentW))
		cols = append(cols, column{x: x, w: w})
		x += w
	}
	return cols
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
