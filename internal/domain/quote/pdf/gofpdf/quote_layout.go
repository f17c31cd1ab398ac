package gofpdf

import (
	"strings"
	"unicode/utf8"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/layout"
)

const (
	addressColumnW   = 60 * mm
	addressWrapRunes = 40
	totalsBoxH       = 80.0
	notesPitch       = 4 * mm
)

func (c *canvas) drawQuote(doc quote.Document) {
	c.drawHeader("ORÇAMENTO", 16, headerBandH+20-titleCardH, [2]string{
		"Data: " + c.rc.Clock().Format("02/01/2006"),
		"Validade: 7 dias",
	})

	c.y = 105
	c.drawClientAddress(doc)
	c.y += 15

	t := table{
		headers: []string{"DESCRIÇÃO", "QTD", "VALOR UNIT.", "TOTAL"},
		widths:  []float64{0.60, 0.10, 0.15, 0.15},
	}
	for _, l := range doc.Lines {
		t.rows = append(t.rows, []string{
			l.Description,
			quote.FormatQuantity(l.Quantity),
			quote.FormatBRL(l.UnitPrice),
			quote.FormatBRL(l.Total()),
		})
	}
	c.drawTable(t)

	c.drawQuoteTotals(doc)
	c.drawNotes(doc.NotesOrDefault())
	c.drawFooter(c.rc.Brand.Caption())
}

// drawClientAddress writes the client on the left and the address column on
// the right, leaving the cursor under the taller of the two.
func (c *canvas) drawClientAddress(doc quote.Document) {
	rightX := c.w - marginX - addressColumnW

	c.ink(c.pal.Dark)
	c.font("B", 10)
	c.text(marginX, c.y, "CLIENTE")
	c.text(rightX, c.y, "ENDEREÇO")
	c.y += 12

	c.font("", 9)
	c.text(marginX, c.y, clientLine(doc.Client))

	lines := doc.AddressLines()
	street := []string{lines[0]}
	if utf8.RuneCountInString(lines[0]) > addressWrapRunes {
		street = c.wrap(lines[0], addressColumnW)
	}
	for _, l := range append(street, lines[1:]...) {
		c.text(rightX, c.y, l)
		c.y += 10
	}
	c.text(rightX, c.y, "data do evento: "+doc.Event.Date+" às "+doc.Event.StartTime)
	c.y += 10
}

func clientLine(cl quote.Client) string {
	s := "Nome: " + orDash(cl.Name)
	return s + " - " + orDash(cl.Phone)
}

func (c *canvas) drawQuoteTotals(doc quote.Document) {
	c.y += 10
	c.ensure(totalsBoxH, notesBottomLimit)

	x := marginX + c.contentWidth()/2
	w := c.contentWidth() / 2
	left, right := x+5*mm, x+w-5*mm

	c.fill(c.pal.Light)
	c.pdf.RoundedRect(x, c.y, w, totalsBoxH, 4*mm, "1234", "F")

	c.ink(c.pal.Dark)
	c.font("", 9)
	for i, l := range doc.Summary() {
		y := c.y + 15 + float64(i)*10
		c.text(left, y, l.Label)
		c.textRight(right, y, l.Value)
	}

	c.pdf.SetDrawColor(c.pal.Muted.Ints())
	c.pdf.SetLineWidth(0.5)
	c.pdf.Line(left, c.y+53, right, c.y+53)

	total := doc.TotalLine()
	c.ink(c.pal.Success)
	c.font("B", 11)
	c.text(left, c.y+68, total.Label)
	c.textRight(right, c.y+68, total.Value)

	c.y += totalsBoxH
}

// drawNotes lists the notes one line at a time, continuing on new pages
// without a table header.
func (c *canvas) drawNotes(notes string) {
	c.y += 20
	c.ensure(15+notesPitch, notesBottomLimit)

	c.ink(c.pal.Muted)
	c.font("B", 9)
	c.text(marginX, c.y, "OBSERVAÇÕES:")
	c.y += 15

	c.ink(c.pal.Dark)
	c.font("", 8)
	for _, l := range layout.WrapAll(notes, c.contentWidth()-5*mm, c.width) {
		if c.y > c.h-notesBottomLimit {
			c.newPage()
		}
		c.text(marginX+5*mm, c.y, l)
		c.y += notesPitch
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
