package gofpdf

const (
	tableHeaderH   = 10 * mm
	tableHeaderGap = 4.0
	rowMinH        = 7 * mm
	rowPitch       = 3 * mm
	cellPadX       = 3 * mm
)

// column widths are fractions of the content width. The first column is
// left aligned and wrapped; the rest are centred.
type table struct {
	headers []string
	widths  []float64
	rows    [][]string
}

type rowSlot struct {
	// newPage means the row opens a new page under a repeated header.
	newPage bool
	y       float64
	height  float64
	lines   []string
}

// planRows assigns every row a vertical slot starting at y, which must be
// just below a drawn header. A row that would cross the bottom limit moves
// to a new page; a row is never split, and the first row under a header
// always stays put.
func planRows(heights []float64, y, pageH float64) []rowSlot {
	limit := pageH - tableBottomLimit
	slots := make([]rowSlot, 0, len(heights))
	underHeader := true
	for _, h := range heights {
		slot := rowSlot{y: y, height: h}
		if !underHeader && y+h > limit {
			slot.newPage = true
			slot.y = topOfPage + tableHeaderH + tableHeaderGap
		}
		slots = append(slots, slot)
		underHeader = false
		y = slot.y + h
	}
	return slots
}

func (c *canvas) columns(t table) (xs, ws []float64) {
	x := marginX
	for _, f := range t.widths {
		w := c.contentWidth() * f
		xs = append(xs, x)
		ws = append(ws, w)
		x += w
	}
	return xs, ws
}

// drawTableHeader draws the header row with its top edge at the cursor.
func (c *canvas) drawTableHeader(t table) {
	xs, ws := c.columns(t)
	c.fill(c.pal.Primary)
	c.pdf.RoundedRect(marginX, c.y, c.contentWidth(), tableHeaderH, 3*mm, "1234", "F")

	c.ink(c.pal.White)
	c.font("B", 8)
	baseline := c.y + tableHeaderH/2 + 3
	for i, h := range t.headers {
		if i == 0 {
			c.text(xs[i]+cellPadX, baseline, h)
			continue
		}
		c.textCentre(xs[i]+ws[i]/2, baseline, h)
	}
	c.y += tableHeaderH + tableHeaderGap
}

// drawTable draws the header and the rows, repeating the header on every
// page the rows spill onto.
func (c *canvas) drawTable(t table) {
	xs, ws := c.columns(t)
	c.drawTableHeader(t)

	c.font("", 8)
	descLines := make([][]string, len(t.rows))
	heights := make([]float64, len(t.rows))
	for i, row := range t.rows {
		lines := c.wrap(row[0], ws[0]-2*cellPadX)
		if len(lines) == 0 {
			lines = []string{""}
		}
		descLines[i] = lines
		heights[i] = max(rowMinH, float64(len(lines))*rowPitch)
	}

	for i, slot := range planRows(heights, c.y, c.h) {
		if slot.newPage {
			c.newPage()
			c.drawTableHeader(t)
		}
		c.y = slot.y
		if i%2 == 0 {
			c.fill(c.pal.Light)
			c.pdf.RoundedRect(marginX, slot.y, c.contentWidth(), slot.height, 2*mm, "1234", "F")
		}

		c.ink(c.pal.Dark)
		c.font("", 8)
		lines := descLines[i]
		block := float64(len(lines)) * rowPitch
		first := slot.y + (slot.height-block)/2 + rowPitch*0.8
		for j, l := range lines {
			c.text(xs[0]+cellPadX, first+float64(j)*rowPitch, l)
		}
		middle := slot.y + slot.height/2 + 2.8
		for col := 1; col < len(t.rows[i]) && col < len(xs); col++ {
			c.textCentre(xs[col]+ws[col]/2, middle, t.rows[i][col])
		}
		c.y = slot.y + slot.height
	}
}
