package raster

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/layout"
	"mensalizou/go_backend/internal/domain/quote/render"
)

type canvas struct {
	img *image.RGBA
	rc  render.Context
	pal render.Palette
	p   plan
}

func newCanvas(rc render.Context, p plan) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, p.m.width, p.height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &canvas{img: img, rc: rc, pal: rc.Palette(), p: p}
}

func (c *canvas) paint(doc quote.Document) {
	p, m, f := c.p, c.p.m, c.p.f
	confirmation := p.variant == render.VariantConfirmation

	fillRect(c.img, image.Rect(0, 0, m.width, m.headerH), c.pal.Primary.Color())
	if confirmation {
		c.drawLogo(m.px(120), m.px(80), m.px(20))
	}
	fillRoundedRect(c.img, image.Rect(m.margin, p.titleBoxY, m.width-m.margin, p.titleBoxY+p.titleBoxH), m.px(8), c.pal.Light.Color())
	c.text(m.margin+m.px(12), p.titleBoxY+m.px(8), p.title, f.title, c.pal.Primary)
	right := m.width - m.margin - m.px(12)
	c.textRight(right, p.titleBoxY+m.px(12), p.captions[0], f.small, c.pal.Muted)
	c.textRight(right, p.titleBoxY+m.px(12)+f.small.size+2, p.captions[1], f.small, c.pal.Muted)
	if !confirmation {
		top := m.px(10)
		c.drawLogo(m.px(200), p.titleBoxY-2*top, top)
	}

	c.drawClient()
	c.drawTable()
	c.drawTotals()
	c.drawNotes()
	c.drawFooter(confirmation)
}

func (c *canvas) drawClient() {
	p, m, f := c.p, c.p.m, c.p.f
	rightX := m.width - m.margin - m.px(300)

	c.text(m.margin, p.clientY, "CLIENTE", f.header, c.pal.Dark)
	c.text(rightX, p.clientY, "ENDEREÇO", f.header, c.pal.Dark)
	y := p.clientY + f.header.size + m.px(8)
	for i, l := range p.left {
		c.text(m.margin, y+i*p.pitch, l, f.regular, c.pal.Dark)
	}
	for i, l := range p.addr {
		c.text(rightX, y+i*p.pitch, l, f.regular, c.pal.Dark)
	}
}

func (c *canvas) drawTable() {
	p, m, f := c.p, c.p.m, c.p.f

	fillRoundedRect(c.img, image.Rect(m.margin, p.tableY, m.width-m.margin, p.tableY+m.tableHeaderH), m.px(6), c.pal.Primary.Color())
	hy := p.tableY + (m.tableHeaderH-f.small.size)/2
	for i, h := range p.headers {
		col := p.cols[i]
		if i == 0 {
			c.text(col.x+m.px(12), hy, h, f.small, c.pal.White)
			continue
		}
		c.textCentre(col.x+col.w/2, hy, h, f.small, c.pal.White)
	}

	for i, r := range p.rows {
		if i%2 == 0 {
			fillRoundedRect(c.img, image.Rect(m.margin, r.y, m.width-m.margin, r.y+r.h), m.px(4), c.pal.Light.Color())
		}
		dy := r.y + (r.h-len(r.lines)*p.pitch)/2 + (p.pitch-f.regular.size)/2
		for j, l := range r.lines {
			c.text(p.cols[0].x+m.px(12), dy+j*p.pitch, l, f.regular, c.pal.Dark)
		}
		cy := r.y + (r.h-f.regular.size)/2
		for j, cell := range r.cells {
			col := p.cols[j+1]
			c.textCentre(col.x+col.w/2, cy, cell, f.regular, c.pal.Dark)
		}
	}
}

func (c *canvas) drawTotals() {
	p, m, f := c.p, c.p.m, c.p.f
	x0 := m.margin + m.contentW/2
	x1 := m.width - m.margin
	fillRoundedRect(c.img, image.Rect(x0, p.totalsY, x1, p.totalsY+p.totalsH), m.px(6), c.pal.Light.Color())

	tx, rx := x0+m.px(12), x1-m.px(12)
	ty := p.totalsY + m.px(12)
	for _, l := range p.summary {
		c.text(tx, ty, l.Label, f.regular, c.pal.Dark)
		c.textRight(rx, ty, l.Value, f.regular, c.pal.Dark)
		ty += p.pitch
	}
	sep := ty + m.px(8)
	fillRect(c.img, image.Rect(tx, sep, rx, sep+max(1, m.px(1))), c.pal.Muted.Color())
	ty = sep + m.px(8)
	c.text(tx, ty, p.total.Label, f.header, c.pal.Success)
	c.textRight(rx, ty, p.total.Value, f.header, c.pal.Success)
}

func (c *canvas) drawNotes() {
	p, m, f := c.p, c.p.m, c.p.f
	c.text(m.margin, p.notesY, "OBSERVAÇÕES:", f.header, c.pal.Muted)
	y := p.notesY + f.header.size + m.px(6)
	for i, l := range p.notes {
		c.text(m.margin+m.px(8), y+i*p.pitch, l, f.regular, c.pal.Dark)
	}
}

func (c *canvas) drawFooter(confirmation bool) {
	p, m, f := c.p, c.p.m, c.p.f
	ink := c.pal.Muted
	caption := c.rc.Brand.Caption()
	if confirmation {
		fillRect(c.img, image.Rect(0, p.footerY, m.width, p.footerY+m.footerH), c.pal.Primary.Color())
		ink = c.pal.White
		caption = c.rc.Brand.Caption(p.stamp)
	}
	if contact := c.rc.Brand.ContactLine(); contact != "" {
		c.textCentre(m.width/2, p.footerY+m.px(6), contact, f.small, ink)
	}
	c.textCentre(m.width/2, p.footerY+m.footerH-m.px(12)-f.small.size, caption, f.small, ink)
}

// drawLogo scales the logo into a maxW×maxH box centred horizontally at top.
// Unreadable logos are skipped.
func (c *canvas) drawLogo(maxW, maxH, top int) {
	path := strings.TrimSpace(c.rc.LogoPath)
	if path == "" || maxW <= 0 || maxH <= 0 {
		return
	}
	fh, err := os.Open(path)
	if err != nil {
		c.rc.Log().Debug("raster: logo skipped", "logo", path, "error", err)
		return
	}
	defer fh.Close()
	src, _, err := image.Decode(fh)
	if err != nil {
		c.rc.Log().Debug("raster: logo skipped", "logo", path, "error", err)
		return
	}

	sb := src.Bounds()
	w, h := layout.Fit(float64(sb.Dx()), float64(sb.Dy()), float64(maxW), float64(maxH))
	if int(w) == 0 || int(h) == 0 {
		return
	}
	x := (c.p.m.width - int(w)) / 2
	draw.CatmullRom.Scale(c.img, image.Rect(x, top, x+int(w), top+int(h)), src, sb, draw.Over, nil)
}

// text draws s with its top edge at y.
func (c *canvas) text(x, y int, s string, f face, col render.RGB) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col.Color()),
		Face: f,
		Dot:  fixed.P(x, y+f.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

func (c *canvas) textRight(right, y int, s string, f face, col render.RGB) {
	c.text(right-textWidth(f, s), y, s, f, col)
}

func (c *canvas) textCentre(cx, y int, s string, f face, col render.RGB) {
	c.text(cx-textWidth(f, s)/2, y, s, f, col)
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// fillRoundedRect fills r with corners of the given radius. Corner pixels are
// kept when their centre lies inside the corner circle.
func fillRoundedRect(dst *image.RGBA, r image.Rectangle, radius int, col color.RGBA) {
	r = r.Canon()
	radius = min(radius, r.Dx()/2, r.Dy()/2)
	if radius <= 0 {
		fillRect(dst, r, col)
		return
	}
	fillRect(dst, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), col)

	rr := float64(radius) * float64(radius)
	for dy := range radius {
		for dx := range radius {
			ox := float64(radius-dx) - 0.5
			oy := float64(radius-dy) - 0.5
			if ox*ox+oy*oy > rr {
				continue
			}
			dst.SetRGBA(r.Min.X+dx, r.Min.Y+dy, col)
			dst.SetRGBA(r.Max.X-1-dx, r.Min.Y+dy, col)
			dst.SetRGBA(r.Min.X+dx, r.Max.Y-1-dy, col)
			dst.SetRGBA(r.Max.X-1-dx, r.Max.Y-1-dy, col)
		}
	}
}
