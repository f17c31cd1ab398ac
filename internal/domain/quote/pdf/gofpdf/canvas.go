package gofpdf

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/layout"
	"mensalizou/go_backend/internal/domain/quote/render"
)

// Page geometry in points. The cursor y grows downward from the top edge.
const (
	mm = 72.0 / 25.4

	marginX     = 15 * mm
	headerBandH = 70.0
	titleCardH  = 20 * mm
	topOfPage   = 40.0

	logoMaxW = 40 * mm
	logoMaxH = 60.0
	logoTop  = 5.0

	// Distances from the bottom edge that force a page break.
	tableBottomLimit = 100.0
	infoBottomLimit  = 50.0
	notesBottomLimit = 30.0

	footerContactFromBottom = 15.0
	footerCaptionFromBottom = 5.0
)

type canvas struct {
	pdf    *gofpdf.Fpdf
	rc     render.Context
	pal    render.Palette
	family string
	tr     func(string) string
	w, h   float64
	y      float64
}

func (c *canvas) contentWidth() float64 { return c.w - 2*marginX }

func (c *canvas) font(style string, size float64) { c.pdf.SetFont(c.family, style, size) }

func (c *canvas) fill(col render.RGB) { c.pdf.SetFillColor(col.Ints()) }

func (c *canvas) ink(col render.RGB) { c.pdf.SetTextColor(col.Ints()) }

func (c *canvas) width(s string) float64 { return c.pdf.GetStringWidth(c.tr(s)) }

func (c *canvas) text(x, y float64, s string) { c.pdf.Text(x, y, c.tr(s)) }

func (c *canvas) textRight(right, y float64, s string) { c.text(right-c.width(s), y, s) }

func (c *canvas) textCentre(cx, y float64, s string) { c.text(cx-c.width(s)/2, y, s) }

// wrap breaks s with the current font.
func (c *canvas) wrap(s string, maxW float64) []string {
	return layout.Lines(layout.Wrap(s, maxW, c.width))
}

func (c *canvas) newPage() {
	c.pdf.AddPage()
	c.y = topOfPage
}

// ensure starts a new page when a block of height h would cross the given
// bottom limit.
func (c *canvas) ensure(h, bottomLimit float64) {
	if c.y+h > c.h-bottomLimit {
		c.newPage()
	}
}

func (c *canvas) issued(doc quote.Document) time.Time {
	if doc.CreationDate.IsZero() {
		return c.rc.Clock()
	}
	return doc.CreationDate
}

// drawHeader paints the colored band, the title card, the title with its two
// right-aligned captions and the logo.
func (c *canvas) drawHeader(title string, titleSize, cardTop float64, right [2]string) {
	c.fill(c.pal.Primary)
	c.pdf.Rect(0, 0, c.w, headerBandH, "F")

	c.fill(c.pal.Light)
	c.pdf.RoundedRect(marginX, cardTop, c.contentWidth(), titleCardH, 4*mm, "1234", "F")

	baseline := cardTop + titleCardH*0.74
	c.ink(c.pal.Primary)
	c.font("B", titleSize)
	c.text(marginX+5*mm, baseline, title)

	c.ink(c.pal.Muted)
	c.font("", 8)
	rx := c.w - marginX - 5*mm
	c.textRight(rx, baseline, right[0])
	c.textRight(rx, baseline+10, right[1])

	c.drawLogo()
}

// drawLogo places the optional logo centred in the header band. Any problem
// with the file is logged and the logo is skipped.
func (c *canvas) drawLogo() {
	path := strings.TrimSpace(c.rc.LogoPath)
	if path == "" {
		return
	}
	log := c.rc.Log().With("logo", path)

	f, err := os.Open(path)
	if err != nil {
		log.Debug("quote pdf: logo skipped", "error", err)
		return
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		log.Debug("quote pdf: logo skipped", "error", err)
		return
	}
	imageType := map[string]string{"png": "PNG", "jpeg": "JPG", "gif": "GIF"}[format]
	if imageType == "" {
		log.Debug("quote pdf: logo skipped", "format", format)
		return
	}
	if _, err := f.Seek(0, 0); err != nil {
		log.Debug("quote pdf: logo skipped", "error", err)
		return
	}

	opts := gofpdf.ImageOptions{ImageType: imageType}
	c.pdf.RegisterImageOptionsReader(path, opts, f)
	if err := c.pdf.Error(); err != nil {
		log.Debug("quote pdf: logo skipped", "error", err)
		c.pdf.ClearError()
		return
	}

	w, h := layout.Fit(float64(cfg.Width), float64(cfg.Height), logoMaxW, logoMaxH)
	c.pdf.ImageOptions(path, (c.w-w)/2, logoTop, w, h, false, opts, 0, "")
}

func (c *canvas) drawFooter(caption string) {
	c.ink(c.pal.Muted)
	c.font("", 7)
	if contact := c.rc.Brand.ContactLine(); contact != "" {
		c.textCentre(c.w/2, c.h-footerContactFromBottom, contact)
	}
	if caption != "" {
		c.textCentre(c.w/2, c.h-footerCaptionFromBottom, caption)
	}
}

// section writes a bold heading at the cursor and moves below it.
func (c *canvas) section(title string, col render.RGB) {
	c.ink(col)
	c.font("B", 10)
	c.text(marginX, c.y, title)
	c.y += 12
}
