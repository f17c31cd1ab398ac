package gofpdf

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/render"
)

const (
	regularFontFile = "DejaVuSans.ttf"
	boldFontFile    = "DejaVuSans-Bold.ttf"
	utf8Family      = "DejaVu"
	coreFamily      = "Helvetica"
)

type Generator struct {
	// Compress toggles content stream compression. New enables it.
	Compress bool
}

func New() *Generator { return &Generator{Compress: true} }

func (g *Generator) Generate(rc render.Context, doc quote.Document, w io.Writer) error {
	c := g.newCanvas(rc)
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("quote pdf: setup: %w", err)
	}

	c.pdf.AddPage()
	switch doc.Variant() {
	case render.VariantConfirmation:
		c.drawConfirmation(doc)
	default:
		c.drawQuote(doc)
	}
	if err := c.pdf.Error(); err != nil {
		return fmt.Errorf("quote pdf: draw: %w", err)
	}

	if err := c.pdf.Output(w); err != nil {
		rc.Log().Error("quote pdf: output failed", "error", err)
		return fmt.Errorf("quote pdf: output: %w", err)
	}
	return nil
}

func (g *Generator) newCanvas(rc render.Context) *canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "A4",
		FontDirStr:     rc.FontDir,
	})
	pdf.SetMargins(marginX, topOfPage, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(g.Compress)
	pdf.SetCatalogSort(true)
	now := rc.Clock()
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	if rc.Brand.Name != "" {
		pdf.SetAuthor(rc.Brand.Name, true)
	}

	c := &canvas{
		pdf:    pdf,
		rc:     rc,
		pal:    rc.Palette(),
		family: coreFamily,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
	c.w, c.h = pdf.GetPageSize()
	c.loadFonts()
	return c
}

// loadFonts switches to the DejaVu TrueType family when both files are in
// the font directory. Otherwise the core Helvetica family stays in use.
func (c *canvas) loadFonts() {
	dir := c.rc.FontDir
	if dir == "" {
		return
	}
	for _, name := range []string{regularFontFile, boldFontFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			c.rc.Log().Debug("quote pdf: font not found, using core fonts", "font", name, "dir", dir)
			return
		}
	}
	c.pdf.AddUTF8Font(utf8Family, "", regularFontFile)
	c.pdf.AddUTF8Font(utf8Family, "B", boldFontFile)
	if err := c.pdf.Error(); err != nil {
		c.rc.Log().Warn("quote pdf: load fonts failed, using core fonts", "dir", dir, "error", err)
		c.pdf.ClearError()
		return
	}
	c.family = utf8Family
	c.tr = func(s string) string { return s }
}
