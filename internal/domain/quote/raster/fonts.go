package raster

import (
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"

	"mensalizou/go_backend/internal/domain/quote/render"
)

var (
	regularFonts = []string{"DejaVuSans.ttf", "Arial.ttf", "arial.ttf"}
	boldFonts    = []string{"DejaVuSans-Bold.ttf", "Arial Bold.ttf", "arialbd.ttf"}
)

// face pairs a font face with the nominal pixel size used for line pitch.
type face struct {
	font.Face
	size int
}

type faces struct {
	title, header, regular, small face
}

func (f faces) close() {
	for _, fc := range []face{f.title, f.header, f.regular, f.small} {
		fc.Close()
	}
}

func (g *Generator) loadFaces(rc render.Context, scale float64) faces {
	var dirs []string
	if rc.FontDir != "" {
		dirs = append(dirs, rc.FontDir)
	}
	dirs = append(dirs, g.FontDirs...)

	log := rc.Log()
	regular := findFont(dirs, regularFonts, log)
	bold := findFont(dirs, boldFonts, log)
	if bold == nil {
		bold = regular
	}
	return faces{
		title:   newFace(bold, max(20, int(36*scale))),
		header:  newFace(bold, max(14, int(20*scale))),
		regular: newFace(regular, max(12, int(16*scale))),
		small:   newFace(regular, max(10, int(12*scale))),
	}
}

// findFont returns the first preference that parses, or nil when none is
// available.
func findFont(dirs, names []string, log *slog.Logger) *opentype.Font {
	for _, name := range names {
		for _, dir := range dirs {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			f, err := opentype.Parse(data)
			if err != nil {
				log.Debug("raster: font skipped", "path", path, "error", err)
				continue
			}
			return f
		}
	}
	return nil
}

// newFace falls back to the built-in 7x13 face, whose size is fixed.
func newFace(f *opentype.Font, size int) face {
	if f != nil {
		fc, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			return face{Face: fc, size: size}
		}
	}
	return face{Face: basicfont.Face7x13, size: basicfont.Face7x13.Height}
}

func textWidth(f face, s string) int {
	b, _ := font.BoundString(f, s)
	return (b.Max.X - b.Min.X).Ceil()
}

func advance(f face) func(string) float64 {
	return func(s string) float64 {
		return float64(font.MeasureString(f, s).Ceil())
	}
}
