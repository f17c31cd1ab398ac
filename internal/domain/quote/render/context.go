// Package render carries the per-call styling inputs shared by the PDF and
// raster generators. Nothing here is global: callers build a Context for every
// render and pass it down explicitly.
package render

import (
	"image/color"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

type Variant string

const (
	VariantQuote        Variant = "quote"
	VariantConfirmation Variant = "confirmation"
)

// Theme holds the company colors as hex strings ("#RRGGBB").
type Theme struct {
	Primary   string
	Secondary string
	Accent    string
}

func DefaultTheme() Theme {
	return Theme{Primary: "#2463EB", Secondary: "#4ECDC4", Accent: "#FF6B6B"}
}

type Brand struct {
	Name      string
	City      string
	Instagram string
	WhatsApp  string
}

// ContactLine joins the social handles shown in document footers.
func (b Brand) ContactLine() string {
	parts := make([]string, 0, 2)
	if b.Instagram != "" {
		parts = append(parts, "Instagram: "+b.Instagram)
	}
	if b.WhatsApp != "" {
		parts = append(parts, "WhatsApp: "+b.WhatsApp)
	}
	return strings.Join(parts, "   |   ")
}

// Caption is the "Name • City" line, extended with any extra segments.
func (b Brand) Caption(extra ...string) string {
	parts := make([]string, 0, 2+len(extra))
	for _, p := range append([]string{b.Name, b.City}, extra...) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " • ")
}

type Context struct {
	Theme    Theme
	Brand    Brand
	LogoPath string
	// FontDir is searched for TrueType fonts; empty means built-in fonts only.
	FontDir string
	Now     time.Time
	Logger  *slog.Logger
}

func (c Context) Log() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Context) Clock() time.Time {
	if c.Now.IsZero() {
		return time.Now()
	}
	return c.Now
}

// Palette resolves the theme into concrete colors, falling back to the
// default theme for any value that does not parse.
func (c Context) Palette() Palette {
	def := DefaultTheme()
	return Palette{
		Primary:   ParseHex(c.Theme.Primary, mustHex(def.Primary)),
		Secondary: ParseHex(c.Theme.Secondary, mustHex(def.Secondary)),
		Accent:    ParseHex(c.Theme.Accent, mustHex(def.Accent)),
		Light:     mustHex("#F8FAFC"),
		Dark:      mustHex("#1E293B"),
		Muted:     mustHex("#64748B"),
		Success:   mustHex("#10B981"),
		White:     RGB{255, 255, 255},
	}
}

type Palette struct {
	Primary, Secondary, Accent RGB
	Light, Dark, Muted         RGB
	Success, White             RGB
}

type RGB struct {
	R, G, B uint8
}

func (c RGB) Color() color.RGBA { return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff} }

// Ints returns the components as ints, the form gofpdf color setters take.
func (c RGB) Ints() (int, int, int) { return int(c.R), int(c.G), int(c.B) }

// ParseHex parses "#RRGGBB" or "RRGGBB"; anything else yields fallback.
func ParseHex(s string, fallback RGB) RGB {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

func mustHex(s string) RGB {
	return ParseHex(s, RGB{})
}
