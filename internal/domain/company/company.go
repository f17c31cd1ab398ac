// Package company holds the tenant fields that brand its documents.
package company

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"mensalizou/go_backend/internal/domain/quote/render"
)

type Company struct {
	ID        int64
	Name      string
	City      string
	Instagram string
	WhatsApp  string
	// Logo is the stored upload path, relative to the media root.
	Logo      string
	Primary   string
	Secondary string
	Accent    string
}

// Assets locates the files a render needs outside the database.
type Assets struct {
	MediaRoot   string
	DefaultLogo string
	FontDir     string
}

// RenderContext builds the per-render styling for c. Empty colours keep
// the defaults; a company without a logo gets the default one.
func (c Company) RenderContext(a Assets, now time.Time, log *slog.Logger) render.Context {
	theme := render.DefaultTheme()
	if v := strings.TrimSpace(c.Primary); v != "" {
		theme.Primary = v
	}
	if v := strings.TrimSpace(c.Secondary); v != "" {
		theme.Secondary = v
	}
	if v := strings.TrimSpace(c.Accent); v != "" {
		theme.Accent = v
	}

	return render.Context{
		Theme: theme,
		Brand: render.Brand{
			Name:      c.Name,
			City:      c.City,
			Instagram: c.Instagram,
			WhatsApp:  c.WhatsApp,
		},
		LogoPath: c.logoPath(a),
		FontDir:  a.FontDir,
		Now:      now,
		Logger:   log,
	}
}

func (c Company) logoPath(a Assets) string {
	logo := strings.TrimSpace(c.Logo)
	switch {
	case logo == "":
		return a.DefaultLogo
	case filepath.IsAbs(logo) || a.MediaRoot == "":
		return logo
	}
	return filepath.Join(a.MediaRoot, filepath.FromSlash(logo))
}
