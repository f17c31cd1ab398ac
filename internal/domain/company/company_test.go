package company

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mensalizou/go_backend/internal/domain/quote/render"
)

func TestRenderContext(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := Company{
		Name:      "Mundo Kids",
		City:      "Campinas",
		Instagram: "@mundokids",
		Primary:   "#112233",
		Logo:      "empresas/logos/mk.png",
	}
	rc := c.RenderContext(Assets{MediaRoot: "/srv/media", DefaultLogo: "/etc/logo.png", FontDir: "/fonts"}, now, nil)

	assert.Equal(t, render.Theme{Primary: "#112233", Secondary: "#4ECDC4", Accent: "#FF6B6B"}, rc.Theme)
	assert.Equal(t, render.Brand{Name: "Mundo Kids", City: "Campinas", Instagram: "@mundokids"}, rc.Brand)
	assert.Equal(t, filepath.Join("/srv/media", "empresas", "logos", "mk.png"), rc.LogoPath)
	assert.Equal(t, "/fonts", rc.FontDir)
	assert.Equal(t, now, rc.Clock())
}

func TestLogoPath(t *testing.T) {
	a := Assets{MediaRoot: "/srv/media", DefaultLogo: "/etc/logo.png"}
	assert.Equal(t, "/etc/logo.png", Company{}.logoPath(a))
	assert.Equal(t, "/abs/logo.png", Company{Logo: "/abs/logo.png"}.logoPath(a))
	assert.Equal(t, "rel.png", Company{Logo: "rel.png"}.logoPath(Assets{}))
}
