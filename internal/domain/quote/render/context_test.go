package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	fallback := RGB{1, 2, 3}
	assert.Equal(t, RGB{0x24, 0x63, 0xEB}, ParseHex("#2463EB", fallback))
	assert.Equal(t, RGB{0x4E, 0xCD, 0xC4}, ParseHex("4ecdc4", fallback))
	assert.Equal(t, fallback, ParseHex("#FFF", fallback))
	assert.Equal(t, fallback, ParseHex("#GGGGGG", fallback))
	assert.Equal(t, fallback, ParseHex("", fallback))
}

func TestPaletteFallsBackToDefaults(t *testing.T) {
	p := Context{Theme: Theme{Primary: "not-a-color", Secondary: "#000000"}}.Palette()
	assert.Equal(t, RGB{0x24, 0x63, 0xEB}, p.Primary)
	assert.Equal(t, RGB{}, p.Secondary)
	assert.Equal(t, RGB{0xFF, 0x6B, 0x6B}, p.Accent)
	assert.Equal(t, RGB{0x10, 0xB9, 0x81}, p.Success)
}

func TestBrandLines(t *testing.T) {
	b := Brand{Name: "Mundo Kids", City: "Campinas", Instagram: "@mundokids", WhatsApp: "(19) 99999-0000"}
	assert.Equal(t, "Instagram: @mundokids   |   WhatsApp: (19) 99999-0000", b.ContactLine())
	assert.Equal(t, "Mundo Kids • Campinas", b.Caption())
	assert.Equal(t, "Mundo Kids • Campinas • Confirmação #20250102", b.Caption("Confirmação #20250102"))

	empty := Brand{City: "Campinas"}
	assert.Empty(t, empty.ContactLine())
	assert.Equal(t, "Campinas", empty.Caption())
}

func TestContextDefaults(t *testing.T) {
	var c Context
	require.NotNil(t, c.Log())
	assert.False(t, c.Clock().IsZero())

	fixed := time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)
	c.Now = fixed
	assert.Equal(t, fixed, c.Clock())
}
