package gofpdf

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/pdf"
	"mensalizou/go_backend/internal/domain/quote/render"
)

func testContext() render.Context {
	return render.Context{
		Theme:  render.DefaultTheme(),
		Brand:  render.Brand{Name: "Mundo Kids", City: "Campinas", Instagram: "@mundokids", WhatsApp: "(19) 99999-0000"},
		Now:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func testDocument(items int, status quote.Status) quote.Document {
	date := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	q := quote.Quote{
		Client:          quote.Client{Name: "Ana Souza", Phone: "(19) 98888-1111"},
		Address:         "Rua das Flores 120, Centro, Campinas, SP",
		EventDate:       &date,
		EventTime:       "15:00",
		GeneralDiscount: decimal.NewFromInt(5),
		AdditionalValue: decimal.NewFromInt(40),
		AmountPaid:      decimal.NewFromInt(100),
		Status:          status,
		CreatedAt:       time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	for i := range items {
		q.Items = append(q.Items, quote.LineItem{
			Quantity: i%3 + 1,
			Item: quote.CatalogItem{
				Description: fmt.Sprintf("Brinquedo %02d", i),
				UnitPrice:   decimal.NewFromInt(int64(50 + i)),
			},
		})
	}
	return quote.Build(q)
}

func generate(t *testing.T, g *Generator, rc render.Context, doc quote.Document) []byte {
	t.Helper()
	data, err := pdf.GenerateBytes(g, rc, doc)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	return data
}

func pageCount(t *testing.T, data []byte) int {
	t.Helper()
	api.DisableConfigDir()
	n, err := api.PageCount(bytes.NewReader(data), model.NewDefaultConfiguration())
	require.NoError(t, err)
	return n
}

func TestGenerateSinglePageQuote(t *testing.T) {
	data := generate(t, New(), testContext(), testDocument(3, quote.StatusPending))
	assert.Equal(t, 1, pageCount(t, data))
}

func TestGenerateRepeatsTableHeaderOnEveryTablePage(t *testing.T) {
	g := &Generator{}
	data := generate(t, g, testContext(), testDocument(70, quote.StatusPending))

	pages := pageCount(t, data)
	headers := strings.Count(string(data), "(QTD) Tj")
	assert.Greater(t, headers, 1)
	assert.LessOrEqual(t, headers, pages)
	assert.Equal(t, headers, strings.Count(string(data), "(VALOR UNIT.) Tj"))
}

func TestGenerateNotesContinueWithoutHeader(t *testing.T) {
	doc := testDocument(2, quote.StatusPending)
	var notes []string
	for i := range 250 {
		notes = append(notes, fmt.Sprintf("linha de observacao %d", i))
	}
	doc.Notes = strings.Join(notes, "\n")

	data := generate(t, &Generator{}, testContext(), doc)
	assert.Greater(t, pageCount(t, data), 1)
	assert.Equal(t, 1, strings.Count(string(data), "(QTD) Tj"))
	assert.Contains(t, string(data), "(linha de observacao 249) Tj")
}

func TestGenerateIsDeterministic(t *testing.T) {
	doc := testDocument(12, quote.StatusPending)
	first := generate(t, New(), testContext(), doc)
	second := generate(t, New(), testContext(), doc)
	assert.Equal(t, first, second)
}

func TestGenerateConfirmationVariant(t *testing.T) {
	data := generate(t, &Generator{}, testContext(), testDocument(4, quote.StatusConfirmed))
	s := string(data)
	assert.Contains(t, s, "(BRINQUEDO) Tj")
	assert.Contains(t, s, "(3 horas) Tj")
	assert.NotContains(t, s, "(VALOR UNIT.) Tj")
	assert.Contains(t, s, "Confirma")
	assert.Contains(t, s, "#20250601) Tj")
}

func TestGenerateDatesQuoteWithRenderClock(t *testing.T) {
	rc := testContext()
	rc.Now = time.Date(2025, 7, 10, 8, 0, 0, 0, time.UTC)

	s := string(generate(t, &Generator{}, rc, testDocument(2, quote.StatusPending)))
	assert.Contains(t, s, "(Data: 10/07/2025) Tj")
	assert.NotContains(t, s, "01/06/2025")

	s = string(generate(t, &Generator{}, rc, testDocument(2, quote.StatusConfirmed)))
	assert.Contains(t, s, "01/06/2025) Tj")
	assert.Contains(t, s, "#20250710) Tj")
}

func TestGenerateConfirmationRepeatsHeader(t *testing.T) {
	data := generate(t, &Generator{}, testContext(), testDocument(60, quote.StatusConfirmed))
	headers := strings.Count(string(data), "(BRINQUEDO) Tj")
	assert.Greater(t, headers, 1)
	assert.LessOrEqual(t, headers, pageCount(t, data))
}

func TestGenerateSwallowsLogoProblems(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o600))

	for _, path := range []string{filepath.Join(dir, "missing.png"), corrupt, dir} {
		rc := testContext()
		rc.LogoPath = path
		data := generate(t, New(), rc, testDocument(2, quote.StatusPending))
		assert.NotContains(t, string(data), "/Subtype /Image", path)
	}
}

func TestGenerateDrawsLogo(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for x := range 40 {
		for y := range 20 {
			img.Set(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "logo.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	rc := testContext()
	rc.LogoPath = path
	data := generate(t, New(), rc, testDocument(2, quote.StatusPending))
	assert.Contains(t, string(data), "/Subtype /Image")
}

func TestGenerateFallsBackToCoreFonts(t *testing.T) {
	rc := testContext()
	rc.FontDir = t.TempDir()
	data := generate(t, &Generator{}, rc, testDocument(2, quote.StatusPending))
	assert.Contains(t, string(data), "/BaseFont /Helvetica")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestGeneratePropagatesWriteFailure(t *testing.T) {
	err := New().Generate(testContext(), testDocument(2, quote.StatusPending), failingWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
