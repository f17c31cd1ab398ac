// Command quotegen renders a quote described in a JSON file into a PDF and,
// optionally, an image, writing both to a directory.
//
//	quotegen -in quote.json -out ./gerados -image png -company "Mundo Kids"
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"

	"mensalizou/go_backend/internal/app"
	"mensalizou/go_backend/internal/app/config"
	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/domain/quote/pdf/gofpdf"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/infra/storage"
)

type options struct {
	in, out    string
	image      string
	width      int
	logLevel   string
	brand      company.Company
	logo, font string
}

func main() {
	var o options
	flag.StringVar(&o.in, "in", "-", "quote JSON file, - for stdin")
	flag.StringVar(&o.out, "out", "media/orcamentos/gerados", "output directory")
	flag.StringVar(&o.image, "image", "", "also render an image: png or jpeg")
	flag.IntVar(&o.width, "width", raster.DefaultWidth, "image width in pixels")
	flag.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	flag.StringVar(&o.brand.Name, "company", "", "company name")
	flag.StringVar(&o.brand.City, "city", "", "company city")
	flag.StringVar(&o.brand.Instagram, "instagram", "", "instagram handle")
	flag.StringVar(&o.brand.WhatsApp, "whatsapp", "", "whatsapp number")
	flag.StringVar(&o.brand.Primary, "primary", "", "primary colour, #RRGGBB")
	flag.StringVar(&o.brand.Secondary, "secondary", "", "secondary colour, #RRGGBB")
	flag.StringVar(&o.brand.Accent, "accent", "", "accent colour, #RRGGBB")
	flag.StringVar(&o.logo, "logo", "", "logo image path")
	flag.StringVar(&o.font, "fonts", "", "directory with DejaVuSans.ttf")
	flag.Parse()

	logger := app.NewLogger(config.Config{LogLevel: o.logLevel}, os.Stderr)
	if err := run(context.Background(), o, logger); err != nil {
		logger.Error("quotegen failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, logger *slog.Logger) error {
	payload, err := readPayload(o.in)
	if err != nil {
		return err
	}
	now := time.Now()
	q, err := payload.Quote(now)
	if err != nil {
		return err
	}

	req := docgen.Request{
		Quote:   q,
		Context: o.brand.RenderContext(company.Assets{DefaultLogo: o.logo, FontDir: o.font}, now, logger),
	}
	if o.image != "" {
		f, err := raster.ParseFormat(o.image)
		if err != nil {
			return err
		}
		req.WithImage = true
		req.Image = raster.Options{Width: o.width, Format: f}
	}

	store, err := storage.NewLocal(o.out)
	if err != nil {
		return err
	}
	out, err := docgen.New(gofpdf.New(), raster.New(), store, logger).Generate(ctx, req)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%d pages)\n", out.PDF.Location, out.Pages)
	if out.Image != nil {
		fmt.Println(out.Image.Location)
	} else if out.ImageErr != nil {
		logger.Warn("image not rendered", slog.Any("error", out.ImageErr))
	}
	return nil
}

func readPayload(path string) (quote.Payload, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return quote.Payload{}, err
		}
		defer f.Close()
		r = f
	}

	var p quote.Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return quote.Payload{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(p); err != nil {
		return quote.Payload{}, fmt.Errorf("invalid quote: %w", err)
	}
	return p, nil
}
