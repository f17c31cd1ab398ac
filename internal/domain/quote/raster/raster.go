// Package raster renders quote documents as a single tall image sized for
// messaging apps.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"runtime/debug"
	"strings"

	"golang.org/x/image/draw"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/render"
)

const (
	DefaultWidth = 1080
	minWidth     = 320

	defaultJPEGQuality             = 90
	defaultConfirmationJPEGQuality = 95
)

var ErrInvalidOptions = errors.New("raster: invalid options")

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", ErrInvalidOptions, s)
}

func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

func (f Format) ContentType() string {
	if f == FormatJPEG {
		return "image/jpeg"
	}
	return "image/png"
}

type Options struct {
	Width       int
	Format      Format
	JPEGQuality int
}

func (o Options) normalize(v render.Variant) (Options, error) {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Width < minWidth {
		return o, fmt.Errorf("%w: width %d below %d", ErrInvalidOptions, o.Width, minWidth)
	}
	f, err := ParseFormat(string(o.Format))
	if err != nil {
		return o, err
	}
	o.Format = f
	if o.JPEGQuality <= 0 {
		o.JPEGQuality = defaultJPEGQuality
		if v == render.VariantConfirmation {
			o.JPEGQuality = defaultConfirmationJPEGQuality
		}
	}
	o.JPEGQuality = min(o.JPEGQuality, 100)
	return o, nil
}

type Generator struct {
	// FontDirs are searched after render.Context.FontDir.
	FontDirs []string
}

func New() *Generator {
	return &Generator{FontDirs: []string{
		"/usr/share/fonts/truetype/dejavu",
		"/usr/share/fonts/dejavu",
		"/usr/share/fonts/TTF",
		"/Library/Fonts",
		`C:\Windows\Fonts`,
	}}
}

// Render draws doc in the variant its status selects.
func (g *Generator) Render(rc render.Context, doc quote.Document, opts Options) (image.Image, error) {
	return g.render(rc, doc, opts, doc.Variant())
}

// Generate renders doc and encodes it to w.
func (g *Generator) Generate(rc render.Context, doc quote.Document, opts Options, w io.Writer) error {
	img, err := g.Render(rc, doc, opts)
	if err != nil {
		return err
	}
	opts, _ = opts.normalize(doc.Variant())
	return Encode(w, img, opts)
}

// Result is the outcome of a confirmation render. A failed render carries
// the reason and no image.
type Result struct {
	Image   image.Image
	Options Options
	Err     error
}

func (r Result) OK() bool { return r.Err == nil && r.Image != nil }

// RenderConfirmation never fails the caller: problems come back in the
// Result and are logged.
func (g *Generator) RenderConfirmation(rc render.Context, doc quote.Document, opts Options) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: fmt.Errorf("raster: confirmation render panic: %v", p)}
			rc.Log().Error("confirmation image failed", "error", res.Err, "stack", string(debug.Stack()))
		}
	}()

	norm, err := opts.normalize(render.VariantConfirmation)
	if err != nil {
		rc.Log().Error("confirmation image failed", "error", err)
		return Result{Err: err}
	}
	img, err := g.render(rc, doc, norm, render.VariantConfirmation)
	if err != nil {
		rc.Log().Error("confirmation image failed", "error", err)
		return Result{Err: err}
	}
	return Result{Image: img, Options: norm}
}

func (g *Generator) render(rc render.Context, doc quote.Document, opts Options, v render.Variant) (image.Image, error) {
	opts, err := opts.normalize(v)
	if err != nil {
		return nil, err
	}
	if doc.CreationDate.IsZero() {
		doc.CreationDate = rc.Clock()
	}
	m := newMetrics(opts.Width)
	f := g.loadFaces(rc, m.scale)
	defer f.close()

	p := measure(doc, v, m, f, rc.Clock())
	c := newCanvas(rc, p)
	c.paint(doc)
	return c.img.SubImage(image.Rect(0, 0, p.m.width, p.usedHeight)), nil
}

// Encode writes img in the requested format. JPEG output is flattened onto
// white first.
func Encode(w io.Writer, img image.Image, opts Options) error {
	switch opts.Format {
	case FormatJPEG:
		q := opts.JPEGQuality
		if q <= 0 {
			q = defaultJPEGQuality
		}
		if err := jpeg.Encode(w, flatten(img), &jpeg.Options{Quality: min(q, 100)}); err != nil {
			return fmt.Errorf("raster: encode jpeg: %w", err)
		}
	default:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("raster: encode png: %w", err)
		}
	}
	return nil
}

func flatten(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}
