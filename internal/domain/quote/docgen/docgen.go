// Package docgen turns a quote into its output files: the PDF, always, and
// the shareable image when asked for.
package docgen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"golang.org/x/sync/errgroup"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/pdf"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/domain/quote/render"
)

var (
	ErrRender = errors.New("docgen: render failed")
	ErrStore  = errors.New("docgen: store failed")
	ErrShare  = errors.New("docgen: share failed")
)

func init() {
	api.DisableConfigDir()
}

// Store persists a generated file and returns where it landed.
type Store interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Sender delivers files to a chat.
type Sender interface {
	SendDocument(ctx context.Context, chatID, filename, contentType string, data []byte) error
	SendPhoto(ctx context.Context, chatID, filename, contentType string, data []byte) error
}

type Request struct {
	Quote   quote.Quote
	Context render.Context

	WithImage bool
	Image     raster.Options
}

type File struct {
	Name        string
	ContentType string
	Data        []byte
	// Location is set once the file has been stored.
	Location string
}

type Output struct {
	Base  string
	PDF   File
	Pages int

	// Image is nil when no image was requested or rendering it failed, in
	// which case ImageErr says why.
	Image    *File
	ImageErr error
}

type Service struct {
	pdf    pdf.Generator
	images *raster.Generator
	store  Store
	log    *slog.Logger
}

func New(pdfGen pdf.Generator, images *raster.Generator, store Store, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{pdf: pdfGen, images: images, store: store, log: log}
}

// Render builds the document and renders the requested files in memory.
func (s *Service) Render(ctx context.Context, req Request) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	rc := req.Context
	if rc.Logger == nil {
		rc.Logger = s.log
	}
	doc := quote.Build(req.Quote)
	if doc.CreationDate.IsZero() {
		doc.CreationDate = rc.Clock()
	}

	out := Output{Base: FileBase(doc.Client.Name, rc.Clock())}
	log := s.log.With("quote_id", req.Quote.ID, "variant", doc.Variant())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		data, err := pdf.GenerateBytes(s.pdf, rc, doc)
		if err != nil {
			return fmt.Errorf("%w: pdf: %w", ErrRender, err)
		}
		out.PDF = File{Name: out.Base + ".pdf", ContentType: pdf.ContentType, Data: data}
		return nil
	})
	if req.WithImage && s.images != nil {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := s.renderImage(rc, doc, req.Image, out.Base)
			if err != nil {
				log.Warn("quote image skipped", "error", err)
				out.ImageErr = err
				return nil
			}
			out.Image = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Output{}, err
	}

	n, err := api.PageCount(bytes.NewReader(out.PDF.Data), model.NewDefaultConfiguration())
	if err != nil {
		log.Warn("quote pdf page count failed", "error", err)
	}
	out.Pages = n
	log.Debug("quote rendered", "base", out.Base, "pages", out.Pages, "image", out.Image != nil)
	return out, nil
}

func (s *Service) renderImage(rc render.Context, doc quote.Document, opts raster.Options, base string) (*File, error) {
	var buf bytes.Buffer
	var format raster.Format

	if doc.Variant() == render.VariantConfirmation {
		res := s.images.RenderConfirmation(rc, doc, opts)
		if !res.OK() {
			return nil, res.Err
		}
		if err := raster.Encode(&buf, res.Image, res.Options); err != nil {
			return nil, err
		}
		format = res.Options.Format
	} else {
		f, err := raster.ParseFormat(string(opts.Format))
		if err != nil {
			return nil, err
		}
		if err := s.images.Generate(rc, doc, opts, &buf); err != nil {
			return nil, err
		}
		format = f
	}
	return &File{Name: base + format.Ext(), ContentType: format.ContentType(), Data: buf.Bytes()}, nil
}

// Generate renders and stores every produced file. A store failure fails
// the call even when the PDF was already written.
func (s *Service) Generate(ctx context.Context, req Request) (Output, error) {
	out, err := s.Render(ctx, req)
	if err != nil {
		return Output{}, err
	}
	if s.store == nil {
		return Output{}, fmt.Errorf("%w: no store configured", ErrStore)
	}

	loc, err := s.store.Put(ctx, out.PDF.Name, out.PDF.ContentType, out.PDF.Data)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %s: %w", ErrStore, out.PDF.Name, err)
	}
	out.PDF.Location = loc

	if out.Image != nil {
		loc, err := s.store.Put(ctx, out.Image.Name, out.Image.ContentType, out.Image.Data)
		if err != nil {
			return Output{}, fmt.Errorf("%w: %s: %w", ErrStore, out.Image.Name, err)
		}
		out.Image.Location = loc
	}
	s.log.Info("quote files stored", "quote_id", req.Quote.ID, "pdf", out.PDF.Location, "pages", out.Pages)
	return out, nil
}

// Share renders the quote with its image and sends both to chatID. The PDF
// must arrive; a photo the chat rejects is retried as a plain document and
// after that only recorded in ImageErr.
func (s *Service) Share(ctx context.Context, req Request, chatID string, sender Sender) (Output, error) {
	req.WithImage = true
	out, err := s.Render(ctx, req)
	if err != nil {
		return Output{}, err
	}

	if err := sender.SendDocument(ctx, chatID, out.PDF.Name, out.PDF.ContentType, out.PDF.Data); err != nil {
		return Output{}, fmt.Errorf("%w: document: %w", ErrShare, err)
	}
	if out.Image == nil {
		return out, nil
	}

	img := out.Image
	if err := sender.SendPhoto(ctx, chatID, img.Name, img.ContentType, img.Data); err != nil {
		s.log.Warn("quote photo rejected, sending as document", "chat_id", chatID, "error", err)
		if err := sender.SendDocument(ctx, chatID, img.Name, img.ContentType, img.Data); err != nil {
			out.ImageErr = fmt.Errorf("%w: image: %w", ErrShare, err)
			s.log.Error("quote image not shared", "chat_id", chatID, "error", err)
		}
	}
	return out, nil
}
