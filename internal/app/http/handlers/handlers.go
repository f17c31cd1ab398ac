package handlers

import (
	"context"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"mensalizou/go_backend/internal/app/config"
	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/jobs"
)

// Enqueuer hands share requests to the background worker.
type Enqueuer interface {
	EnqueueShare(ctx context.Context, p jobs.SharePayload) (string, error)
}

// Deps are the collaborators of the handlers. Quotes, Sender and Jobs are
// optional; the endpoints needing a missing one answer 503.
type Deps struct {
	Docs   *docgen.Service
	Quotes jobs.Loader
	Sender docgen.Sender
	Jobs   Enqueuer
	Logger *slog.Logger
}

type Handlers struct {
	Cfg      config.Config
	docs     *docgen.Service
	quotes   jobs.Loader
	sender   docgen.Sender
	jobs     Enqueuer
	validate *validator.Validate
	log      *slog.Logger
}

func New(cfg config.Config, d Deps) *Handlers {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Handlers{
		Cfg:      cfg,
		docs:     d.Docs,
		quotes:   d.Quotes,
		sender:   d.Sender,
		jobs:     d.Jobs,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

func (h *Handlers) assets() company.Assets {
	return company.Assets{
		MediaRoot:   h.Cfg.MediaRoot,
		DefaultLogo: h.Cfg.DefaultLogoPath,
		FontDir:     h.Cfg.FontDir,
	}
}
