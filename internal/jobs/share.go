package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/infra/db/repository"
)

// Loader reads the records a share needs.
type Loader interface {
	Quote(ctx context.Context, companyID, quoteID int64) (quote.Quote, error)
	Company(ctx context.Context, companyID int64) (company.Company, error)
}

// ShareJob handles TaskQuoteShare.
type ShareJob struct {
	loader  Loader
	service *docgen.Service
	sender  docgen.Sender
	assets  company.Assets
	width   int
	logger  *slog.Logger
}

type ShareJobConfig struct {
	Loader  Loader
	Service *docgen.Service
	Sender  docgen.Sender
	Assets  company.Assets
	// ImageWidth overrides the default image width when set.
	ImageWidth int
	Logger     *slog.Logger
}

func NewShareJob(cfg ShareJobConfig) *ShareJob {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ShareJob{
		loader:  cfg.Loader,
		service: cfg.Service,
		sender:  cfg.Sender,
		assets:  cfg.Assets,
		width:   cfg.ImageWidth,
		logger:  logger,
	}
}

// Handle renders and sends one quote. Missing records and bad payloads are
// not retried.
func (j *ShareJob) Handle(ctx context.Context, t *asynq.Task) error {
	p, err := ParseSharePayload(t)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	format, err := raster.ParseFormat(p.Format)
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	logger := j.logger.With(slog.String("job", TaskQuoteShare), slog.String("request_id", p.RequestID), slog.Int64("quote_id", p.QuoteID))

	q, err := j.loader.Quote(ctx, p.CompanyID, p.QuoteID)
	if err != nil {
		return skipIfMissing(err)
	}
	c, err := j.loader.Company(ctx, p.CompanyID)
	if err != nil {
		return skipIfMissing(err)
	}

	req := docgen.Request{
		Quote:   q,
		Context: c.RenderContext(j.assets, time.Now(), logger),
		Image:   raster.Options{Width: j.width, Format: format},
	}
	out, err := j.service.Share(ctx, req, p.ChatID, j.sender)
	if err != nil {
		logger.Error("share quote", slog.Any("error", err))
		return err
	}
	if out.ImageErr != nil {
		logger.Warn("quote shared without image", slog.Any("error", out.ImageErr))
	}
	logger.Info("quote shared", slog.String("file", out.PDF.Name), slog.Int("pages", out.Pages))
	return nil
}

func skipIfMissing(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	return err
}
