package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"mensalizou/go_backend/internal/app/config"
	apphttp "mensalizou/go_backend/internal/app/http"
	"mensalizou/go_backend/internal/app/http/handlers"
	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/domain/quote/pdf/gofpdf"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/infra/db/mysql"
	"mensalizou/go_backend/internal/infra/db/postgres"
	"mensalizou/go_backend/internal/infra/db/repository"
	"mensalizou/go_backend/internal/infra/storage"
	"mensalizou/go_backend/internal/infra/telegram"
	"mensalizou/go_backend/internal/jobs"
)

// Components are the collaborators shared by the server and the worker.
// Quotes and Sender stay nil when their configuration is missing.
type Components struct {
	Docs   *docgen.Service
	Quotes *repository.Repository
	Sender *telegram.Client

	closers []func()
}

type sqlDB interface {
	SQL() *sql.DB
	Close()
}

// Build opens the database, the output store and the Telegram client
// according to cfg.
func Build(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{}

	if cfg.DatabaseURL != "" {
		dialect, err := repository.ParseDialect(cfg.DBDriver)
		if err != nil {
			return nil, err
		}
		var db sqlDB
		switch dialect {
		case repository.MySQL:
			db, err = mysql.New(ctx, cfg.DatabaseURL)
		default:
			db, err = postgres.New(ctx, cfg.DatabaseURL)
		}
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		c.closers = append(c.closers, db.Close)
		c.Quotes = repository.New(db.SQL(), dialect)
	}

	var store docgen.Store
	if cfg.GCSBucket != "" {
		g, err := storage.NewGCS(ctx, cfg.GCSBucket, cfg.GCSPrefix, logger)
		if err != nil {
			c.Close()
			return nil, err
		}
		c.closers = append(c.closers, func() { _ = g.Close() })
		store = g
	} else {
		l, err := storage.NewLocal(cfg.OutputDir)
		if err != nil {
			c.Close()
			return nil, err
		}
		store = l
	}

	if cfg.TelegramBotToken != "" {
		c.Sender = telegram.New(cfg.TelegramBaseURL, cfg.TelegramBotToken, logger)
	}

	c.Docs = docgen.New(gofpdf.New(), raster.New(), store, logger)
	return c, nil
}

func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// deps turns the optional collaborators into interface values, leaving
// them nil rather than typed nils.
func (c *Components) deps(logger *slog.Logger) handlers.Deps {
	d := handlers.Deps{Docs: c.Docs, Logger: logger}
	if c.Quotes != nil {
		d.Quotes = c.Quotes
	}
	if c.Sender != nil {
		d.Sender = c.Sender
	}
	return d
}

func assets(cfg config.Config) company.Assets {
	return company.Assets{MediaRoot: cfg.MediaRoot, DefaultLogo: cfg.DefaultLogoPath, FontDir: cfg.FontDir}
}

// Run serves the HTTP API until SIGINT or SIGTERM.
func Run() {
	cfg := config.MustLoad()
	logger := NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c, err := Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	deps := c.deps(logger)
	if cfg.JobsEnabled() {
		client := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
		defer client.Close()
		deps.Jobs = client
	}

	router := apphttp.NewRouter(cfg, handlers.New(cfg, deps), logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", slog.String("addr", cfg.HTTPAddr),
			slog.Bool("database", c.Quotes != nil),
			slog.Bool("telegram", c.Sender != nil),
			slog.Bool("jobs", deps.Jobs != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// RunWorker processes queued shares until SIGINT or SIGTERM. It needs the
// database, Redis and a Telegram token.
func RunWorker() {
	cfg := config.MustLoad()
	logger := NewLogger(cfg, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !cfg.JobsEnabled() || cfg.DatabaseURL == "" || cfg.TelegramBotToken == "" {
		logger.Error("worker needs REDIS_ADDR, DATABASE_URL and TELEGRAM_BOT_TOKEN")
		os.Exit(1)
	}

	c, err := Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	share := jobs.NewShareJob(jobs.ShareJobConfig{
		Loader:     c.Quotes,
		Service:    c.Docs,
		Sender:     c.Sender,
		Assets:     assets(cfg),
		ImageWidth: cfg.ImageWidth,
		Logger:     logger,
	})

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskQuoteShare, Handler: share.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
