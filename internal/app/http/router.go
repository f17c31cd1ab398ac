package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"mensalizou/go_backend/internal/app/config"
	"mensalizou/go_backend/internal/app/http/handlers"
	"mensalizou/go_backend/internal/app/http/middleware"
)

func NewRouter(cfg config.Config, h *handlers.Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "no-referrer",
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r.Use(chimw.RealIP)
	r.Use(chimw.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(chimw.Recoverer)
	r.Use(secureMiddleware.Handler)
	r.Use(middleware.CORS(cfg.CORSAllowOrigin))
	r.Use(chimw.Timeout(timeout))

	r.Get("/health", h.Health)

	limit := cfg.RenderRateLimit
	if limit <= 0 {
		limit = 30
	}

	r.Route("/v1/quotes", func(r chi.Router) {
		r.Use(httprate.Limit(limit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))

		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/render", h.RenderQuote)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CompanyJWT([]byte(cfg.JWTSecret)))

			r.Get("/{quoteID}/pdf", h.QuotePDF)
			r.Get("/{quoteID}/image", h.QuoteImage)
			r.Post("/{quoteID}/share", h.ShareQuote)
		})
	})

	return r
}
