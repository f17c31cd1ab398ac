package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"mensalizou/go_backend/internal/app/http/middleware"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/jobs"
)

// QuotePDF renders a stored quote of the caller's company.
func (h *Handlers) QuotePDF(w http.ResponseWriter, r *http.Request) {
	h.storedQuote(w, r, "pdf")
}

// QuoteImage renders a stored quote as an image, png unless ?format=jpeg.
func (h *Handlers) QuoteImage(w http.ResponseWriter, r *http.Request) {
	def := h.Cfg.ImageFormat
	if def == "" || def == "pdf" {
		def = "png"
	}
	h.storedQuote(w, r, def)
}

// storedQuote keeps the files in the output store when ?store=true.
func (h *Handlers) storedQuote(w http.ResponseWriter, r *http.Request, defFormat string) {
	kind, err := h.parseKind(r, defFormat)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req, ok := h.loadRequest(w, r)
	if !ok {
		return
	}
	req.WithImage = kind.image
	req.Image = h.imageOptions(kind)

	render := h.docs.Render
	if store, _ := strconv.ParseBool(r.URL.Query().Get("store")); store {
		render = h.docs.Generate
	}
	out, err := render(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeOutput(w, r, out, kind)
}

// loadRequest reads the quote named in the URL, scoped to the token's
// company, together with that company's branding.
func (h *Handlers) loadRequest(w http.ResponseWriter, r *http.Request) (docgen.Request, bool) {
	if h.quotes == nil {
		http.Error(w, "quotes unavailable", http.StatusServiceUnavailable)
		return docgen.Request{}, false
	}
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return docgen.Request{}, false
	}
	quoteID, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil || quoteID <= 0 {
		http.Error(w, "bad quote id", http.StatusBadRequest)
		return docgen.Request{}, false
	}

	q, err := h.quotes.Quote(r.Context(), companyID, quoteID)
	if err != nil {
		h.fail(w, r, err)
		return docgen.Request{}, false
	}
	c, err := h.quotes.Company(r.Context(), companyID)
	if err != nil {
		h.fail(w, r, err)
		return docgen.Request{}, false
	}
	return docgen.Request{Quote: q, Context: c.RenderContext(h.assets(), time.Now(), h.log)}, true
}

type ShareQuoteRequest struct {
	ChatID string `json:"chat_id" validate:"required"`
	Format string `json:"format" validate:"omitempty,oneof=png jpeg jpg"`
	Async  bool   `json:"async"`
}

type shareResponse struct {
	TaskID string `json:"task_id,omitempty"`
	File   string `json:"file,omitempty"`
	Pages  int    `json:"pages,omitempty"`
	Image  bool   `json:"image"`
}

// ShareQuote sends a stored quote to a Telegram chat, or queues the send
// when async is set.
func (h *Handlers) ShareQuote(w http.ResponseWriter, r *http.Request) {
	var body ShareQuoteRequest
	if !h.decode(w, r, &body) {
		return
	}

	if body.Async {
		h.enqueueShare(w, r, body)
		return
	}
	if h.sender == nil {
		http.Error(w, "telegram unavailable", http.StatusServiceUnavailable)
		return
	}
	req, ok := h.loadRequest(w, r)
	if !ok {
		return
	}
	format, _ := raster.ParseFormat(body.Format)
	req.Image = h.imageOptions(outputKind{image: true, format: format})

	out, err := h.docs.Share(r.Context(), req, body.ChatID, h.sender)
	if err != nil {
		if errors.Is(err, docgen.ErrShare) {
			h.log.WarnContext(r.Context(), "share rejected", "chat_id", body.ChatID, "error", err)
			http.Error(w, "telegram rejected the document", http.StatusBadGateway)
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shareResponse{File: out.PDF.Name, Pages: out.Pages, Image: out.Image != nil && out.ImageErr == nil})
}

func (h *Handlers) enqueueShare(w http.ResponseWriter, r *http.Request, body ShareQuoteRequest) {
	if h.jobs == nil {
		http.Error(w, "jobs unavailable", http.StatusServiceUnavailable)
		return
	}
	companyID, ok := middleware.CompanyID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	quoteID, err := strconv.ParseInt(chi.URLParam(r, "quoteID"), 10, 64)
	if err != nil || quoteID <= 0 {
		http.Error(w, "bad quote id", http.StatusBadRequest)
		return
	}

	id, err := h.jobs.EnqueueShare(r.Context(), jobs.SharePayload{
		CompanyID: companyID,
		QuoteID:   quoteID,
		ChatID:    body.ChatID,
		Format:    body.Format,
	})
	if err != nil {
		h.log.ErrorContext(r.Context(), "enqueue share failed", "quote_id", quoteID, "error", err)
		http.Error(w, "failed to queue share", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, shareResponse{TaskID: id})
}
