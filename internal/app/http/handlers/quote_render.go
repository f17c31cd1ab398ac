package handlers

import (
	"net/http"
	"time"

	"mensalizou/go_backend/internal/domain/company"
	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/docgen"
)

// RenderQuoteRequest is a complete quote plus the branding to render it
// with, for callers that keep their own records.
type RenderQuoteRequest struct {
	quote.Payload
	Company struct {
		Name           string `json:"name"`
		City           string `json:"city"`
		Instagram      string `json:"instagram"`
		WhatsApp       string `json:"whatsapp"`
		PrimaryColor   string `json:"primary_color" validate:"omitempty,hexcolor"`
		SecondaryColor string `json:"secondary_color" validate:"omitempty,hexcolor"`
		AccentColor    string `json:"accent_color" validate:"omitempty,hexcolor"`
	} `json:"company"`
}

// RenderQuote answers with the PDF, or the image when ?format=png|jpeg.
func (h *Handlers) RenderQuote(w http.ResponseWriter, r *http.Request) {
	kind, err := h.parseKind(r, "pdf")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req RenderQuoteRequest
	if !h.decode(w, r, &req) {
		return
	}

	now := time.Now()
	q, err := req.Quote(now)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	c := company.Company{
		Name:      req.Company.Name,
		City:      req.Company.City,
		Instagram: req.Company.Instagram,
		WhatsApp:  req.Company.WhatsApp,
		Primary:   req.Company.PrimaryColor,
		Secondary: req.Company.SecondaryColor,
		Accent:    req.Company.AccentColor,
	}

	out, err := h.docs.Render(r.Context(), docgen.Request{
		Quote:     q,
		Context:   c.RenderContext(h.assets(), now, h.log),
		WithImage: kind.image,
		Image:     h.imageOptions(kind),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.writeOutput(w, r, out, kind)
}
