package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/docgen"
	"mensalizou/go_backend/internal/domain/quote/pdf"
	"mensalizou/go_backend/internal/domain/quote/raster"
	"mensalizou/go_backend/internal/infra/db/repository"
)

const maxBodyBytes = 1 << 20

func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			http.Error(w, fmt.Sprintf("invalid field %s: %s", verrs[0].Namespace(), verrs[0].Tag()), http.StatusBadRequest)
			return false
		}
		http.Error(w, "bad request", http.StatusBadRequest)
		return false
	}
	return true
}

// fail maps a generation error to a status. Details stay in the log.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, quote.ErrInvalidAmount), errors.Is(err, raster.ErrInvalidOptions):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	default:
		h.log.ErrorContext(r.Context(), "document generation failed", "path", r.URL.Path, "error", err)
		http.Error(w, "failed to generate document", http.StatusInternalServerError)
	}
}

// outputKind is what a render request asks back: the PDF or an image format.
type outputKind struct {
	image  bool
	format raster.Format
}

func (h *Handlers) parseKind(r *http.Request, def string) (outputKind, error) {
	v := r.URL.Query().Get("format")
	if v == "" {
		v = def
	}
	if v == "pdf" {
		return outputKind{}, nil
	}
	f, err := raster.ParseFormat(v)
	if err != nil {
		return outputKind{}, err
	}
	return outputKind{image: true, format: f}, nil
}

func (h *Handlers) imageOptions(k outputKind) raster.Options {
	return raster.Options{Width: h.Cfg.ImageWidth, Format: k.format}
}

func (h *Handlers) writeOutput(w http.ResponseWriter, r *http.Request, out docgen.Output, k outputKind) {
	file := out.PDF
	if k.image {
		if out.Image == nil {
			err := out.ImageErr
			if err == nil {
				err = errors.New("image not produced: no image renderer")
			} else {
				err = fmt.Errorf("image not produced: %w", err)
			}
			h.fail(w, r, err)
			return
		}
		file = *out.Image
	} else {
		w.Header().Set("X-Page-Count", strconv.Itoa(out.Pages))
	}
	if file.Location != "" {
		w.Header().Set("X-File-Location", file.Location)
	}
	if file.ContentType == "" {
		file.ContentType = pdf.ContentType
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
