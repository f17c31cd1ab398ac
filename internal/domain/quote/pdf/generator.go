package pdf

import (
	"bytes"
	"io"

	"mensalizou/go_backend/internal/domain/quote"
	"mensalizou/go_backend/internal/domain/quote/render"
)

const ContentType = "application/pdf"

type Generator interface {
	Generate(rc render.Context, doc quote.Document, w io.Writer) error
}

func GenerateBytes(g Generator, rc render.Context, doc quote.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.Generate(rc, doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
