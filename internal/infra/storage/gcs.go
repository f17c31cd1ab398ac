package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
)

// GCS writes files as objects under Prefix in Bucket.
type GCS struct {
	client *gcs.Client
	bucket *gcs.BucketHandle
	name   string
	prefix string
	log    *slog.Logger
}

func NewGCS(ctx context.Context, bucket, prefix string, log *slog.Logger) (*GCS, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("storage: gcs client: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &GCS{
		client: client,
		bucket: client.Bucket(bucket),
		name:   bucket,
		prefix: strings.Trim(prefix, "/"),
		log:    log,
	}, nil
}

func (g *GCS) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	object := name
	if g.prefix != "" {
		object = path.Join(g.prefix, name)
	}

	w := g.bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		g.log.Error("gcs write failed", "object", object, "error", err)
		return "", fmt.Errorf("storage: write gs://%s/%s: %w", g.name, object, err)
	}
	// The object only exists once Close succeeds.
	if err := w.Close(); err != nil {
		g.log.Error("gcs finalize failed", "object", object, "error", err)
		return "", fmt.Errorf("storage: finalize gs://%s/%s: %w", g.name, object, err)
	}
	return "gs://" + g.name + "/" + object, nil
}

func (g *GCS) Close() error { return g.client.Close() }
