// Package gcs moves Record Tables in and out of Google Cloud Storage, so
// the pipeline can extract from and load to gs:// URIs. It assumes
// Application Default Credentials are configured.
package gcs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/dvloznov/billing-etl/internal/etl"
	"github.com/dvloznov/billing-etl/internal/table"
)

// uploadTimeout bounds a single object upload.
const uploadTimeout = 2 * time.Minute

// ParseURI splits a "gs://bucket/path/to/object" URI into bucket and object.
func ParseURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("invalid GCS URI %q: missing gs:// scheme", uri)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid GCS URI %q: want gs://bucket/object", uri)
	}
	return parts[0], parts[1], nil
}

// Download fetches the object bytes at the given gs:// URI.
func Download(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("download %q: creating storage client: %w", uri, err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("download %q: opening object reader: %w", uri, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("download %q: reading bytes: %w", uri, err)
	}
	return data, nil
}

// Upload writes r to the object at the given gs:// URI, overwriting it.
func Upload(ctx context.Context, uri string, r io.Reader) error {
	bucket, object, err := ParseURI(uri)
	if err != nil {
		return err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return fmt.Errorf("upload %q: creating storage client: %w", uri, err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return fmt.Errorf("upload %q: copying to object writer: %w", uri, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %q: finalizing upload: %w", uri, err)
	}
	return nil
}

// Source extracts a Record Table from a CSV object in GCS.
type Source struct {
	URI string
}

func (s Source) Extract(ctx context.Context) (*table.Table, error) {
	data, err := Download(ctx, s.URI)
	if err != nil {
		return nil, err
	}
	t, err := etl.ExtractReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", s.URI, err)
	}
	return t, nil
}

// Sink loads a Record Table into a CSV object in GCS.
type Sink struct {
	URI string
}

func (s Sink) Load(ctx context.Context, t *table.Table) error {
	var buf bytes.Buffer
	if err := etl.WriteTo(t, &buf); err != nil {
		return fmt.Errorf("load %q: %w", s.URI, err)
	}
	return Upload(ctx, s.URI, &buf)
}
