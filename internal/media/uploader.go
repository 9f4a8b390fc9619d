package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageSize bounds uploads read into memory
const MaxImageSize = 5 << 20

// ObjectWriter opens a writer for a storage object
type ObjectWriter interface {
	NewWriter(ctx context.Context, object, contentType string) io.WriteCloser
}

// Uploader stores images in a bucket under random object names
type Uploader struct {
	store   ObjectWriter
	baseURL string
}

// NewUploader creates an Uploader whose public URLs start with baseURL
func NewUploader(store ObjectWriter, baseURL string) *Uploader {
	return &Uploader{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

// Upload sniffs the content type, rejects anything that is not an image, and writes it to
// prefix/<uuid><ext>. It returns the object's public URL.
func (u *Uploader) Upload(ctx context.Context, prefix, filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", filename, err)
	}
	if len(data) > MaxImageSize {
		return "", fmt.Errorf("image %s exceeds %d bytes", filename, MaxImageSize)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("image %s is empty", filename)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("unsupported image type %s", mtype.String())
	}

	object := path.Join(prefix, uuid.NewString()+mtype.Extension())
	w := u.store.NewWriter(ctx, object, mtype.String())
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		w.Close()
		return "", fmt.Errorf("writing %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalizing %s: %w", object, err)
	}

	return u.baseURL + "/" + escapePath(object), nil
}

func escapePath(object string) string {
	parts := strings.Split(object, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

// BucketWriter adapts a Cloud Storage bucket to ObjectWriter
type BucketWriter struct {
	Bucket *gcs.BucketHandle
}

func (b BucketWriter) NewWriter(ctx context.Context, object, contentType string) io.WriteCloser {
	w := b.Bucket.Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"
	return w
}

// PublicBaseURL returns the public URL prefix for objects in bucket
func PublicBaseURL(bucket string) string {
	return "https://storage.googleapis.com/" + bucket
}
