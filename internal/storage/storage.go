package storage

import (
	"context"
	"io"
	"time"
)

// DefaultContentType is assumed when the uploading client reports none.
const DefaultContentType = "video/mp4"

// ObjectStore is the contract the upload orchestrator and download flow
// depend on, scoped to a single bucket.
//
// Exists deliberately collapses "absent" and "cannot verify" into false: the
// probe guards confirmation and download flows where an unverifiable object
// must be treated as missing. Errors are logged, never returned.
type ObjectStore interface {
	Exists(ctx context.Context, key string) bool
	PresignDownload(ctx context.Context, key string, ttl time.Duration) (string, error)
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
}
