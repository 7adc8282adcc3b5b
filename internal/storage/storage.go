// Package storage provides blob storage for inspection evidence photos,
// their thumbnails, and generated compliance reports.
//
// Two implementations back the Storage interface: LocalStorage for
// development and S3Storage for any S3-compatible object store (AWS S3,
// Cloudflare R2, MinIO).
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Storage defines blob storage operations. All methods are context-aware.
type Storage interface {
	// Put stores data at key. Fails with ErrKeyExists when the key is taken
	// and Overwrite is off, and with ErrTooLarge past opts.MaxSize.
	Put(ctx context.Context, key string, data io.Reader, opts PutOptions) error

	// Get retrieves the object at key. The caller closes the reader.
	// Returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)

	// Delete removes the object at key. Idempotent.
	Delete(ctx context.Context, key string) error

	// URL returns an access URL for the object: permanent when the backend
	// has a public base, otherwise presigned for the given duration.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)

	// Exists reports whether an object is stored at key.
	Exists(ctx context.Context, key string) (bool, error)
}

// =============================================================================
// Data Types
// =============================================================================

// PutOptions configures how an object is stored.
type PutOptions struct {
	// ContentType is the MIME type; auto-detected when empty.
	ContentType string

	// MaxSize caps the object size in bytes. Zero means unlimited.
	MaxSize int64

	// Overwrite allows replacing an existing object at the same key.
	Overwrite bool
}

// ObjectInfo contains metadata about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
	ETag         string
}

// =============================================================================
// Configuration
// =============================================================================

// LocalConfig configures filesystem storage.
type LocalConfig struct {
	// BasePath is the root directory, e.g. "./storage".
	BasePath string

	// BaseURL is the public URL prefix the server mounts the directory at,
	// e.g. "http://localhost:8080/files".
	BaseURL string
}

// S3Config configures an S3-compatible object store.
type S3Config struct {
	// Endpoint is the store's URL, e.g. "https://<account>.r2.cloudflarestorage.com".
	Endpoint string

	Region          string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string

	// PublicURL, when set, serves objects from a public base (custom
	// domain) instead of presigned URLs.
	PublicURL string
}

const (
	ProviderLocal = "local"
	ProviderS3    = "s3"
)

// =============================================================================
// Key Helpers
// =============================================================================

// EvidenceKey builds the storage key for an uploaded evidence photo.
// Format: evidence/{assetSerial}/{uuid}{ext}
func EvidenceKey(assetSerial, filename string) string {
	return fmt.Sprintf("evidence/%s/%s%s", assetSerial, uuid.New(), filepath.Ext(filename))
}

// ThumbnailKey derives the thumbnail key for an evidence photo key.
// Format: thumbnails/{original key minus the evidence/ prefix}
func ThumbnailKey(evidenceKey string) string {
	return "thumbnails/" + filepath.Base(filepath.Dir(evidenceKey)) + "/" + filepath.Base(evidenceKey)
}

// ReportKey builds the storage key for a generated compliance report.
// Format: reports/{date}/{uuid}.{format}
func ReportKey(generatedAt time.Time, format string) string {
	return fmt.Sprintf("reports/%s/%s.%s", generatedAt.Format("2006-01-02"), uuid.New(), format)
}
