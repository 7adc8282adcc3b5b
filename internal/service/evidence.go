// This file implements evidence photo handling: validated uploads with
// thumbnail generation, and photo retrieval for report embedding.
package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/metrics"
	"github.com/ignisguard/server/internal/report"
	"github.com/ignisguard/server/internal/storage"
)

// UploadEvidenceParams describes one evidence photo upload.
type UploadEvidenceParams struct {
	AssetSerial string
	Filename    string
	ContentType string
	Data        io.Reader
}

// EvidenceUpload is the stored result of an upload.
type EvidenceUpload struct {
	Key          string `json:"key"`
	ThumbnailKey string `json:"thumbnail_key,omitempty"`
	URL          string `json:"url"`
}

// EvidenceService stores and serves evidence photos.
type EvidenceService interface {
	// Upload validates and stores a photo plus its thumbnail, returning the
	// storage key to reference from an inspection submission.
	Upload(ctx context.Context, params UploadEvidenceParams) (*EvidenceUpload, error)

	// Open streams a stored photo.
	Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error)

	// FetchPhoto implements report.PhotoFetcher for PDF thumbnails.
	FetchPhoto(ctx context.Context, key string) (*report.PhotoData, error)
}

type evidenceService struct {
	store      storage.Storage
	thumbnails ThumbnailProcessor
	maxBytes   int64
	logger     *slog.Logger
}

// NewEvidenceService creates a new EvidenceService. maxBytes caps a single
// upload; zero disables the cap.
func NewEvidenceService(store storage.Storage, thumbnails ThumbnailProcessor, maxBytes int64, logger *slog.Logger) EvidenceService {
	return &evidenceService{
		store:      store,
		thumbnails: thumbnails,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

// Upload validates and stores a photo plus its thumbnail.
func (s *evidenceService) Upload(ctx context.Context, params UploadEvidenceParams) (*EvidenceUpload, error) {
	const op = "evidence.upload"

	if params.AssetSerial == "" {
		return nil, domain.Invalid(op, "asset serial is required")
	}
	contentType := storage.DetectContentType(params.ContentType, params.Filename, nil)
	if !storage.IsAllowedImageType(contentType) {
		return nil, domain.Invalid(op, "evidence must be a JPEG, PNG, WebP or HEIC image")
	}

	// Buffer the photo so it can be written twice: once as the original,
	// once decoded for the thumbnail.
	reader := params.Data
	if s.maxBytes > 0 {
		reader = io.LimitReader(params.Data, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to read upload")
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, domain.Errorf(domain.ETOOLARGE, op, "photo exceeds the %d byte limit", s.maxBytes)
	}

	key := storage.EvidenceKey(params.AssetSerial, params.Filename)
	err = s.store.Put(ctx, key, bytes.NewReader(data), storage.PutOptions{
		ContentType: contentType,
		MaxSize:     s.maxBytes,
	})
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, domain.Errorf(domain.ETOOLARGE, op, "photo exceeds the %d byte limit", s.maxBytes)
		}
		return nil, domain.Internal(err, op, "failed to store photo")
	}

	upload := &EvidenceUpload{Key: key}

	// A failed thumbnail never fails the upload; the original photo is the
	// record of evidence.
	if thumb, _, _, err := s.thumbnails.GenerateThumbnail(bytes.NewReader(data), ThumbnailMaxWidth, ThumbnailMaxHeight); err != nil {
		s.logger.Warn("thumbnail generation failed", "key", key, "error", err)
	} else {
		thumbKey := storage.ThumbnailKey(key)
		if err := s.store.Put(ctx, thumbKey, bytes.NewReader(thumb), storage.PutOptions{ContentType: "image/jpeg"}); err != nil {
			s.logger.Warn("thumbnail store failed", "key", thumbKey, "error", err)
		} else {
			upload.ThumbnailKey = thumbKey
		}
	}

	if url, err := s.store.URL(ctx, key, 0); err == nil {
		upload.URL = url
	}

	metrics.EvidenceUploads.Inc()
	s.logger.Info("evidence uploaded", "key", key, "bytes", len(data))
	return upload, nil
}

// Open streams a stored photo.
func (s *evidenceService) Open(ctx context.Context, key string) (io.ReadCloser, storage.ObjectInfo, error) {
	const op = "evidence.open"

	rc, info, err := s.store.Get(ctx, key)
	if err != nil {
		if storage.IsNotFound(err) {
			return nil, storage.ObjectInfo{}, domain.NotFound(op, "photo", key)
		}
		return nil, storage.ObjectInfo{}, domain.Internal(err, op, "failed to open photo")
	}
	return rc, info, nil
}

// FetchPhoto loads a photo for PDF embedding. Prefers the thumbnail to keep
// report size down; missing photos resolve to nil rather than an error.
func (s *evidenceService) FetchPhoto(ctx context.Context, key string) (*report.PhotoData, error) {
	fetch := func(k string) (*report.PhotoData, bool) {
		rc, info, err := s.store.Get(ctx, k)
		if err != nil {
			return nil, false
		}
		defer rc.Close()

		data, err := io.ReadAll(io.LimitReader(rc, 8<<20))
		if err != nil {
			return nil, false
		}
		return &report.PhotoData{Data: data, ContentType: info.ContentType}, true
	}

	if photo, ok := fetch(storage.ThumbnailKey(key)); ok {
		return photo, nil
	}
	if photo, ok := fetch(key); ok {
		return photo, nil
	}
	return nil, nil
}

var _ report.PhotoFetcher = (*evidenceService)(nil)
