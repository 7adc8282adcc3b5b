// This file implements evidence photo upload and serving. Uploads are
// multipart; the returned key is what an inspection submission references
// in evidence_photos.
package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/service"
)

// multipartMemoryBytes is how much of a multipart body is held in memory
// before spilling to temp files.
const multipartMemoryBytes = 4 << 20

// UploadHandler handles evidence photo uploads and downloads.
type UploadHandler struct {
	evidence service.EvidenceService
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(evidence service.EvidenceService, maxBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{evidence: evidence, maxBytes: maxBytes, logger: logger}
}

// UploadEvidence handles POST /api/uploads/evidence. Expects a multipart
// form with a "photo" file and a "serial" field naming the asset.
func (h *UploadHandler) UploadEvidence(w http.ResponseWriter, r *http.Request) {
	const op = "upload.evidence"

	if h.maxBytes > 0 {
		// Leave slack for the multipart framing around the file part.
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartMemoryBytes)
	}

	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "request must be multipart form data"))
		return
	}

	serial := r.FormValue("serial")

	file, header, err := r.FormFile("photo")
	if err != nil {
		ErrorResponse(w, r, h.logger, domain.Invalid(op, "photo file is required"))
		return
	}
	defer file.Close()

	upload, err := h.evidence.Upload(r.Context(), service.UploadEvidenceParams{
		AssetSerial: serial,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        file,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, upload)
}

// ServeFile handles GET /files/{key...}, streaming a stored photo. Used by
// the local storage provider; S3 deployments serve from the bucket URL.
func (h *UploadHandler) ServeFile(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	rc, info, err := h.evidence.Open(r.Context(), key)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	defer rc.Close()

	if info.ContentType != "" {
		w.Header().Set("Content-Type", info.ContentType)
	}
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.Header().Set("Cache-Control", "private, max-age=3600")

	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Warn("file stream interrupted", "key", key, "error", err)
	}
}
