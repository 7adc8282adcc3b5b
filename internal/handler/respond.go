// Package handler contains the HTTP handlers for the IgnisGuard API.
//
// Handlers decode and validate transport payloads, call into the service
// layer, and translate domain results and errors into JSON responses. No
// business rules live here.
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ignisguard/server/internal/domain"
)

// maxBodyBytes caps JSON request bodies. Evidence uploads have their own
// limit enforced by the evidence service.
const maxBodyBytes = 1 << 20

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// decodeJSON decodes a request body into dst, enforcing a size cap and
// rejecting unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return domain.Errorf(domain.ETOOLARGE, "", "request body exceeds %d bytes", maxErr.Limit)
		case errors.Is(err, io.EOF):
			return domain.Invalid("", "request body must not be empty")
		default:
			return domain.Invalid("", fmt.Sprintf("malformed JSON: %v", err))
		}
	}

	// A second document after the first is a malformed request.
	if dec.More() {
		return domain.Invalid("", "request body must contain a single JSON object")
	}

	return nil
}

// ErrorCodeToHTTPStatus maps domain error codes to HTTP status codes.
func ErrorCodeToHTTPStatus(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ETOOLARGE:
		return http.StatusRequestEntityTooLarge
	case domain.ELOCKED:
		return http.StatusLocked
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse maps a domain error onto an HTTP JSON error response.
// Lock denials get a dedicated body carrying the countdown and the
// inspector holding the lock, so clients can render both.
func ErrorResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	code := domain.ErrorCode(err)
	message := domain.ErrorMessage(err)
	status := ErrorCodeToHTTPStatus(code)

	logError(logger, r, err, code, status)

	var le *domain.LockedError
	if errors.As(err, &le) {
		respondJSON(w, status, map[string]interface{}{
			"error": map[string]interface{}{
				"code":            code,
				"message":         message,
				"remaining_hours": le.RemainingHours,
				"inspector_id":    le.InspectorID,
				"inspector_name":  le.InspectorName,
			},
		})
		return
	}

	respondJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// logError logs with level chosen by status class: 5xx are server faults,
// 4xx are expected client errors.
func logError(logger *slog.Logger, r *http.Request, err error, code string, status int) {
	attrs := []any{
		"error", err.Error(),
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
	}
	if op := domain.ErrorOp(err); op != "" {
		attrs = append(attrs, "op", op)
	}

	if status >= 500 {
		logger.Error("server error", attrs...)
	} else {
		logger.Info("client error", attrs...)
	}
}

// NotFoundResponse is a convenience wrapper for 404 errors.
func NotFoundResponse(w http.ResponseWriter, r *http.Request, logger *slog.Logger) {
	ErrorResponse(w, r, logger, domain.Errorf(domain.ENOTFOUND, "", "the requested resource was not found"))
}
