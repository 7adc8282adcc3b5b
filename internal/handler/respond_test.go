package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignisguard/server/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func reader(s string) io.Reader {
	return strings.NewReader(s)
}

func TestErrorCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{domain.EINVALID, http.StatusBadRequest},
		{domain.EUNAUTHORIZED, http.StatusUnauthorized},
		{domain.EFORBIDDEN, http.StatusForbidden},
		{domain.ENOTFOUND, http.StatusNotFound},
		{domain.ECONFLICT, http.StatusConflict},
		{domain.ETOOLARGE, http.StatusRequestEntityTooLarge},
		{domain.ELOCKED, http.StatusLocked},
		{domain.EINTERNAL, http.StatusInternalServerError},
		{"someday", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCodeToHTTPStatus(tt.code))
		})
	}
}

func TestErrorResponse(t *testing.T) {
	t.Run("domain error body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/assets/nope", nil)

		ErrorResponse(rec, req, testLogger, domain.NotFound("asset.get", "asset", "nope"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var body struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domain.ENOTFOUND, body.Error.Code)
		assert.Contains(t, body.Error.Message, "nope")
	})

	t.Run("locked error carries countdown and inspector", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/inspections", nil)

		ErrorResponse(rec, req, testLogger, &domain.LockedError{
			RemainingHours: 31.5,
			InspectorID:    "f4b7c6ff-0000-0000-0000-000000000001",
			InspectorName:  "Asha",
		})

		assert.Equal(t, http.StatusLocked, rec.Code)

		var body struct {
			Error struct {
				Code           string  `json:"code"`
				RemainingHours float64 `json:"remaining_hours"`
				InspectorName  string  `json:"inspector_name"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, domain.ELOCKED, body.Error.Code)
		assert.InDelta(t, 31.5, body.Error.RemainingHours, 0.001)
		assert.Equal(t, "Asha", body.Error.InspectorName)
	})

	t.Run("internal details hidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/stats/fleet", nil)

		ErrorResponse(rec, req, testLogger, domain.Internal(io.ErrUnexpectedEOF, "stats.fleet", "query failed"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "unexpected EOF")
		assert.NotContains(t, rec.Body.String(), "query failed")
	})
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("well formed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", reader(`{"name":"x"}`))
		var p payload
		require.NoError(t, decodeJSON(httptest.NewRecorder(), req, &p))
		assert.Equal(t, "x", p.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", reader(""))
		err := decodeJSON(httptest.NewRecorder(), req, &payload{})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("unknown field", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", reader(`{"nope":1}`))
		err := decodeJSON(httptest.NewRecorder(), req, &payload{})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})

	t.Run("trailing document", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", reader(`{"name":"x"}{"name":"y"}`))
		err := decodeJSON(httptest.NewRecorder(), req, &payload{})
		assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
	})
}
