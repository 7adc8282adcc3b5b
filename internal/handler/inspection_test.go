package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignisguard/server/internal/auth"
	"github.com/ignisguard/server/internal/domain"
)

// fakeInspectionService scripts responses for handler tests.
type fakeInspectionService struct {
	recordErr    error
	recorded     *domain.RecordInspectionParams
	lockDecision domain.LockDecision
	lockErr      error
	latest       *domain.Inspection
	history      []domain.Inspection
}

func (f *fakeInspectionService) LockStatus(_ context.Context, serial string, p domain.Principal) (domain.LockDecision, error) {
	return f.lockDecision, f.lockErr
}

func (f *fakeInspectionService) Record(_ context.Context, params domain.RecordInspectionParams) (*domain.Inspection, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	f.recorded = &params
	return &domain.Inspection{
		ID:             uuid.New(),
		AssetID:        params.AssetID,
		InspectorID:    params.Inspector.ID,
		InspectionDate: time.Now(),
		Status:         params.Status,
		Findings:       params.Findings,
		EvidencePhotos: params.EvidencePhotos,
	}, nil
}

func (f *fakeInspectionService) Revise(_ context.Context, params domain.ReviseInspectionParams) (*domain.Inspection, error) {
	return &domain.Inspection{ID: params.ID, Status: params.Status}, nil
}

func (f *fakeInspectionService) GetByID(_ context.Context, id uuid.UUID) (*domain.Inspection, error) {
	if f.latest == nil {
		return nil, domain.NotFound("inspection.get", "inspection", id.String())
	}
	return f.latest, nil
}

func (f *fakeInspectionService) HistoryForAsset(_ context.Context, assetID uuid.UUID, p domain.Principal) ([]domain.Inspection, error) {
	return f.history, nil
}

func (f *fakeInspectionService) LatestForAsset(_ context.Context, assetID uuid.UUID) (*domain.Inspection, error) {
	return f.latest, nil
}

func withPrincipal(req *http.Request, role domain.Role) *http.Request {
	p := domain.Principal{ID: uuid.New(), Name: "Asha", Role: role}
	return req.WithContext(auth.SetPrincipal(req.Context(), p))
}

func TestInspectionHandler_Record(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		fake := &fakeInspectionService{}
		h := NewInspectionHandler(fake, testLogger)

		assetID := uuid.New()
		body := `{
			"asset_id": "` + assetID.String() + `",
			"status": "Pass",
			"findings": {"checklist": {"pressure_gauge": "Green Zone"}, "remarks": "ok"},
			"evidence_photos": ["evidence/EXT-1/a.jpg"],
			"maintenance": {"last_refilled_date": "2026-08-01"}
		}`

		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/inspections", reader(body)), domain.RoleInspector)
		rec := httptest.NewRecorder()
		h.Record(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		require.NotNil(t, fake.recorded)
		assert.Equal(t, assetID, fake.recorded.AssetID)
		assert.Equal(t, domain.InspectionPass, fake.recorded.Status)
		require.NotNil(t, fake.recorded.Maintenance.LastRefilledDate)
		assert.Equal(t, "2026-08-01", fake.recorded.Maintenance.LastRefilledDate.Format("2006-01-02"))

		var resp inspectionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Pass", resp.Status)
	})

	t.Run("lock denial maps to 423", func(t *testing.T) {
		fake := &fakeInspectionService{
			recordErr: &domain.LockedError{RemainingHours: 47.0, InspectorName: "Ravi"},
		}
		h := NewInspectionHandler(fake, testLogger)

		body := `{"asset_id": "` + uuid.NewString() + `", "status": "Pass"}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/inspections", reader(body)), domain.RoleInspector)
		rec := httptest.NewRecorder()
		h.Record(rec, req)

		assert.Equal(t, http.StatusLocked, rec.Code)
		assert.Contains(t, rec.Body.String(), "remaining_hours")
		assert.Contains(t, rec.Body.String(), "Ravi")
	})

	t.Run("bad asset id", func(t *testing.T) {
		h := NewInspectionHandler(&fakeInspectionService{}, testLogger)

		body := `{"asset_id": "not-a-uuid", "status": "Pass"}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/inspections", reader(body)), domain.RoleInspector)
		rec := httptest.NewRecorder()
		h.Record(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad maintenance date", func(t *testing.T) {
		h := NewInspectionHandler(&fakeInspectionService{}, testLogger)

		body := `{"asset_id": "` + uuid.NewString() + `", "status": "Pass", "maintenance": {"next_refill_due": "01/09/2026"}}`
		req := withPrincipal(httptest.NewRequest(http.MethodPost, "/api/inspections", reader(body)), domain.RoleInspector)
		rec := httptest.NewRecorder()
		h.Record(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
	})
}

func TestInspectionHandler_LockStatus(t *testing.T) {
	t.Run("locked decision serialized", func(t *testing.T) {
		blocking := &domain.Inspection{ID: uuid.New(), InspectorName: "Ravi", Status: domain.InspectionPass}
		fake := &fakeInspectionService{
			lockDecision: domain.LockDecision{Locked: true, RemainingHours: 12.25, BlockedBy: blocking},
		}
		h := NewInspectionHandler(fake, testLogger)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/assets/serial/EXT-1/lock", nil), domain.RoleInspector)
		req.SetPathValue("serial", "EXT-1")
		rec := httptest.NewRecorder()
		h.LockStatus(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp lockResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Locked)
		assert.InDelta(t, 12.25, resp.RemainingHours, 0.001)
		require.NotNil(t, resp.BlockedBy)
		assert.Equal(t, "Ravi", resp.BlockedBy.InspectorName)
	})

	t.Run("unknown serial", func(t *testing.T) {
		fake := &fakeInspectionService{lockErr: domain.NotFound("inspection.lock_status", "asset", "NOPE")}
		h := NewInspectionHandler(fake, testLogger)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/assets/serial/NOPE/lock", nil), domain.RoleInspector)
		req.SetPathValue("serial", "NOPE")
		rec := httptest.NewRecorder()
		h.LockStatus(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestInspectionHandler_History(t *testing.T) {
	fake := &fakeInspectionService{
		history: []domain.Inspection{
			{ID: uuid.New(), Status: domain.InspectionPass},
			{ID: uuid.New(), Status: domain.InspectionFail},
		},
	}
	h := NewInspectionHandler(fake, testLogger)

	assetID := uuid.New()
	req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/assets/"+assetID.String()+"/inspections", nil), domain.RoleInspector)
	req.SetPathValue("id", assetID.String())
	rec := httptest.NewRecorder()
	h.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Inspections []inspectionResponse `json:"inspections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Inspections, 2)
}
