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

	"github.com/ignisguard/server/internal/domain"
)

// fakeAssetService scripts responses for handler tests.
type fakeAssetService struct {
	asset *domain.Asset
	err   error
}

func (f *fakeAssetService) Create(_ context.Context, params domain.CreateAssetParams) (*domain.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.asset, nil
}

func (f *fakeAssetService) GetByID(_ context.Context, id uuid.UUID) (*domain.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.asset, nil
}

func (f *fakeAssetService) GetBySerial(_ context.Context, serial string) (*domain.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.asset, nil
}

func (f *fakeAssetService) List(_ context.Context, p domain.Principal) ([]domain.Asset, error) {
	if f.asset == nil {
		return nil, nil
	}
	return []domain.Asset{*f.asset}, nil
}

func (f *fakeAssetService) Update(_ context.Context, params domain.UpdateAssetParams) (*domain.Asset, error) {
	return f.asset, f.err
}

func (f *fakeAssetService) Delete(_ context.Context, id uuid.UUID) error {
	return f.err
}

// scanResponse mirrors the QR scan payload.
type scanResponse struct {
	Asset            assetResponse       `json:"asset"`
	Checklist        domain.Checklist    `json:"checklist"`
	LatestInspection *inspectionResponse `json:"latest_inspection"`
}

func TestAssetHandler_GetBySerial(t *testing.T) {
	scan := func(t *testing.T, assets *fakeAssetService, inspections *fakeInspectionService) scanResponse {
		t.Helper()
		h := NewAssetHandler(assets, inspections, testLogger)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/assets/serial/"+assets.asset.SerialNumber, nil), domain.RoleInspector)
		req.SetPathValue("serial", assets.asset.SerialNumber)
		rec := httptest.NewRecorder()
		h.GetBySerial(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp scanResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	t.Run("includes checklist for asset type", func(t *testing.T) {
		assets := &fakeAssetService{asset: &domain.Asset{
			ID:           uuid.New(),
			Type:         "Fire Extinguisher",
			SerialNumber: "EXT-1",
			Status:       domain.AssetStatusPending,
		}}

		resp := scan(t, assets, &fakeInspectionService{})

		assert.Equal(t, "EXT-1", resp.Asset.SerialNumber)
		assert.Equal(t, "Fire Extinguisher Inspection", resp.Checklist.Title)
		require.NotEmpty(t, resp.Checklist.Steps)
		assert.Equal(t, "pressure_gauge", resp.Checklist.Steps[0].ID)
		assert.Nil(t, resp.LatestInspection)
	})

	t.Run("water bucket gets the water variant", func(t *testing.T) {
		assets := &fakeAssetService{asset: &domain.Asset{
			ID:             uuid.New(),
			Type:           "Sand Bucket",
			SerialNumber:   "SB-7",
			Status:         domain.AssetStatusPending,
			Specifications: map[string]string{"bucket_type": "Water"},
		}}

		resp := scan(t, assets, &fakeInspectionService{})

		assert.Equal(t, "Fire Water Bucket Inspection", resp.Checklist.Title)
	})

	t.Run("includes latest inspection when one exists", func(t *testing.T) {
		assets := &fakeAssetService{asset: &domain.Asset{
			ID:           uuid.New(),
			Type:         "Fire Extinguisher",
			SerialNumber: "EXT-1",
			Status:       domain.AssetStatusOperational,
		}}
		inspections := &fakeInspectionService{latest: &domain.Inspection{
			ID:             uuid.New(),
			AssetID:        assets.asset.ID,
			InspectorName:  "Ravi",
			Status:         domain.InspectionPass,
			InspectionDate: time.Now(),
		}}

		resp := scan(t, assets, inspections)

		require.NotNil(t, resp.LatestInspection)
		assert.Equal(t, "Ravi", resp.LatestInspection.InspectorName)
		assert.Equal(t, "Pass", resp.LatestInspection.Status)
	})

	t.Run("unknown serial", func(t *testing.T) {
		assets := &fakeAssetService{
			asset: &domain.Asset{SerialNumber: "NOPE"},
			err:   domain.NotFound("asset.get_by_serial", "asset", "NOPE"),
		}
		h := NewAssetHandler(assets, &fakeInspectionService{}, testLogger)

		req := withPrincipal(httptest.NewRequest(http.MethodGet, "/api/assets/serial/NOPE", nil), domain.RoleInspector)
		req.SetPathValue("serial", "NOPE")
		rec := httptest.NewRecorder()
		h.GetBySerial(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
