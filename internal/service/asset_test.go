package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignisguard/server/internal/domain"
	"github.com/ignisguard/server/internal/repository"
)

// fakeAssetStore extends fakeStore with the registry write methods.
type fakeAssetStore struct {
	*fakeStore
	deleted map[uuid.UUID]bool
}

func newFakeAssetStore(assets ...*domain.Asset) *fakeAssetStore {
	return &fakeAssetStore{
		fakeStore: newFakeStore(assets...),
		deleted:   make(map[uuid.UUID]bool),
	}
}

func (s *fakeAssetStore) CreateAsset(_ context.Context, a *domain.Asset) error {
	for _, existing := range s.assets {
		if existing.SerialNumber == a.SerialNumber {
			return repository.ErrDuplicateSerial
		}
	}
	cp := *a
	s.assets[a.ID] = &cp
	return nil
}

func (s *fakeAssetStore) ListAssets(_ context.Context, inspectorID *uuid.UUID) ([]domain.Asset, error) {
	var out []domain.Asset
	for _, a := range s.assets {
		if s.deleted[a.ID] {
			continue
		}
		if inspectorID != nil && !s.inspectedBy(a.ID, *inspectorID) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (s *fakeAssetStore) inspectedBy(assetID, inspectorID uuid.UUID) bool {
	for _, insp := range s.inspections {
		if insp.AssetID == assetID && insp.InspectorID == inspectorID {
			return true
		}
	}
	return false
}

func (s *fakeAssetStore) UpdateAssetStatic(_ context.Context, p domain.UpdateAssetParams) error {
	a, ok := s.assets[p.ID]
	if !ok {
		return repository.ErrAssetNotFound
	}
	if p.Name != "" {
		a.Name = p.Name
	}
	if p.Location != "" {
		a.Location = p.Location
	}
	for k, v := range p.Specifications {
		if a.Specifications == nil {
			a.Specifications = map[string]string{}
		}
		a.Specifications[k] = v
	}
	return nil
}

func (s *fakeAssetStore) SoftDeleteAsset(_ context.Context, id uuid.UUID) error {
	if _, ok := s.assets[id]; !ok {
		return repository.ErrAssetNotFound
	}
	s.deleted[id] = true
	return nil
}

func newTestAssetService(store AssetStore) AssetService {
	return NewAssetService(store, "https://ignis.example.com", testLogger)
}

func TestAssetCreate(t *testing.T) {
	store := newFakeAssetStore()
	svc := newTestAssetService(store)

	creator := uuid.New()
	asset, err := svc.Create(context.Background(), domain.CreateAssetParams{
		Type:         "Fire Extinguisher",
		SerialNumber: "EXT-001",
		Location:     "Block A",
		CreatedBy:    &creator,
	})
	require.NoError(t, err)

	assert.Equal(t, "Fire Extinguisher - EXT-001", asset.Name)
	assert.Equal(t, domain.AssetStatusPending, asset.Status)
	assert.Equal(t, "https://ignis.example.com/v/EXT-001", asset.QRCodeURL)
	assert.Equal(t, "KG", asset.Unit)
	assert.Nil(t, asset.LastInspectionDate)
}

func TestAssetCreate_DuplicateSerial(t *testing.T) {
	existing := testAsset("EXT-001")
	svc := newTestAssetService(newFakeAssetStore(existing))

	_, err := svc.Create(context.Background(), domain.CreateAssetParams{
		Type:         "Fire Hose Reel",
		SerialNumber: "EXT-001",
		Location:     "Block B",
	})
	assert.Equal(t, domain.ECONFLICT, domain.ErrorCode(err))
}

func TestAssetCreate_Validation(t *testing.T) {
	svc := newTestAssetService(newFakeAssetStore())

	tests := []struct {
		name   string
		params domain.CreateAssetParams
	}{
		{"missing serial", domain.CreateAssetParams{Type: "Fire Extinguisher", Location: "A"}},
		{"blank serial", domain.CreateAssetParams{Type: "Fire Extinguisher", SerialNumber: "   ", Location: "A"}},
		{"missing type", domain.CreateAssetParams{SerialNumber: "X-1", Location: "A"}},
		{"missing location", domain.CreateAssetParams{Type: "Fire Extinguisher", SerialNumber: "X-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.params)
			assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
		})
	}
}

func TestAssetList_Scoping(t *testing.T) {
	a := testAsset("EXT-001")
	b := testAsset("EXT-002")
	store := newFakeAssetStore(a, b)
	svc := newTestAssetService(store)

	insp := inspector(domain.RoleInspector)
	store.inspections = append(store.inspections, domain.Inspection{
		ID: uuid.New(), AssetID: a.ID, InspectorID: insp.ID, Status: domain.InspectionPass,
	})

	mine, err := svc.List(context.Background(), insp)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "EXT-001", mine[0].SerialNumber)

	all, err := svc.List(context.Background(), inspector(domain.RoleAdmin))
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestAssetDelete(t *testing.T) {
	a := testAsset("EXT-001")
	store := newFakeAssetStore(a)
	svc := newTestAssetService(store)

	require.NoError(t, svc.Delete(context.Background(), a.ID))

	all, err := svc.List(context.Background(), inspector(domain.RoleAdmin))
	require.NoError(t, err)
	assert.Empty(t, all)

	err = svc.Delete(context.Background(), uuid.New())
	assert.Equal(t, domain.ENOTFOUND, domain.ErrorCode(err))
}

func TestAssetUpdate_MergesSpecifications(t *testing.T) {
	a := testAsset("EXT-001")
	a.Specifications = map[string]string{"extinguisher_type": "ABC", "bucket_type": "Sand"}
	store := newFakeAssetStore(a)
	svc := newTestAssetService(store)

	updated, err := svc.Update(context.Background(), domain.UpdateAssetParams{
		ID:             a.ID,
		Location:       "Block C",
		Specifications: map[string]string{"extinguisher_type": "CO2"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Block C", updated.Location)
	assert.Equal(t, "CO2", updated.Spec("extinguisher_type"))
	assert.Equal(t, "Sand", updated.Spec("bucket_type"))
}
