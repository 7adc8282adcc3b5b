package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignisguard/server/internal/domain"
)

type fakeStatsStore struct {
	inspections []domain.Inspection
	types       map[uuid.UUID]string
	assets      []domain.Asset

	lookedUp []uuid.UUID
}

func (s *fakeStatsStore) FindInspectionsByInspector(_ context.Context, inspectorID uuid.UUID) ([]domain.Inspection, error) {
	var out []domain.Inspection
	for _, insp := range s.inspections {
		if insp.InspectorID == inspectorID {
			out = append(out, insp)
		}
	}
	return out, nil
}

func (s *fakeStatsStore) FindAssetTypes(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	s.lookedUp = ids
	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if t, ok := s.types[id]; ok {
			out[id] = t
		}
	}
	return out, nil
}

func (s *fakeStatsStore) ListAssets(_ context.Context, _ *uuid.UUID) ([]domain.Asset, error) {
	return s.assets, nil
}

func TestStatsForInspector(t *testing.T) {
	me := uuid.New()
	other := uuid.New()
	ext := uuid.New()

	store := &fakeStatsStore{
		inspections: []domain.Inspection{
			{AssetID: ext, InspectorID: me, Status: domain.InspectionPass},
			{AssetID: ext, InspectorID: me, Status: domain.InspectionFail},
			{AssetID: ext, InspectorID: other, Status: domain.InspectionPass},
		},
		types: map[uuid.UUID]string{ext: "Fire Extinguisher"},
	}
	svc := NewStatsService(store, testLogger)

	result, err := svc.ForInspector(context.Background(), me)
	require.NoError(t, err)

	// Only my two inspections; the other inspector's rows stay out.
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, domain.CategoryStat{Total: 2, Operational: 1, Health: 50}, result.Breakdown[domain.CategoryExtinguisher])

	// Repeated asset ids collapse into one lookup entry.
	assert.Equal(t, []uuid.UUID{ext}, store.lookedUp)
}

func TestStatsForInspector_NoHistory(t *testing.T) {
	store := &fakeStatsStore{}
	svc := NewStatsService(store, testLogger)

	result, err := svc.ForInspector(context.Background(), uuid.New())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Total)
	require.Len(t, result.Breakdown, 4)
	assert.Nil(t, store.lookedUp)
}

func TestStatsForFleet(t *testing.T) {
	store := &fakeStatsStore{
		assets: []domain.Asset{
			{Type: "Fire Extinguisher", Status: domain.AssetStatusOperational},
			{Type: "hydrant", Status: domain.AssetStatusMaintenance},
			{Type: "Fire Sand Bucket", Status: domain.AssetStatusPending},
		},
	}
	svc := NewStatsService(store, testLogger)

	result, err := svc.ForFleet(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 1, result.Maintenance)
	assert.Equal(t, domain.CategoryStat{Total: 1, Operational: 1, Health: 100}, result.Breakdown[domain.CategoryExtinguisher])
	assert.Equal(t, domain.CategoryStat{Total: 1, Operational: 0, Health: 0}, result.Breakdown[domain.CategoryHydrant])
}
