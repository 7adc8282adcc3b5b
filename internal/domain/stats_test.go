package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateInspections_Empty(t *testing.T) {
	result := AggregateInspections(nil, nil)

	assert.Equal(t, 0, result.Total)
	assert.Equal(t, 0, result.Passed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 0, result.Maintenance)

	require.Len(t, result.Breakdown, 4)
	for _, c := range CanonicalCategories {
		stat, ok := result.Breakdown[c]
		require.True(t, ok, "missing category %s", c)
		assert.Equal(t, CategoryStat{}, stat)
	}
}

func TestAggregateInspections(t *testing.T) {
	extA := uuid.New()
	extB := uuid.New()
	hydrant := uuid.New()
	orphan := uuid.New()

	types := map[uuid.UUID]string{
		extA:    "fire-extinguisher",
		extB:    "Fire Extinguisher",
		hydrant: "hydrant",
	}
	inspections := []Inspection{
		{AssetID: extA, Status: InspectionPass},
		{AssetID: extA, Status: InspectionPass},
		{AssetID: extB, Status: InspectionFail},
		{AssetID: hydrant, Status: InspectionMaintenance},
		{AssetID: orphan, Status: InspectionPass}, // asset missing from lookup
	}

	result := AggregateInspections(inspections, types)

	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 3, result.Passed)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Maintenance)

	ext := result.Breakdown[CategoryExtinguisher]
	assert.Equal(t, CategoryStat{Total: 3, Operational: 2, Health: 67}, ext)

	hyd := result.Breakdown[CategoryHydrant]
	assert.Equal(t, CategoryStat{Total: 1, Operational: 0, Health: 0}, hyd)

	// Unmapped rows never surface as a visible category.
	_, ok := result.Breakdown["Unknown"]
	assert.False(t, ok)
	require.Len(t, result.Breakdown, 4)
}

func TestAggregateInspections_SynonymsFoldTogether(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	types := map[uuid.UUID]string{
		ids[0]: "hydrant",
		ids[1]: "Hydrant Hose Reel",
		ids[2]: "HYDRANT HOSE REEL",
	}
	var inspections []Inspection
	for _, id := range ids {
		inspections = append(inspections, Inspection{AssetID: id, Status: InspectionPass})
	}

	result := AggregateInspections(inspections, types)
	assert.Equal(t, CategoryStat{Total: 3, Operational: 3, Health: 100}, result.Breakdown[CategoryHydrant])
}

func TestAggregateInspections_UnrecognizedTypeKeepsOwnBucket(t *testing.T) {
	id := uuid.New()
	result := AggregateInspections(
		[]Inspection{{AssetID: id, Status: InspectionPass}},
		map[uuid.UUID]string{id: "Fire Blanket"},
	)

	require.Len(t, result.Breakdown, 5)
	assert.Equal(t, CategoryStat{Total: 1, Operational: 1, Health: 100}, result.Breakdown["Fire Blanket"])
}

func TestAggregateAssets(t *testing.T) {
	assets := []Asset{
		{Type: "Fire Extinguisher", Status: AssetStatusOperational},
		{Type: "fire-extinguisher", Status: AssetStatusMaintenance},
		{Type: "Fire Sand Bucket", Status: AssetStatusPending},
	}

	result := AggregateAssets(assets)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, 1, result.Maintenance)

	assert.Equal(t, CategoryStat{Total: 2, Operational: 1, Health: 50}, result.Breakdown[CategoryExtinguisher])
	assert.Equal(t, CategoryStat{Total: 1, Operational: 0, Health: 0}, result.Breakdown[CategorySandBucket])
	assert.Equal(t, CategoryStat{}, result.Breakdown[CategoryHoseReel])
}
