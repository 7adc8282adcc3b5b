package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeMustParse(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestInspectionStatus_IsValid(t *testing.T) {
	assert.True(t, InspectionPass.IsValid())
	assert.True(t, InspectionFail.IsValid())
	assert.True(t, InspectionMaintenance.IsValid())

	assert.False(t, InspectionStatus("").IsValid())
	assert.False(t, InspectionStatus("pass").IsValid())
	assert.False(t, InspectionStatus("Operational").IsValid())
	assert.False(t, InspectionStatus("OK").IsValid())
}

func TestStatusForOutcome(t *testing.T) {
	tests := []struct {
		outcome InspectionStatus
		want    AssetStatus
	}{
		{InspectionPass, AssetStatusOperational},
		{InspectionFail, AssetStatusMaintenance},
		{InspectionMaintenance, AssetStatusMaintenance},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusForOutcome(tt.outcome))
		})
	}
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, NormalizeRole("admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole("Admin"))
	assert.Equal(t, RoleAdmin, NormalizeRole("ADMIN "))
	assert.Equal(t, RoleInspector, NormalizeRole("inspector"))
	assert.Equal(t, RoleInspector, NormalizeRole("Inspector"))
	// Unknown roles fall back to the least privileged.
	assert.Equal(t, RoleInspector, NormalizeRole("viewer"))
	assert.Equal(t, RoleInspector, NormalizeRole(""))
}

func TestChecklistFor(t *testing.T) {
	ext := &Asset{Type: "fire-extinguisher"}
	assert.Equal(t, "Fire Extinguisher Inspection", ChecklistFor(ext).Title)

	sand := &Asset{Type: CategorySandBucket}
	assert.Equal(t, "Fire Sand Bucket Inspection", ChecklistFor(sand).Title)

	water := &Asset{Type: CategorySandBucket, Specifications: map[string]string{"bucket_type": "Water"}}
	assert.Equal(t, "Fire Water Bucket Inspection", ChecklistFor(water).Title)

	unknown := &Asset{Type: "Fire Blanket"}
	assert.Equal(t, "Fire Extinguisher Inspection", ChecklistFor(unknown).Title)
}

func TestMaintenanceDates_IsZero(t *testing.T) {
	assert.True(t, MaintenanceDates{}.IsZero())

	d := timeMustParse(t, "2026-01-15")
	assert.False(t, MaintenanceDates{LastRefilledDate: &d}.IsZero())
	assert.False(t, MaintenanceDates{DischargeDate: &d}.IsZero())
}
