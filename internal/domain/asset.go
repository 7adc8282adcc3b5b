// This file defines the Asset domain type: one registered unit of
// fire-safety equipment, tracked by serial number.
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Asset Status
// =============================================================================

// AssetStatus is the derived operational state of an asset. It is written
// only by the inspection recorder, never edited directly by users.
type AssetStatus string

const (
	// AssetStatusPending indicates no inspection has been recorded yet.
	AssetStatusPending AssetStatus = "Pending Inspection"

	// AssetStatusOperational indicates the most recent inspection passed.
	AssetStatusOperational AssetStatus = "Operational"

	// AssetStatusMaintenance indicates the most recent inspection failed or
	// flagged the asset for maintenance.
	AssetStatusMaintenance AssetStatus = "Maintenance Required"
)

// StatusForOutcome maps an inspection outcome to the resulting asset status.
// The mapping is total over valid outcomes: Fail and Maintenance both derive
// "Maintenance Required", Pass derives "Operational".
func StatusForOutcome(outcome InspectionStatus) AssetStatus {
	if outcome == InspectionPass {
		return AssetStatusOperational
	}
	return AssetStatusMaintenance
}

// =============================================================================
// Asset Domain Type
// =============================================================================

// Asset represents one physical unit of fire-safety equipment.
//
// Type is an open string rather than a closed enum so new equipment classes
// can be registered without a migration; aggregation and reporting normalize
// it through the category table (category.go).
type Asset struct {
	ID           uuid.UUID
	Name         string
	Type         string // e.g. "Fire Extinguisher"; open string
	SerialNumber string // unique, human-assigned, immutable after creation
	Location     string
	Make         string
	MfgYear      int // zero when unknown
	Capacity     float64
	Unit         string // e.g. "KG", "L", "M"
	InstallationDate *time.Time

	// Type-specific attributes (extinguisher_type, hose_length, coupling_type,
	// bucket_type, stand_id, ...) kept as an opaque string-keyed bag. Typed
	// access only happens at the report column boundary.
	Specifications map[string]string

	// Maintenance and service dates, all optional. The recorder merges these
	// sparsely: an omitted field is never zeroed out.
	LastHydroTestDate *time.Time
	NextHydroTestDue  *time.Time
	LastRefilledDate  *time.Time
	NextRefillDue     *time.Time
	DischargeDate     *time.Time

	// Derived state, owned by the inspection recorder.
	Status             AssetStatus
	LastInspectionDate *time.Time
	NextInspectionDue  *time.Time

	QRCodeURL string
	CreatedBy *uuid.UUID // nullable for legacy data
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBeenInspected reports whether at least one inspection has been recorded.
func (a *Asset) HasBeenInspected() bool {
	return a.LastInspectionDate != nil
}

// Spec returns a specifications value, or the empty string when absent.
func (a *Asset) Spec(key string) string {
	if a.Specifications == nil {
		return ""
	}
	return a.Specifications[key]
}

// DefaultName derives the display name used when none is supplied at
// registration: "<type> - <serial>".
func DefaultName(assetType, serial string) string {
	return fmt.Sprintf("%s - %s", assetType, serial)
}

// QRCodeURLFor builds the public scan URL encoded into an asset's QR label.
func QRCodeURLFor(baseURL, serial string) string {
	return fmt.Sprintf("%s/v/%s", strings.TrimSuffix(baseURL, "/"), serial)
}

// =============================================================================
// Service Parameters
// =============================================================================

// CreateAssetParams contains validated parameters for registering an asset.
type CreateAssetParams struct {
	Name             string // optional; defaulted from type + serial
	Type             string
	SerialNumber     string
	Location         string
	Make             string
	MfgYear          int
	Capacity         float64
	Unit             string
	InstallationDate *time.Time
	Specifications   map[string]string
	CreatedBy        *uuid.UUID
}

// UpdateAssetParams contains admin edits to an asset's static fields.
// Nil/zero fields are left unchanged; Specifications is merged key-wise.
type UpdateAssetParams struct {
	ID               uuid.UUID
	Name             string
	Location         string
	Make             string
	MfgYear          int
	Capacity         float64
	Unit             string
	InstallationDate *time.Time
	Specifications   map[string]string
}

// MaintenanceDates groups the optional service-date fields an inspection may
// update on its asset. A nil field means "leave unchanged".
type MaintenanceDates struct {
	LastHydroTestDate *time.Time
	NextHydroTestDue  *time.Time
	LastRefilledDate  *time.Time
	NextRefillDue     *time.Time
	DischargeDate     *time.Time
}

// IsZero reports whether no date is supplied.
func (m MaintenanceDates) IsZero() bool {
	return m.LastHydroTestDate == nil && m.NextHydroTestDue == nil &&
		m.LastRefilledDate == nil && m.NextRefillDue == nil && m.DischargeDate == nil
}

// AssetStatusUpdate is the write the recorder applies to an asset alongside
// an inspection. Nil pointer fields are not written, preserving any
// previously recorded value.
type AssetStatusUpdate struct {
	AssetID            uuid.UUID
	Status             AssetStatus
	LastInspectionDate *time.Time // set on create, untouched on correction
	NextInspectionDue  *time.Time
	Maintenance        MaintenanceDates
}
