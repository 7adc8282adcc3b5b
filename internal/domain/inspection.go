// This file defines the Inspection domain type: one checklist-based
// examination of one asset by one user.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Inspection Status
// =============================================================================

// InspectionStatus is the outcome of an inspection. Unlike Asset.Type this is
// a closed set; any other value is a data-entry error rejected at the
// boundary.
type InspectionStatus string

const (
	InspectionPass        InspectionStatus = "Pass"
	InspectionFail        InspectionStatus = "Fail"
	InspectionMaintenance InspectionStatus = "Maintenance"
)

// String returns the string representation of the status.
func (s InspectionStatus) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s InspectionStatus) IsValid() bool {
	switch s {
	case InspectionPass, InspectionFail, InspectionMaintenance:
		return true
	}
	return false
}

// =============================================================================
// Findings
// =============================================================================

// Inspection type tags recorded in findings. The field is an open string;
// these are the values the checklist UI submits.
const (
	InspectionTypeMonthly   = "Monthly"
	InspectionTypeQuarterly = "Quarterly"
	InspectionTypeAnnual    = "Annual"
	InspectionTypeRoutine   = "Routine"
	InspectionTypeSurprise  = "Surprise"
)

// Findings holds the structured checklist answers captured during an
// inspection, stored as a JSONB document.
type Findings struct {
	// Checklist maps a checklist step id to the chosen option,
	// e.g. "pressure_gauge" -> "Green Zone".
	Checklist map[string]string `json:"checklist,omitempty"`

	// Remarks is the inspector's free-text note.
	Remarks string `json:"remarks,omitempty"`

	// InspectionType tags the cadence, e.g. Monthly or Annual.
	InspectionType string `json:"inspection_type,omitempty"`
}

// =============================================================================
// Inspection Domain Type
// =============================================================================

// MaxEvidencePhotos caps the number of photo references per inspection.
const MaxEvidencePhotos = 6

// Inspection represents one inspection event against one asset.
type Inspection struct {
	ID             uuid.UUID
	AssetID        uuid.UUID
	InspectorID    uuid.UUID
	InspectionDate time.Time
	Status         InspectionStatus
	Findings       Findings
	EvidencePhotos []string // ordered opaque blob-store keys, 0..6
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Computed fields populated by queries for display; not stored.
	InspectorName string
	AssetSerial   string
}

// =============================================================================
// Service Parameters
// =============================================================================

// RecordInspectionParams contains the payload for recording a new inspection.
type RecordInspectionParams struct {
	AssetID        uuid.UUID
	Inspector      Principal
	Status         InspectionStatus
	Findings       Findings
	EvidencePhotos []string
	Maintenance    MaintenanceDates
}

// ReviseInspectionParams contains the payload for correcting an existing
// inspection in place. The original inspection date is preserved unless
// InspectionDate is supplied.
type ReviseInspectionParams struct {
	ID             uuid.UUID
	Status         InspectionStatus
	Findings       Findings
	EvidencePhotos []string
	Maintenance    MaintenanceDates
	InspectionDate *time.Time
}
