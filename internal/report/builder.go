// Package report builds and renders IS 2190:2024 Annex-H style asset
// registers. The builder transforms assets and their inspection histories
// into typed tabular sections; the CSV and PDF renderers serialize those
// sections without re-deriving any data.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ignisguard/server/internal/domain"
)

// dateLayout renders dates dd/mm/yyyy, matching the printed register format.
const dateLayout = "02/01/2006"

// maxRemarks caps how many historical remarks are folded into one cell.
const maxRemarks = 2

// placeholder fills cells with no data.
const placeholder = "-"

// =============================================================================
// Output Types
// =============================================================================

// StatusHint classifies a row for the renderer to color. The builder never
// renders color itself.
type StatusHint string

const (
	HintPass    StatusHint = "pass"
	HintFail    StatusHint = "fail"
	HintNeutral StatusHint = "neutral"
)

// ColumnSpec is one column of a section, in render order.
type ColumnSpec struct {
	Header string `json:"header"`
	Key    string `json:"key"`
}

// Row is one asset's line in a section. Cells is keyed by ColumnSpec.Key;
// every column of the owning section has an entry.
type Row struct {
	Cells map[string]string `json:"cells"`

	// Hint colors the status cell.
	Hint StatusHint `json:"hint"`

	// EvidenceKey references the newest inspection's first photo, for
	// thumbnail embedding by the PDF renderer. Empty when no photo exists.
	EvidenceKey string `json:"evidence_key,omitempty"`
}

// Section is one per-type table of the register.
type Section struct {
	Type    string       `json:"type"`
	Title   string       `json:"title"`
	Columns []ColumnSpec `json:"columns"`
	Rows    []Row        `json:"rows"`

	// AnnexHeader marks the section that carries the full Annex H preamble
	// in the PDF rendering.
	AnnexHeader bool `json:"annex_header,omitempty"`
}

// Report is the full register.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	Sections    []Section `json:"sections"`
}

// AssetWithHistory pairs an asset with its inspection history, newest-first.
type AssetWithHistory struct {
	Asset       domain.Asset
	Inspections []domain.Inspection
}

// =============================================================================
// Column Schemas
// =============================================================================

// Column keys shared across schemas.
const (
	colSl         = "sl"
	colSerial     = "serial"
	colTypeSpec   = "type_spec"
	colCapacity   = "capacity"
	colYear       = "year"
	colMake       = "make"
	colLocation   = "location"
	colMonthly    = "monthly"
	colQuarterly  = "quarterly"
	colAnnual     = "annual"
	colDischarge  = "discharge"
	colLastRefill = "last_refill"
	colNextRefill = "next_refill"
	colLastHydro  = "last_hydro"
	colNextHydro  = "next_hydro"
	colDrumType   = "drum_type"
	colCoupling   = "coupling"
	colCabinet    = "cabinet"
	colBucketType = "bucket_type"
	colStandID    = "stand_id"
	colLastInsp   = "last_insp"
	colStatus     = "status"
	colRemarks    = "remarks"
	colEvidence   = "evidence"
)

// columnSchemas is the closed per-type column table. Types absent here fall
// back to the generic schema. Every schema is extended with the trailing
// Status/Remarks/Evidence columns at build time.
var columnSchemas = map[string][]ColumnSpec{
	domain.CategoryExtinguisher: {
		{Header: "Sl", Key: colSl},
		{Header: "Asset No", Key: colSerial},
		{Header: "Type", Key: colTypeSpec},
		{Header: "Capacity", Key: colCapacity},
		{Header: "Year", Key: colYear},
		{Header: "Make", Key: colMake},
		{Header: "Location", Key: colLocation},
		{Header: "Monthly", Key: colMonthly},
		{Header: "Quarterly", Key: colQuarterly},
		{Header: "Annual", Key: colAnnual},
		{Header: "Discharge", Key: colDischarge},
		{Header: "Refilled", Key: colLastRefill},
		{Header: "Due Refill", Key: colNextRefill},
		{Header: "Hydro Test", Key: colLastHydro},
		{Header: "Next Hydro", Key: colNextHydro},
	},
	domain.CategoryHoseReel: {
		{Header: "Sl", Key: colSl},
		{Header: "Hose ID", Key: colSerial},
		{Header: "Drum Type", Key: colDrumType},
		{Header: "Length", Key: colCapacity},
		{Header: "Year", Key: colYear},
		{Header: "Make", Key: colMake},
		{Header: "Location", Key: colLocation},
		{Header: "Pressure Test", Key: colLastHydro},
		{Header: "Next Pressure", Key: colNextHydro},
		{Header: "Hose Replaced", Key: colLastRefill},
		{Header: "Next Replace", Key: colNextRefill},
	},
	domain.CategoryHydrant: {
		{Header: "Sl", Key: colSl},
		{Header: "Hydrant No", Key: colSerial},
		{Header: "Hose Size", Key: colCapacity},
		{Header: "Coupling", Key: colCoupling},
		{Header: "Cabinet", Key: colCabinet},
		{Header: "Year", Key: colYear},
		{Header: "Location", Key: colLocation},
		{Header: "Pressure Test", Key: colLastHydro},
		{Header: "Next Pressure", Key: colNextHydro},
		{Header: "Hose Replaced", Key: colLastRefill},
		{Header: "Next Replace", Key: colNextRefill},
	},
	domain.CategorySandBucket: {
		{Header: "Sl", Key: colSl},
		{Header: "Bucket No", Key: colSerial},
		{Header: "Material", Key: colBucketType},
		{Header: "Capacity", Key: colCapacity},
		{Header: "Stand ID", Key: colStandID},
		{Header: "Location", Key: colLocation},
		{Header: "Inspected On", Key: colLastInsp},
	},
}

var genericColumns = []ColumnSpec{
	{Header: "Sl", Key: colSl},
	{Header: "Asset No", Key: colSerial},
	{Header: "Type", Key: colTypeSpec},
	{Header: "Location", Key: colLocation},
	{Header: "Inspected On", Key: colLastInsp},
}

var trailingColumns = []ColumnSpec{
	{Header: "Status", Key: colStatus},
	{Header: "Remarks", Key: colRemarks},
	{Header: "Evidence", Key: colEvidence},
}

func columnsFor(assetType string) []ColumnSpec {
	base, ok := columnSchemas[assetType]
	if !ok {
		base = genericColumns
	}
	out := make([]ColumnSpec, 0, len(base)+len(trailingColumns))
	out = append(out, base...)
	out = append(out, trailingColumns...)
	return out
}

// =============================================================================
// Builder
// =============================================================================

// Build groups assets by normalized type and lays each group out against its
// column schema. typeFilter, when non-empty, restricts the report to one
// type. A malformed asset degrades to placeholder cells, never aborts the
// report.
func Build(assets []AssetWithHistory, typeFilter string, now time.Time) Report {
	groups := make(map[string][]AssetWithHistory)
	for _, a := range assets {
		t := domain.NormalizeCategory(a.Asset.Type)
		if t == "" {
			t = "Unknown"
		}
		if typeFilter != "" && t != typeFilter {
			continue
		}
		groups[t] = append(groups[t], a)
	}

	types := make([]string, 0, len(groups))
	for t := range groups {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		pi, pj := domain.CategoryPriority(types[i]), domain.CategoryPriority(types[j])
		if pi != pj {
			return pi < pj
		}
		return types[i] < types[j]
	})

	rep := Report{GeneratedAt: now}
	for _, t := range types {
		section := Section{
			Type:        t,
			Title:       fmt.Sprintf("REGISTER OF %s", strings.ToUpper(t)),
			Columns:     columnsFor(t),
			AnnexHeader: t == domain.CategoryExtinguisher,
		}
		for i, a := range groups[t] {
			section.Rows = append(section.Rows, buildRow(t, i+1, a))
		}
		rep.Sections = append(rep.Sections, section)
	}
	return rep
}

func buildRow(sectionType string, sl int, a AssetWithHistory) Row {
	asset := a.Asset
	history := a.Inspections

	var latest *domain.Inspection
	if len(history) > 0 {
		latest = &history[0]
	}

	cells := map[string]string{
		colSl:         fmt.Sprintf("%d", sl),
		colSerial:     orDash(asset.SerialNumber),
		colYear:       yearCell(asset.MfgYear),
		colMake:       orDash(asset.Make),
		colLocation:   orDash(asset.Location),
		colTypeSpec:   typeSpecCell(asset),
		colCapacity:   capacityCell(sectionType, asset),
		colDrumType:   orDash(asset.Spec("drum_type")),
		colCoupling:   orDash(asset.Spec("coupling_type")),
		colCabinet:    orDash(asset.Spec("cabinet_type")),
		colBucketType: bucketTypeCell(asset),
		colStandID:    orDash(asset.Spec("stand_id")),

		colMonthly:   datesByType(history, domain.InspectionTypeMonthly),
		colQuarterly: datesByType(history, domain.InspectionTypeQuarterly),
		colAnnual:    datesByType(history, domain.InspectionTypeAnnual),

		colLastHydro:  dateCell(asset.LastHydroTestDate),
		colNextHydro:  dateCell(asset.NextHydroTestDue),
		colDischarge:  dateCell(asset.DischargeDate),
		colLastRefill: dateCell(asset.LastRefilledDate),
		colNextRefill: dateCell(asset.NextRefillDue),
		colLastInsp:   latestDateCell(latest),

		colStatus:   orDash(string(asset.Status)),
		colRemarks:  remarksCell(history),
		colEvidence: "",
	}

	return Row{
		Cells:       cells,
		Hint:        hintFor(asset.Status),
		EvidenceKey: evidenceKey(latest),
	}
}

// =============================================================================
// Cell Helpers
// =============================================================================

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func yearCell(year int) string {
	if year == 0 {
		return placeholder
	}
	return fmt.Sprintf("%d", year)
}

func dateCell(t *time.Time) string {
	if t == nil {
		return placeholder
	}
	return t.Format(dateLayout)
}

func latestDateCell(latest *domain.Inspection) string {
	if latest == nil {
		return placeholder
	}
	return latest.InspectionDate.Format(dateLayout)
}

func typeSpecCell(asset domain.Asset) string {
	if s := asset.Spec("extinguisher_type"); s != "" {
		return s
	}
	return orDash(asset.Type)
}

func bucketTypeCell(asset domain.Asset) string {
	if s := asset.Spec("bucket_type"); s != "" {
		return s
	}
	return "Sand"
}

func capacityCell(sectionType string, asset domain.Asset) string {
	switch sectionType {
	case domain.CategoryHoseReel:
		return orDash(asset.Spec("hose_length"))
	case domain.CategoryHydrant:
		return orDash(asset.Spec("hose_size"))
	}
	if asset.Capacity == 0 {
		return placeholder
	}
	return strings.TrimSpace(fmt.Sprintf("%s %s", trimFloat(asset.Capacity), asset.Unit))
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// datesByType collects all distinct inspection dates carrying the given
// inspection type tag, oldest observed order preserved, comma-joined. An
// asset may have several historical Monthly inspections; all are shown.
func datesByType(history []domain.Inspection, inspectionType string) string {
	var (
		dates []string
		seen  = map[string]struct{}{}
	)
	for _, insp := range history {
		if insp.Findings.InspectionType != inspectionType {
			continue
		}
		d := insp.InspectionDate.Format(dateLayout)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return placeholder
	}
	return strings.Join(dates, ", ")
}

// remarksCell folds the first two non-empty remarks across the history.
func remarksCell(history []domain.Inspection) string {
	var remarks []string
	for _, insp := range history {
		r := strings.TrimSpace(insp.Findings.Remarks)
		if r == "" {
			continue
		}
		remarks = append(remarks, r)
		if len(remarks) == maxRemarks {
			break
		}
	}
	if len(remarks) == 0 {
		return placeholder
	}
	return strings.Join(remarks, ", ")
}

func hintFor(status domain.AssetStatus) StatusHint {
	switch status {
	case domain.AssetStatusOperational:
		return HintPass
	case domain.AssetStatusMaintenance:
		return HintFail
	}
	return HintNeutral
}

func evidenceKey(latest *domain.Inspection) string {
	if latest == nil || len(latest.EvidencePhotos) == 0 {
		return ""
	}
	return latest.EvidencePhotos[0]
}
