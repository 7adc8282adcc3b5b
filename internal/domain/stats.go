// This file implements category health aggregation: pure, total functions
// over inspection or asset collections. Malformed rows are folded into an
// unknown bucket and dropped, never surfaced as errors.
package domain

import (
	"math"

	"github.com/google/uuid"
)

// CategoryStat is one category's slice of an aggregation.
type CategoryStat struct {
	Total       int `json:"total"`
	Operational int `json:"operational"`
	Health      int `json:"health"` // round(operational/total*100), 0 at zero total
}

// AggregateResult summarizes a collection of inspections or assets into
// status counts and per-category health. Breakdown always contains the four
// canonical categories, plus any unrecognized types present in the input.
type AggregateResult struct {
	Total       int                     `json:"total"`
	Passed      int                     `json:"passed"`
	Failed      int                     `json:"failed"`
	Maintenance int                     `json:"maintenance"`
	Breakdown   map[string]CategoryStat `json:"breakdown"`
}

const unknownCategory = "Unknown"

func emptyBreakdown() map[string]CategoryStat {
	b := make(map[string]CategoryStat, len(CanonicalCategories))
	for _, c := range CanonicalCategories {
		b[c] = CategoryStat{}
	}
	return b
}

// categoryFor resolves a raw type to its breakdown bucket.
func categoryFor(raw string) string {
	c := NormalizeCategory(raw)
	if c == "" {
		return unknownCategory
	}
	return c
}

func finalize(b map[string]CategoryStat) {
	delete(b, unknownCategory)
	for key, stat := range b {
		if stat.Total > 0 {
			stat.Health = int(math.Round(float64(stat.Operational) / float64(stat.Total) * 100))
			b[key] = stat
		}
	}
}

// AggregateInspections summarizes an inspector-scoped inspection set.
// assetTypes maps asset id to raw type; inspections whose asset is missing
// from the map count toward the totals but not toward any visible category.
func AggregateInspections(inspections []Inspection, assetTypes map[uuid.UUID]string) AggregateResult {
	result := AggregateResult{Breakdown: emptyBreakdown()}

	for _, insp := range inspections {
		result.Total++
		switch insp.Status {
		case InspectionPass:
			result.Passed++
		case InspectionFail:
			result.Failed++
		case InspectionMaintenance:
			result.Maintenance++
		}

		cat := categoryFor(assetTypes[insp.AssetID])
		stat := result.Breakdown[cat]
		stat.Total++
		if insp.Status == InspectionPass {
			stat.Operational++
		}
		result.Breakdown[cat] = stat
	}

	finalize(result.Breakdown)
	return result
}

// AggregateAssets summarizes the whole fleet by current asset status. Assets
// pending their first inspection count toward totals only; there is no
// per-inspection Fail outcome at this scope, so Failed stays zero.
func AggregateAssets(assets []Asset) AggregateResult {
	result := AggregateResult{Breakdown: emptyBreakdown()}

	for _, a := range assets {
		result.Total++
		switch a.Status {
		case AssetStatusOperational:
			result.Passed++
		case AssetStatusMaintenance:
			result.Maintenance++
		}

		cat := categoryFor(a.Type)
		stat := result.Breakdown[cat]
		stat.Total++
		if a.Status == AssetStatusOperational {
			stat.Operational++
		}
		result.Breakdown[cat] = stat
	}

	finalize(result.Breakdown)
	return result
}
