// This file defines the canonical equipment categories used by aggregation
// and reporting, and the synonym table that folds legacy type strings into
// them.
package domain

import "strings"

// Canonical equipment categories. These four are always present in
// aggregation output, even at zero count, so dashboards render a stable set
// of cards.
const (
	CategoryExtinguisher = "Fire Extinguisher"
	CategoryHoseReel     = "Fire Hose Reel"
	CategoryHydrant      = "Hydrant Hose Reel"
	CategorySandBucket   = "Fire Sand Bucket"
)

// CanonicalCategories lists the categories in report priority order.
var CanonicalCategories = []string{
	CategoryExtinguisher,
	CategoryHoseReel,
	CategoryHydrant,
	CategorySandBucket,
}

// categorySynonyms folds the type strings observed in legacy data onto the
// canonical categories. Matching is case-insensitive and whitespace-trimmed.
var categorySynonyms = map[string]string{
	"fire-extinguisher": CategoryExtinguisher,
	"fire extinguisher": CategoryExtinguisher,
	"fire hose reel":    CategoryHoseReel,
	"hose-reel":         CategoryHoseReel,
	"hydrant":           CategoryHydrant,
	"hydrant hose reel": CategoryHydrant,
	"fire bucket":       CategorySandBucket,
	"fire sand bucket":  CategorySandBucket,
	"sand-bucket":       CategorySandBucket,
}

// NormalizeCategory maps a raw asset type string to its canonical category.
// Unrecognized non-empty types are returned as-is (reports keep them as
// their own trailing sections); empty input returns the empty string, which
// aggregation treats as unknown and drops.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := categorySynonyms[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// IsCanonicalCategory reports whether t is one of the four fixed categories.
func IsCanonicalCategory(t string) bool {
	switch t {
	case CategoryExtinguisher, CategoryHoseReel, CategoryHydrant, CategorySandBucket:
		return true
	}
	return false
}

// CategoryPriority returns the report ordering rank for a type: canonical
// categories keep their fixed position, anything else sorts after them.
func CategoryPriority(t string) int {
	for i, c := range CanonicalCategories {
		if c == t {
			return i
		}
	}
	return len(CanonicalCategories)
}
