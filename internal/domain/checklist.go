// This file defines the IS 2190:2024 Annex-H inspection checklists per
// equipment type. The checklist served for an asset drives the findings
// structure inspectors submit from the field.
package domain

// ChecklistStep is one item on an inspection checklist.
type ChecklistStep struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Checklist is the ordered set of steps for one equipment type.
type Checklist struct {
	Title string          `json:"title"`
	Steps []ChecklistStep `json:"steps"`
}

// checklistWaterBucket is served for sand-bucket assets whose bucket_type
// specification is "Water".
const checklistWaterBucket = "Fire Water Bucket"

var checklists = map[string]Checklist{
	CategoryExtinguisher: {
		Title: "Fire Extinguisher Inspection",
		Steps: []ChecklistStep{
			{ID: "pressure_gauge", Label: "Pressure Gauge", Options: []string{"Green Zone", "Not in Green Zone", "N/A"}},
			{ID: "safety_seal", Label: "Safety Pin & Seal", Options: []string{"Intact", "Tampered or Missing", "N/A"}},
			{ID: "hose_nozzle", Label: "Nozzle & Discharge Hose", Options: []string{"Clear & Flexible", "Blocked or Cracked", "N/A"}},
			{ID: "physical_condition", Label: "Physical Condition", Options: []string{"No Damage", "Visible Rust or Dents", "N/A"}},
			{ID: "accessibility", Label: "Accessibility & Visibility", Options: []string{"Clear", "Obstructed", "N/A"}},
			{ID: "instructions", Label: "Operating Instructions", Options: []string{"Legible", "Faded or Damaged", "N/A"}},
			{ID: "signage", Label: "Signage", Options: []string{"Legible", "Faded or Damaged", "N/A"}},
		},
	},
	CategoryHoseReel: {
		Title: "Fire Hose Reel Inspection",
		Steps: []ChecklistStep{
			{ID: "cabinet_condition", Label: "Cabinet Condition", Options: []string{"Clean & Intact", "Damaged or Dirty", "N/A"}},
			{ID: "glass_panel", Label: "Glass / Front Panel", Options: []string{"Intact", "Broken or Missing", "N/A"}},
			{ID: "drum_rotation", Label: "Drum Rotation", Options: []string{"Smooth", "Jammed or Stiff", "N/A"}},
			{ID: "hose_condition", Label: "Hose Condition", Options: []string{"Properly Wound", "Damaged or Leaking", "N/A"}},
			{ID: "spray_nozzle", Label: "Spray Nozzle", Options: []string{"Connected & Functional", "Missing or Leaking", "N/A"}},
			{ID: "operating_valve", Label: "Operating Valve", Options: []string{"Operational", "Jammed", "N/A"}},
			{ID: "accessibility", Label: "Accessibility", Options: []string{"Unobstructed", "Blocked", "N/A"}},
		},
	},
	CategoryHydrant: {
		Title: "Hydrant Hose Reel Inspection",
		Steps: []ChecklistStep{
			{ID: "hose_box_seal", Label: "Hose Box Seal", Options: []string{"Intact", "Broken", "N/A"}},
			{ID: "cabinet_door_glass", Label: "Cabinet Door & Glass", Options: []string{"Properly Closing", "Damaged", "N/A"}},
			{ID: "hose_condition", Label: "Hose Condition", Options: []string{"Rolled Correctly", "Fungus or Stiffness Detected", "N/A"}},
			{ID: "nozzle_condition", Label: "Nozzle (Single/Multi)", Options: []string{"Attached & Operational", "Missing", "N/A"}},
			{ID: "hydrant_valve", Label: "Hydrant Valve", Options: []string{"No Leaks", "Visible Corrosion or Leakage", "N/A"}},
			{ID: "signages", Label: "Signages", Options: []string{"Clear & Visible", "Missing or Faded", "N/A"}},
		},
	},
	CategorySandBucket: {
		Title: "Fire Sand Bucket Inspection",
		Steps: []ChecklistStep{
			{ID: "sand_level", Label: "Sand Level", Options: []string{"Filled to Capacity", "Partial or Empty", "N/A"}},
			{ID: "sand_quality", Label: "Sand Quality", Options: []string{"Dry & Loose", "Wet or Lumpy", "Debris Found", "N/A"}},
			{ID: "bucket_condition", Label: "Bucket Condition", Options: []string{"Good Paint/No Rust", "Dented or Corroded", "Missing Bottom", "N/A"}},
			{ID: "shovel_handle", Label: "Shovel/Handle", Options: []string{"Present & Secure", "Missing or Damaged", "Loose Handle", "N/A"}},
			{ID: "stand_condition", Label: "Condition of Stand", Options: []string{"Stable & Painted", "Unstable or Rusted", "Damaged", "N/A"}},
			{ID: "visibility", Label: "Visibility", Options: []string{"Clear", "Obstructed by Debris", "Not Visible", "N/A"}},
		},
	},
	checklistWaterBucket: {
		Title: "Fire Water Bucket Inspection",
		Steps: []ChecklistStep{
			{ID: "water_level", Label: "Water Level", Options: []string{"Filled to Capacity", "Partial or Empty", "N/A"}},
			{ID: "water_quality", Label: "Water Quality", Options: []string{"Clean", "Stagnant/Dirty", "Mosquito Larvae", "N/A"}},
			{ID: "bucket_condition", Label: "Bucket Condition", Options: []string{"Good Paint/No Rust", "Dented or Corroded", "Leaking", "N/A"}},
			{ID: "handle", Label: "Handle/Mug", Options: []string{"Present & Secure", "Missing or Damaged", "N/A"}},
			{ID: "stand_condition", Label: "Condition of Stand", Options: []string{"Stable & Painted", "Unstable or Rusted", "Damaged", "N/A"}},
			{ID: "visibility", Label: "Visibility", Options: []string{"Clear", "Obstructed by Debris", "Not Visible", "N/A"}},
		},
	},
}

// ChecklistFor returns the checklist for an asset, falling back to the fire
// extinguisher checklist for unrecognized types. Sand buckets holding water
// (bucket_type "Water") get the water-bucket variant.
func ChecklistFor(a *Asset) Checklist {
	key := NormalizeCategory(a.Type)
	if key == CategorySandBucket && a.Spec("bucket_type") == "Water" {
		key = checklistWaterBucket
	}
	if cl, ok := checklists[key]; ok {
		return cl
	}
	return checklists[CategoryExtinguisher]
}
