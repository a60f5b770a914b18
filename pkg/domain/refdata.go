package domain

// Setbacks are the minimum distances between the building and each lot
// boundary, in feet.
type Setbacks struct {
	Front        float64 `json:"front" yaml:"front"`
	Rear         float64 `json:"rear" yaml:"rear"`
	SideInterior float64 `json:"side_interior" yaml:"side_interior"`
	SideCorner   float64 `json:"side_corner" yaml:"side_corner"`
}

// Jurisdiction captures the regulatory profile of one permitting authority.
// Optional numeric limits are pointers; nil means the jurisdiction imposes no
// such limit.
type Jurisdiction struct {
	Key                      string   `json:"key" yaml:"key"`
	Name                     string   `json:"name" yaml:"name"`
	Setbacks                 Setbacks `json:"setbacks" yaml:"setbacks"`
	MaxLotCoverage           *float64 `json:"max_lot_coverage,omitempty" yaml:"max_lot_coverage"`
	MaxHeight                *float64 `json:"max_height_ft,omitempty" yaml:"max_height_ft"`
	MinLotSize               *float64 `json:"min_lot_size_sqft,omitempty" yaml:"min_lot_size_sqft"`
	RequiresSurvey           bool     `json:"requires_survey" yaml:"requires_survey"`
	RequiresSealedFoundation bool     `json:"requires_sealed_foundation" yaml:"requires_sealed_foundation"`
	AdoptedCode              string   `json:"adopted_code" yaml:"adopted_code"`
	EnergyCode               string   `json:"energy_code" yaml:"energy_code"`
	FloodZone                bool     `json:"flood_zone" yaml:"flood_zone"`
	PermitRequirements       []string `json:"permit_requirements,omitempty" yaml:"permit_requirements"`
	LocalAmendments          []string `json:"local_amendments,omitempty" yaml:"local_amendments"`
}

// BuildingType describes one entry of the building-type table.
type BuildingType struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	MaxUnits int    `json:"max_units" yaml:"max_units"`
}

// RoomType describes one entry of the room-type table. Exterior categories
// (garage, porch) are excluded from structural and envelope calculations.
type RoomType struct {
	Key            string  `json:"key" yaml:"key"`
	Label          string  `json:"label" yaml:"label"`
	MinArea        float64 `json:"min_area_sqft" yaml:"min_area_sqft"`
	MinDimension   float64 `json:"min_dimension_ft" yaml:"min_dimension_ft"`
	RequiresEgress bool    `json:"requires_egress" yaml:"requires_egress"`
	Exterior       bool    `json:"exterior" yaml:"exterior"`
}

// StateConstants holds the state-wide numeric thresholds consumed by the
// licensing and engineering exemption layers.
type StateConstants struct {
	LicensingMaxUnits      int     `json:"licensing_max_units" yaml:"licensing_max_units"`
	TwoUnitStoryCap        int     `json:"two_unit_story_cap" yaml:"two_unit_story_cap"`
	MultiUnitStoryCap      int     `json:"multi_unit_story_cap" yaml:"multi_unit_story_cap"`
	EngineeringStoryCap    int     `json:"engineering_story_cap" yaml:"engineering_story_cap"`
	EngineeringMaxUnits    int     `json:"engineering_max_units" yaml:"engineering_max_units"`
	EngineeringMaxSpanFt   float64 `json:"engineering_max_span_ft" yaml:"engineering_max_span_ft"`
	SingleStoryMaxAreaSqft float64 `json:"single_story_max_area_sqft" yaml:"single_story_max_area_sqft"`
	SpanWarnFraction       float64 `json:"span_warn_fraction" yaml:"span_warn_fraction"`
	MinHallwayWidthFt      float64 `json:"min_hallway_width_ft" yaml:"min_hallway_width_ft"`
	CeilingHeightFt        float64 `json:"ceiling_height_ft" yaml:"ceiling_height_ft"`
	MaxWindowWallRatio     float64 `json:"max_window_wall_ratio" yaml:"max_window_wall_ratio"`
}

// ReferenceData provides the keyed lookups the rule layers evaluate against.
// Implementations never fail: a missing jurisdiction key resolves to the
// unincorporated default, and unknown building or room categories report !ok
// so callers can skip or default them.
type ReferenceData interface {
	Jurisdiction(key string) Jurisdiction
	BuildingType(key string) (BuildingType, bool)
	RoomType(key string) (RoomType, bool)
	Constants() StateConstants
}

// UnincorporatedJurisdiction is the fallback profile applied when a plan
// references a jurisdiction the provider does not know: zero setbacks, no
// survey or foundation requirements, and no adopted building code.
func UnincorporatedJurisdiction() Jurisdiction {
	return Jurisdiction{
		Key:  "unincorporated",
		Name: "Unincorporated county",
	}
}
