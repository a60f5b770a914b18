package core

import "plancore/pkg/domain"

// fixedRef is an in-memory reference-data fixture mirroring the shipped
// default tables closely enough for rule tests.
type fixedRef struct{}

func (fixedRef) Jurisdiction(key string) domain.Jurisdiction {
	switch key {
	case "austin":
		maxCoverage := 0.45
		maxHeight := 35.0
		minLot := 5750.0
		return domain.Jurisdiction{
			Key:  "austin",
			Name: "City of Austin",
			Setbacks: domain.Setbacks{
				Front: 25, Rear: 5, SideInterior: 5, SideCorner: 15,
			},
			MaxLotCoverage:           &maxCoverage,
			MaxHeight:                &maxHeight,
			MinLotSize:               &minLot,
			RequiresSurvey:           true,
			RequiresSealedFoundation: true,
			AdoptedCode:              "2021 IRC",
			EnergyCode:               "2021 IECC, climate zone 2A",
			LocalAmendments:          []string{"McMansion ordinance FAR limits"},
		}
	case "floodville":
		return domain.Jurisdiction{
			Key: "floodville", Name: "Floodville",
			AdoptedCode: "2018 IRC",
			FloodZone:   true,
		}
	default:
		return domain.UnincorporatedJurisdiction()
	}
}

func (fixedRef) BuildingType(key string) (domain.BuildingType, bool) {
	types := map[string]domain.BuildingType{
		"single_family": {Key: "single_family", Label: "Single-family dwelling", MaxUnits: 1},
		"duplex":        {Key: "duplex", Label: "Duplex", MaxUnits: 2},
		"fourplex":      {Key: "fourplex", Label: "Fourplex", MaxUnits: 4},
		"sixplex":       {Key: "sixplex", Label: "Sixplex", MaxUnits: 6},
	}
	bt, ok := types[key]
	return bt, ok
}

func (fixedRef) RoomType(key string) (domain.RoomType, bool) {
	types := map[string]domain.RoomType{
		"bedroom":  {Key: "bedroom", Label: "bedroom", MinArea: 70, MinDimension: 7, RequiresEgress: true},
		"bathroom": {Key: "bathroom", Label: "bathroom", MinArea: 18, MinDimension: 3},
		"kitchen":  {Key: "kitchen", Label: "kitchen", MinArea: 50, MinDimension: 5},
		"living":   {Key: "living", Label: "living room", MinArea: 120, MinDimension: 10},
		"hallway":  {Key: "hallway", Label: "hallway"},
		"garage":   {Key: "garage", Label: "garage", Exterior: true},
		"porch":    {Key: "porch", Label: "porch", Exterior: true},
	}
	rt, ok := types[key]
	return rt, ok
}

func (fixedRef) Constants() domain.StateConstants {
	return domain.StateConstants{
		LicensingMaxUnits:      4,
		TwoUnitStoryCap:        3,
		MultiUnitStoryCap:      2,
		EngineeringStoryCap:    2,
		EngineeringMaxUnits:    4,
		EngineeringMaxSpanFt:   24,
		SingleStoryMaxAreaSqft: 5000,
		SpanWarnFraction:       0.85,
		MinHallwayWidthFt:      3,
		CeilingHeightFt:        9,
		MaxWindowWallRatio:     0.30,
	}
}

// onLayer filters results down to one layer.
func onLayer(results []ConstraintResult, layer int) []ConstraintResult {
	var out []ConstraintResult
	for _, r := range results {
		if r.Layer == layer {
			out = append(out, r)
		}
	}
	return out
}
