package core

import (
	"fmt"

	"plancore/pkg/domain"
)

// NewEnergyRule returns the layer-5 energy-code window-to-wall ratio check.
func NewEnergyRule() domain.Rule {
	return energyRule{}
}

type energyRule struct{}

func (energyRule) ID() string { return "energy_code" }

func (energyRule) Layer() int { return 5 }

func (r energyRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	sc := ref.Constants()
	j := ref.Jurisdiction(plan.JurisdictionKey)

	var windowArea float64
	for _, room := range plan.Rooms {
		windowArea += room.WindowArea
	}
	// Wall area approximated from the interior bounding-box perimeter at a
	// fixed ceiling height.
	var wallArea float64
	if bounds, ok := domain.InteriorBounds(plan, ref); ok {
		wallArea = 2 * (bounds.Width + bounds.Height) * sc.CeilingHeightFt
	}

	res := ConstraintResult{
		ID:    r.ID(),
		Name:  "Energy code glazing ratio",
		Layer: r.Layer(),
	}
	switch {
	case windowArea > 0 && wallArea > 0 && windowArea/wallArea > sc.MaxWindowWallRatio:
		res.Status = StatusWarn
		res.Message = "Window-to-wall ratio exceeds the prescriptive energy-code limit."
		res.Witness = fmt.Sprintf("%.0f sqft glazing / %.0f sqft wall = %.0f%% > %.0f%%",
			windowArea, wallArea, windowArea/wallArea*100, sc.MaxWindowWallRatio*100)
		res.Resolution = "Reduce glazing or use performance-path compliance software."
	case windowArea == 0:
		res.Status = StatusPass
		res.Message = "No glazing data entered; prescriptive path assumed."
		if j.EnergyCode != "" {
			res.Witness = fmt.Sprintf("applicable energy code: %s", j.EnergyCode)
		}
	default:
		res.Status = StatusPass
		res.Message = "Window-to-wall ratio is within the prescriptive limit."
		res.Witness = fmt.Sprintf("%.0f sqft glazing / %.0f sqft wall", windowArea, wallArea)
	}
	return []ConstraintResult{res}
}
