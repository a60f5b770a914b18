package core

import (
	"fmt"

	"plancore/pkg/domain"
)

// NewFoundationRule returns the layer-3 foundation engineering lookup.
func NewFoundationRule() domain.Rule {
	return foundationRule{}
}

type foundationRule struct{}

func (foundationRule) ID() string { return "foundation_engineering" }

func (foundationRule) Layer() int { return 3 }

func (r foundationRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	j := ref.Jurisdiction(plan.JurisdictionKey)
	res := ConstraintResult{
		ID:    r.ID(),
		Name:  "Foundation engineering",
		Layer: r.Layer(),
	}
	if j.RequiresSealedFoundation {
		res.Status = StatusWarn
		res.Message = "Jurisdiction requires foundation plans sealed by a licensed engineer."
		res.Witness = fmt.Sprintf("%s flags sealed foundation plans", j.Name)
		res.Resolution = "Budget for a geotechnical report and engineered slab design."
	} else {
		res.Status = StatusPass
		res.Message = "No sealed foundation plans required."
	}
	return []ConstraintResult{res}
}
