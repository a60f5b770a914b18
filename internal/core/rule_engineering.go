package core

import (
	"fmt"

	"plancore/pkg/domain"
)

// NewEngineeringRule returns the layer-2 engineering exemption check covering
// story count, clear span, single-story floor area, and unit count. Unlike
// layer 1, every failing condition appends its own result.
func NewEngineeringRule() domain.Rule {
	return engineeringRule{}
}

type engineeringRule struct{}

func (engineeringRule) ID() string { return "engineering_exemption" }

func (engineeringRule) Layer() int { return 2 }

func (r engineeringRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	sc := ref.Constants()
	units := unitCount(plan, ref)
	maxSpan := domain.MaxClearSpan(plan, ref)
	totalArea := domain.InteriorArea(plan, ref)

	result := func(status Status, message, witness, resolution string) ConstraintResult {
		return ConstraintResult{
			ID:         r.ID(),
			Name:       "Engineering exemption",
			Layer:      r.Layer(),
			Status:     status,
			Message:    message,
			Witness:    witness,
			Resolution: resolution,
		}
	}

	var failures []ConstraintResult
	if plan.Stories > sc.EngineeringStoryCap {
		failures = append(failures, result(StatusFail,
			"Story count exceeds the engineering exemption cap.",
			fmt.Sprintf("%d stories > %d story cap", plan.Stories, sc.EngineeringStoryCap),
			"Sealed structural plans from a licensed engineer are required."))
	}
	if maxSpan > sc.EngineeringMaxSpanFt {
		failures = append(failures, result(StatusFail,
			"Clear span exceeds the engineering exemption limit.",
			fmt.Sprintf("%.1f ft span > %.1f ft limit", maxSpan, sc.EngineeringMaxSpanFt),
			"Reduce the clear span or engage a licensed engineer."))
	}
	if plan.Stories == 1 && totalArea > sc.SingleStoryMaxAreaSqft {
		failures = append(failures, result(StatusFail,
			"Single-story floor area exceeds the engineering exemption limit.",
			fmt.Sprintf("%.0f sqft > %.0f sqft threshold", totalArea, sc.SingleStoryMaxAreaSqft),
			"Reduce the floor area or engage a licensed engineer."))
	}
	if units > sc.EngineeringMaxUnits {
		failures = append(failures, result(StatusFail,
			"Unit count exceeds the engineering exemption cap.",
			fmt.Sprintf("%d units > %d unit cap", units, sc.EngineeringMaxUnits),
			"Sealed structural plans from a licensed engineer are required."))
	}
	if len(failures) > 0 {
		return failures
	}

	if maxSpan > sc.SpanWarnFraction*sc.EngineeringMaxSpanFt {
		return []ConstraintResult{result(StatusWarn,
			"Clear span is approaching the engineering exemption limit.",
			fmt.Sprintf("%.1f ft span > %.0f%% of the %.1f ft limit", maxSpan, sc.SpanWarnFraction*100, sc.EngineeringMaxSpanFt),
			"Consider a load-bearing wall or beam to break up the span.")}
	}
	return []ConstraintResult{result(StatusPass,
		"Project qualifies for the engineering exemption.",
		fmt.Sprintf("%.1f ft max span, %.0f sqft", maxSpan, totalArea),
		"")}
}
