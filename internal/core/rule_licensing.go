package core

import (
	"fmt"

	"plancore/pkg/domain"
)

// NewLicensingRule returns the layer-1 architect licensing exemption check.
func NewLicensingRule() domain.Rule {
	return licensingRule{}
}

type licensingRule struct{}

func (licensingRule) ID() string { return "licensing_exemption" }

func (licensingRule) Layer() int { return 1 }

// Evaluate checks the licensing exemption thresholds in order and reports the
// first condition matched. Only one issue is ever emitted even when several
// apply; this first-match behavior is deliberate and tracked as an open
// product question rather than normalized to collect-all.
func (r licensingRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	sc := ref.Constants()
	j := ref.Jurisdiction(plan.JurisdictionKey)
	units := unitCount(plan, ref)

	emit := func(status Status, message, witness, resolution string) []ConstraintResult {
		return []ConstraintResult{{
			ID:         r.ID(),
			Name:       "Architect licensing exemption",
			Layer:      r.Layer(),
			Status:     status,
			Message:    message,
			Witness:    witness,
			Resolution: resolution,
		}}
	}

	if units > sc.LicensingMaxUnits {
		return emit(StatusFail,
			"Building exceeds the state licensing exemption unit count.",
			fmt.Sprintf("%d units > %d unit exemption maximum", units, sc.LicensingMaxUnits),
			"Engage a licensed architect or reduce the unit count.")
	}
	if units <= 2 && plan.Stories > sc.TwoUnitStoryCap {
		return emit(StatusFail,
			"Story count exceeds the exemption cap for one- and two-unit buildings.",
			fmt.Sprintf("%d stories > %d story cap for <=2 units", plan.Stories, sc.TwoUnitStoryCap),
			"Engage a licensed architect or reduce the story count.")
	}
	if units > 2 && plan.Stories > sc.MultiUnitStoryCap {
		return emit(StatusFail,
			"Story count exceeds the exemption cap for multi-unit buildings.",
			fmt.Sprintf("%d stories > %d story cap for >2 units", plan.Stories, sc.MultiUnitStoryCap),
			"Engage a licensed architect or reduce the story count.")
	}
	if units > 2 && j.AdoptedCode == "" {
		return emit(StatusWarn,
			"Multi-unit building in a jurisdiction with no adopted building code.",
			fmt.Sprintf("%d units in %s", units, j.Name),
			"Confirm applicable construction standards with the county before permitting.")
	}
	return emit(StatusPass,
		"Project qualifies for the architect licensing exemption.",
		fmt.Sprintf("%d unit(s), %d story(ies)", units, plan.Stories),
		"")
}
