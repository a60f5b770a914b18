package core

import (
	"fmt"
	"strings"

	"plancore/pkg/domain"
)

// NewZoningRule returns the layer-6 local zoning amendment checks. Each
// applicable limit appends its own result independently.
func NewZoningRule() domain.Rule {
	return zoningRule{}
}

type zoningRule struct{}

func (zoningRule) ID() string { return "local_zoning" }

func (zoningRule) Layer() int { return 6 }

func (r zoningRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	j := ref.Jurisdiction(plan.JurisdictionKey)
	lotArea := plan.LotWidth * plan.LotDepth

	result := func(status Status, message, witness, resolution string) ConstraintResult {
		return ConstraintResult{
			ID:         r.ID(),
			Name:       "Local zoning",
			Layer:      r.Layer(),
			Status:     status,
			Message:    message,
			Witness:    witness,
			Resolution: resolution,
		}
	}

	var findings []ConstraintResult
	if lotArea <= 0 {
		return []ConstraintResult{result(StatusWarn,
			"Lot dimensions are not set.",
			"",
			"Enter the lot width and depth to run zoning checks.")}
	}

	if j.MaxLotCoverage != nil {
		coverage := domain.LotCoverage(plan, ref)
		if coverage > *j.MaxLotCoverage {
			findings = append(findings, result(StatusFail,
				"Building footprint exceeds the maximum lot coverage.",
				fmt.Sprintf("%.0f%% coverage > %.0f%% maximum", coverage*100, *j.MaxLotCoverage*100),
				"Shrink the footprint or seek a variance."))
		} else {
			findings = append(findings, result(StatusPass,
				"Lot coverage is within the zoning maximum.",
				fmt.Sprintf("%.0f%% coverage <= %.0f%% maximum", coverage*100, *j.MaxLotCoverage*100),
				""))
		}
	}
	if j.MaxHeight != nil {
		if est := domain.EstimatedHeight(plan.Stories); est > *j.MaxHeight {
			findings = append(findings, result(StatusFail,
				"Estimated building height exceeds the zoning maximum.",
				fmt.Sprintf("%.0f ft estimated > %.0f ft maximum", est, *j.MaxHeight),
				"Reduce the story count."))
		}
	}
	if j.MinLotSize != nil && lotArea < *j.MinLotSize {
		findings = append(findings, result(StatusFail,
			"Lot is smaller than the zoning minimum lot size.",
			fmt.Sprintf("%.0f sqft < %.0f sqft minimum", lotArea, *j.MinLotSize),
			"Verify the platted lot of record with the jurisdiction."))
	}
	if j.FloodZone {
		findings = append(findings, result(StatusWarn,
			"Jurisdiction includes mapped flood-hazard areas.",
			fmt.Sprintf("%s participates in the NFIP", j.Name),
			"Check the FIRM panel for this parcel before finalizing the slab elevation."))
	}
	if len(j.LocalAmendments) > 0 {
		findings = append(findings, result(StatusPass,
			"Local amendments apply; review before permitting.",
			strings.Join(j.LocalAmendments, "; "),
			""))
	}

	if len(findings) == 0 {
		return []ConstraintResult{result(StatusPass,
			"No local zoning limits apply.",
			fmt.Sprintf("%s has no adopted coverage, height, or lot-size limits", j.Name),
			"")}
	}
	return findings
}
