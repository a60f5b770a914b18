package core

import (
	"fmt"
	"strings"

	"plancore/pkg/domain"
)

// NewSetbackRule returns the layer-7 survey and setback check. Edge
// violations are collected into one combined fail record listing every
// violated edge.
func NewSetbackRule() domain.Rule {
	return setbackRule{}
}

type setbackRule struct{}

func (setbackRule) ID() string { return "survey_setbacks" }

func (setbackRule) Layer() int { return 7 }

func (r setbackRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	j := ref.Jurisdiction(plan.JurisdictionKey)

	result := func(status Status, message, witness, resolution string) ConstraintResult {
		return ConstraintResult{
			ID:         r.ID(),
			Name:       "Survey & setbacks",
			Layer:      r.Layer(),
			Status:     status,
			Message:    message,
			Witness:    witness,
			Resolution: resolution,
		}
	}

	var findings []ConstraintResult
	if j.RequiresSurvey && !plan.SurveyProvided {
		findings = append(findings, result(StatusWarn,
			"Jurisdiction requires a boundary survey and none is on file.",
			fmt.Sprintf("%s requires a survey with permit applications", j.Name),
			"Order a boundary survey from a registered surveyor."))
	}

	bounds, ok := domain.InteriorBounds(plan, ref)
	if !ok {
		findings = append(findings, result(StatusPass,
			"No building footprint to test against setbacks yet.",
			"",
			""))
		return findings
	}

	buildable := domain.BuildableRect(plan, j)
	var edges []string
	if bounds.X < buildable.X {
		edges = append(edges, fmt.Sprintf("left side (%.1f ft < %.1f ft setback line)", bounds.X, buildable.X))
	}
	if bounds.Right() > buildable.Right() {
		edges = append(edges, fmt.Sprintf("right side (%.1f ft > %.1f ft setback line)", bounds.Right(), buildable.Right()))
	}
	if bounds.Y < buildable.Y {
		edges = append(edges, fmt.Sprintf("front (%.1f ft < %.1f ft setback line)", bounds.Y, buildable.Y))
	}
	if bounds.Bottom() > buildable.Bottom() {
		edges = append(edges, fmt.Sprintf("rear (%.1f ft > %.1f ft setback line)", bounds.Bottom(), buildable.Bottom()))
	}

	if len(edges) > 0 {
		findings = append(findings, result(StatusFail,
			"Building footprint crosses required setbacks.",
			strings.Join(edges, "; "),
			"Move or shrink rooms so the footprint stays inside the buildable area."))
	} else {
		findings = append(findings, result(StatusPass,
			"Building footprint is inside the buildable area.",
			fmt.Sprintf("footprint %.1fx%.1f ft within setbacks", bounds.Width, bounds.Height),
			""))
	}
	return findings
}
