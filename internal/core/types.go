package core

import "plancore/pkg/domain"

type (
	EntityType       = domain.EntityType
	Status           = domain.Status
	Plan             = domain.Plan
	Room             = domain.Room
	Change           = domain.Change
	Action           = domain.Action
	ConstraintResult = domain.ConstraintResult
	Evaluation       = domain.Evaluation
	Report           = domain.Report
	Summary          = domain.Summary
	ReferenceData    = domain.ReferenceData
	Rule             = domain.Rule
	RulesEngine      = domain.RulesEngine
)

const (
	EntityPlan = domain.EntityPlan
	EntityRoom = domain.EntityRoom
)

const (
	StatusPass = domain.StatusPass
	StatusWarn = domain.StatusWarn
	StatusFail = domain.StatusFail
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
