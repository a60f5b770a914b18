package core

import "plancore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the seven built-in
// constraint layers in their canonical order.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewLicensingRule())
	engine.Register(NewEngineeringRule())
	engine.Register(NewFoundationRule())
	engine.Register(NewRoomMinimumsRule())
	engine.Register(NewEnergyRule())
	engine.Register(NewZoningRule())
	engine.Register(NewSetbackRule())
	return engine
}

// unitCount resolves the dwelling-unit count for a plan, defaulting to a
// single unit when the building type is unknown.
func unitCount(plan Plan, ref ReferenceData) int {
	if bt, ok := ref.BuildingType(plan.BuildingTypeKey); ok {
		return bt.MaxUnits
	}
	return 1
}
