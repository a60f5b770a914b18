package domain

import "sort"

// Rule is one constraint layer. Rules are stateless: they receive a plan
// snapshot plus reference data and return their own immutable result slice.
// Rules never return errors; degenerate input yields informational results.
type Rule interface {
	ID() string
	Layer() int
	Evaluate(plan Plan, ref ReferenceData) []ConstraintResult
}

// RulesEngine runs registered rules in ascending layer order and concatenates
// their results. Registration order breaks ties within a layer.
type RulesEngine struct {
	rules []Rule
}

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// Register appends a rule to the engine.
func (e *RulesEngine) Register(rule Rule) {
	e.rules = append(e.rules, rule)
}

// Rules returns the registered rules in evaluation order.
func (e *RulesEngine) Rules() []Rule {
	ordered := append([]Rule(nil), e.rules...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Layer() < ordered[j].Layer() })
	return ordered
}

// Evaluate runs every registered rule against the plan snapshot. The output
// is deterministic: identical input snapshots produce identical result
// slices.
func (e *RulesEngine) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	var results []ConstraintResult
	for _, rule := range e.Rules() {
		results = append(results, rule.Evaluate(plan, ref)...)
	}
	return results
}
