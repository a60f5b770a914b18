package domain

// Status captures a single constraint outcome.
type Status string

// Constraint statuses ordered fail > warn > pass.
const (
	// StatusPass indicates the check is satisfied.
	StatusPass Status = "pass"
	// StatusWarn indicates a non-blocking advisory finding.
	StatusWarn Status = "warn"
	// StatusFail indicates a violated constraint.
	StatusFail Status = "fail"
)

// rank orders statuses for worst-of aggregation.
func (s Status) rank() int {
	switch s {
	case StatusFail:
		return 2
	case StatusWarn:
		return 1
	default:
		return 0
	}
}

// ConstraintResult is one explainable finding emitted by a rule layer.
// Results are immutable once produced; the full set is recomputed from
// scratch on every plan change.
type ConstraintResult struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Layer      int    `json:"layer"`
	Status     Status `json:"status"`
	Message    string `json:"message"`
	Witness    string `json:"witness,omitempty"`
	Resolution string `json:"resolution,omitempty"`
}

// WorstStatus folds a result set into its overall badge: fail if any fail,
// else warn if any warn, else pass.
func WorstStatus(results []ConstraintResult) Status {
	worst := StatusPass
	for _, r := range results {
		if r.Status.rank() > worst.rank() {
			worst = r.Status
		}
	}
	return worst
}

// Evaluation bundles the full result set and derived summary for one plan.
type Evaluation struct {
	PlanID  string             `json:"plan_id"`
	Status  Status             `json:"status"`
	Results []ConstraintResult `json:"results"`
	Summary Summary            `json:"summary"`
}

// Report aggregates evaluations produced within one transaction.
type Report struct {
	Evaluations []Evaluation `json:"evaluations"`
}

// Merge appends evaluations from another report.
func (r *Report) Merge(other Report) {
	if len(other.Evaluations) == 0 {
		return
	}
	r.Evaluations = append(r.Evaluations, other.Evaluations...)
}

// Worst returns the worst status across all evaluations in the report.
func (r Report) Worst() Status {
	worst := StatusPass
	for _, ev := range r.Evaluations {
		if ev.Status.rank() > worst.rank() {
			worst = ev.Status
		}
	}
	return worst
}
