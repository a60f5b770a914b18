package domain

import "context"

// Transaction exposes the plan operations a persistence implementation must
// support within an atomic scope.
type Transaction interface {
	CreatePlan(Plan) (Plan, error)
	UpdatePlan(id string, mutator func(*Plan) error) (Plan, error)
	DeletePlan(id string) error
	FindPlan(id string) (Plan, bool)
}

// TransactionView provides read-only access to committed state.
type TransactionView interface {
	ListPlans() []Plan
	FindPlan(id string) (Plan, bool)
}

// PersistentStore is a minimal abstraction over durable backends. Commits
// re-run the rules engine against every plan touched in the transaction and
// return the resulting report; findings are data, never errors, so a failing
// plan still commits.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Report, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetPlan(id string) (Plan, bool)
	ListPlans() []Plan
}
