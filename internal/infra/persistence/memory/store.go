// Package memory provides the in-memory transactional plan store. Durable
// backends wrap it with snapshot persistence.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"plancore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

type (
	// Plan aliases domain.Plan for persistence operations.
	Plan = domain.Plan
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Report aliases domain.Report summarizing rule evaluation.
	Report = domain.Report
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Plans map[string]Plan `json:"plans"`
}

func snapshotFromState(state map[string]Plan) Snapshot {
	s := Snapshot{Plans: make(map[string]Plan, len(state))}
	for k, v := range state {
		s.Plans[k] = v.Clone()
	}
	return s
}

func stateFromSnapshot(s Snapshot) map[string]Plan {
	state := make(map[string]Plan, len(s.Plans))
	for k, v := range s.Plans {
		state[k] = v.Clone()
	}
	return state
}

func cloneState(state map[string]Plan) map[string]Plan {
	cloned := make(map[string]Plan, len(state))
	for k, v := range state {
		cloned[k] = v.Clone()
	}
	return cloned
}

// Store provides an in-memory transactional store for floor plans. Commits
// clone the committed state, apply the transaction body, re-run the rules
// engine against every touched plan, and swap the new state in atomically.
type Store struct {
	mu     sync.RWMutex
	state  map[string]Plan
	engine *RulesEngine
	ref    domain.ReferenceData
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store evaluating the provided engine
// against the given reference data on every commit.
func NewStore(engine *RulesEngine, ref domain.ReferenceData) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  make(map[string]Plan),
		engine: engine,
		ref:    ref,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	return uuid.NewString()
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.Plans == nil {
		snapshot.Plans = map[string]Plan{}
	}
	s.state = stateFromSnapshot(snapshot)
}

// RulesEngine exposes the configured engine for integration points.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

type transaction struct {
	store   *Store
	state   map[string]Plan
	changes []Change
	now     time.Time
}

type transactionView struct {
	state map[string]Plan
}

// ListPlans returns all plans within the transaction snapshot, ordered by id.
func (v transactionView) ListPlans() []Plan {
	out := make([]Plan, 0, len(v.state))
	for _, p := range v.state {
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// FindPlan retrieves a plan by id from the snapshot.
func (v transactionView) FindPlan(id string) (Plan, bool) {
	p, ok := v.state[id]
	if !ok {
		return Plan{}, false
	}
	return p.Clone(), true
}

// RunInTransaction executes fn within a transactional copy of the store
// state. The rules engine runs over every plan the transaction touched; the
// report carries the findings and the commit succeeds regardless of their
// status.
func (s *Store) RunInTransaction(_ context.Context, fn func(tx Transaction) error) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: cloneState(s.state),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Report{}, err
	}

	var report Report
	if s.engine != nil {
		for _, id := range tx.touchedPlanIDs() {
			plan, ok := tx.state[id]
			if !ok {
				continue // deleted in this transaction
			}
			results := s.engine.Evaluate(plan, s.ref)
			report.Evaluations = append(report.Evaluations, domain.Evaluation{
				PlanID:  id,
				Status:  domain.WorstStatus(results),
				Results: results,
				Summary: domain.Summarize(plan, s.ref),
			})
		}
	}

	s.state = tx.state
	return report, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := cloneState(s.state)
	return fn(transactionView{state: snapshot})
}

// GetPlan fetches a committed plan by id.
func (s *Store) GetPlan(id string) (Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.state[id]
	if !ok {
		return Plan{}, false
	}
	return p.Clone(), true
}

// ListPlans returns every committed plan ordered by id.
func (s *Store) ListPlans() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return transactionView{state: s.state}.ListPlans()
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// touchedPlanIDs returns the distinct plan ids changed in this transaction,
// in first-touched order.
func (tx *transaction) touchedPlanIDs() []string {
	seen := make(map[string]struct{}, len(tx.changes))
	var ids []string
	for _, change := range tx.changes {
		if change.PlanID == "" {
			continue
		}
		if _, ok := seen[change.PlanID]; ok {
			continue
		}
		seen[change.PlanID] = struct{}{}
		ids = append(ids, change.PlanID)
	}
	return ids
}

// CreatePlan stores a new plan within the transaction.
func (tx *transaction) CreatePlan(p Plan) (Plan, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state[p.ID]; exists {
		return Plan{}, fmt.Errorf("plan %q already exists", p.ID)
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	for i := range p.Rooms {
		if p.Rooms[i].ID == "" {
			p.Rooms[i].ID = tx.store.newID()
		}
	}
	tx.state[p.ID] = p.Clone()
	tx.recordChange(Change{Entity: domain.EntityPlan, Action: domain.ActionCreate, PlanID: p.ID, After: p.Clone()})
	return p.Clone(), nil
}

// UpdatePlan mutates a plan using the provided mutator function.
func (tx *transaction) UpdatePlan(id string, mutator func(*Plan) error) (Plan, error) {
	current, ok := tx.state[id]
	if !ok {
		return Plan{}, fmt.Errorf("plan %q not found", id)
	}
	before := current.Clone()
	current = current.Clone()
	if err := mutator(&current); err != nil {
		return Plan{}, err
	}
	current.ID = id
	current.UpdatedAt = tx.now
	for i := range current.Rooms {
		if current.Rooms[i].ID == "" {
			current.Rooms[i].ID = tx.store.newID()
		}
	}
	tx.state[id] = current.Clone()
	tx.recordChange(Change{Entity: domain.EntityPlan, Action: domain.ActionUpdate, PlanID: id, Before: before, After: current.Clone()})
	return current.Clone(), nil
}

// DeletePlan removes a plan from the transaction state.
func (tx *transaction) DeletePlan(id string) error {
	current, ok := tx.state[id]
	if !ok {
		return fmt.Errorf("plan %q not found", id)
	}
	delete(tx.state, id)
	tx.recordChange(Change{Entity: domain.EntityPlan, Action: domain.ActionDelete, PlanID: id, Before: current.Clone()})
	return nil
}

// FindPlan exposes plan lookup within the transaction scope.
func (tx *transaction) FindPlan(id string) (Plan, bool) {
	p, ok := tx.state[id]
	if !ok {
		return Plan{}, false
	}
	return p.Clone(), true
}
