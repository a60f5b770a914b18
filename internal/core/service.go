package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"plancore/internal/editor"
	"plancore/pkg/domain"
)

// Service exposes higher-level transactional plan operations on top of a
// persistent store. Every commit re-runs the rules engine over the touched
// plans; findings travel in the returned report, never as errors.
type Service struct {
	store   PersistentStore
	engine  *RulesEngine
	ref     ReferenceData
	logger  *slog.Logger
	metrics MetricsRecorder
	tracer  Tracer
}

// ServiceOption customizes service construction.
type ServiceOption func(*Service)

// WithLogger attaches a structured logger to the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder attaches a metrics recorder to the service.
func WithMetricsRecorder(rec MetricsRecorder) ServiceOption {
	return func(s *Service) { s.metrics = rec }
}

// WithTracer attaches a tracer to the service.
func WithTracer(tracer Tracer) ServiceOption {
	return func(s *Service) { s.tracer = tracer }
}

// NewService constructs a service backed by the supplied store, engine, and
// reference data.
func NewService(store PersistentStore, engine *RulesEngine, ref ReferenceData, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		engine: engine,
		ref:    ref,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// instrument opens a span and returns a closure that records the outcome.
func (s *Service) instrument(ctx context.Context, operation string) (context.Context, func(err error)) {
	started := time.Now()
	var span TraceSpan
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, operation)
	}
	return ctx, func(err error) {
		elapsed := time.Since(started)
		if span != nil {
			span.End(err)
		}
		if s.metrics != nil {
			s.metrics.Observe(ctx, operation, err == nil, elapsed)
		}
		if err != nil {
			s.logger.ErrorContext(ctx, "plan operation failed",
				"operation", operation, "error", err, "duration_ms", elapsed.Milliseconds())
		} else {
			s.logger.DebugContext(ctx, "plan operation",
				"operation", operation, "duration_ms", elapsed.Milliseconds())
		}
	}
}

func (s *Service) recordReport(ctx context.Context, report domain.Report) {
	if s.metrics == nil {
		return
	}
	for _, ev := range report.Evaluations {
		s.metrics.RecordEvaluation(ctx, ev.Status)
	}
}

// CreatePlan persists a new plan and returns it with its evaluation report.
func (s *Service) CreatePlan(ctx context.Context, plan Plan) (Plan, Report, error) {
	ctx, done := s.instrument(ctx, "create_plan")
	var created Plan
	report, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePlan(plan)
		return err
	})
	done(err)
	s.recordReport(ctx, report)
	return created, report, err
}

// UpdatePlan mutates a plan using the provided mutator.
func (s *Service) UpdatePlan(ctx context.Context, id string, mutator func(*Plan) error) (Plan, Report, error) {
	ctx, done := s.instrument(ctx, "update_plan")
	var updated Plan
	report, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdatePlan(id, mutator)
		return err
	})
	done(err)
	s.recordReport(ctx, report)
	return updated, report, err
}

// ApplyCommand runs one editor command against a stored plan inside a
// transaction. The command's inverse is discarded; undo history belongs to
// the editing session, not the store.
func (s *Service) ApplyCommand(ctx context.Context, id string, cmd editor.Command) (Plan, Report, error) {
	ctx, done := s.instrument(ctx, "apply_command")
	var updated Plan
	report, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdatePlan(id, func(p *domain.Plan) error {
			_, applyErr := cmd.Apply(p)
			return applyErr
		})
		return err
	})
	done(err)
	s.recordReport(ctx, report)
	return updated, report, err
}

// DeletePlan removes a plan record.
func (s *Service) DeletePlan(ctx context.Context, id string) (Report, error) {
	ctx, done := s.instrument(ctx, "delete_plan")
	report, err := s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		return tx.DeletePlan(id)
	})
	done(err)
	return report, err
}

// GetPlan fetches a plan by id.
func (s *Service) GetPlan(ctx context.Context, id string) (Plan, error) {
	_, done := s.instrument(ctx, "get_plan")
	plan, ok := s.store.GetPlan(id)
	var err error
	if !ok {
		err = ErrNotFound{Entity: EntityPlan, ID: id}
	}
	done(err)
	return plan, err
}

// ListPlans returns every stored plan.
func (s *Service) ListPlans(ctx context.Context) []Plan {
	_, done := s.instrument(ctx, "list_plans")
	plans := s.store.ListPlans()
	done(nil)
	return plans
}

// Evaluate re-runs the full rule stack against a stored plan.
func (s *Service) Evaluate(ctx context.Context, id string) (Evaluation, error) {
	ctx, done := s.instrument(ctx, "evaluate_plan")
	plan, ok := s.store.GetPlan(id)
	if !ok {
		err := ErrNotFound{Entity: EntityPlan, ID: id}
		done(err)
		return Evaluation{}, err
	}
	ev := s.EvaluatePlan(ctx, plan)
	done(nil)
	return ev, nil
}

// EvaluatePlan runs the rule stack against an unsaved plan snapshot. The plan
// does not need to exist in the store.
func (s *Service) EvaluatePlan(ctx context.Context, plan Plan) Evaluation {
	results := s.engine.Evaluate(plan, s.ref)
	ev := Evaluation{
		PlanID:  plan.ID,
		Status:  domain.WorstStatus(results),
		Results: results,
		Summary: domain.Summarize(plan, s.ref),
	}
	if s.metrics != nil {
		s.metrics.RecordEvaluation(ctx, ev.Status)
	}
	return ev
}

// ErrNotFound is returned when a lookup misses.
type ErrNotFound struct {
	Entity EntityType
	ID     string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}
