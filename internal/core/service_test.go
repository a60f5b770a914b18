package core

import (
	"context"
	"errors"
	"testing"

	"plancore/internal/editor"
	"plancore/pkg/domain"
)

func newTestService(opts ...ServiceOption) *Service {
	return NewInMemoryService(NewDefaultRulesEngine(), fixedRef{}, opts...)
}

func TestServicePlanLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, report, err := svc.CreatePlan(ctx, complianceFixturePlan())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated id")
	}
	if len(report.Evaluations) != 1 {
		t.Fatalf("expected evaluation in commit report, got %+v", report)
	}
	if report.Worst() == StatusFail {
		t.Fatalf("fixture plan should not fail: %+v", report)
	}

	updated, report, err := svc.UpdatePlan(ctx, created.ID, func(p *Plan) error {
		p.Stories = 4
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stories != 4 {
		t.Fatalf("mutator not applied: %+v", updated)
	}
	// Four stories trip the licensing story cap and the zoning height limit.
	if report.Worst() != StatusFail {
		t.Fatalf("expected failing report after update, got %s", report.Worst())
	}

	got, err := svc.GetPlan(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stories != 4 {
		t.Fatalf("stale read: %+v", got)
	}

	if plans := svc.ListPlans(ctx); len(plans) != 1 {
		t.Fatalf("expected one plan, got %d", len(plans))
	}

	if _, err := svc.DeletePlan(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetPlan(ctx, created.ID); err == nil {
		t.Fatal("expected not-found after delete")
	}
}

func TestServiceGetPlanNotFound(t *testing.T) {
	svc := newTestService()
	_, err := svc.GetPlan(context.Background(), "missing")
	var notFound ErrNotFound
	if !errors.As(err, &notFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if notFound.ID != "missing" {
		t.Fatalf("unexpected error payload: %+v", notFound)
	}
}

func TestServiceEvaluateStoredPlan(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, _, err := svc.CreatePlan(ctx, complianceFixturePlan())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ev, err := svc.Evaluate(ctx, created.ID)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ev.PlanID != created.ID {
		t.Fatalf("evaluation for wrong plan: %+v", ev)
	}
	if ev.Status != domain.WorstStatus(ev.Results) {
		t.Fatalf("badge does not match results: %+v", ev)
	}
	if ev.Summary.RoomCount != len(created.Rooms) {
		t.Fatalf("summary missing rooms: %+v", ev.Summary)
	}

	if _, err := svc.Evaluate(ctx, "missing"); err == nil {
		t.Fatal("expected not-found for unknown plan")
	}
}

func TestServiceApplyCommand(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, _, err := svc.CreatePlan(ctx, complianceFixturePlan())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, report, err := svc.ApplyCommand(ctx, created.ID, editor.MoveRoom{ID: "bed-1", X: 14, Y: 34})
	if err != nil {
		t.Fatalf("apply command: %v", err)
	}
	room, _ := updated.FindRoom("bed-1")
	if room == nil || room.X != 14 || room.Y != 34 {
		t.Fatalf("move not applied: %+v", updated.Rooms)
	}
	if len(report.Evaluations) != 1 {
		t.Fatalf("expected a fresh evaluation in the commit report, got %+v", report)
	}

	if _, _, err := svc.ApplyCommand(ctx, created.ID, editor.MoveRoom{ID: "no-such-room", X: 0, Y: 0}); err == nil {
		t.Fatal("expected failure for unknown room")
	}
	// A failed command must not leave partial state behind.
	got, err := svc.GetPlan(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if room, _ := got.FindRoom("bed-1"); room == nil || room.X != 14 {
		t.Fatalf("stored plan mutated by failed command: %+v", got.Rooms)
	}
}

func TestServiceEvaluatePlanSnapshot(t *testing.T) {
	svc := newTestService()
	plan := complianceFixturePlan()
	plan.Rooms = append(plan.Rooms, Room{
		ID: "bed-2", Category: "bedroom", X: 36, Y: 30, Width: 6, Height: 8,
	})

	ev := svc.EvaluatePlan(context.Background(), plan)
	if ev.Status != StatusFail {
		t.Fatalf("undersized bedroom should fail the snapshot, got %s", ev.Status)
	}
}
