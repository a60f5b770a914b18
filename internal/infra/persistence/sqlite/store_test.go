package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"plancore/pkg/domain"
)

type stubRef struct{}

func (stubRef) Jurisdiction(string) domain.Jurisdiction { return domain.UnincorporatedJurisdiction() }
func (stubRef) BuildingType(string) (domain.BuildingType, bool) {
	return domain.BuildingType{}, false
}
func (stubRef) RoomType(string) (domain.RoomType, bool) { return domain.RoomType{}, false }
func (stubRef) Constants() domain.StateConstants        { return domain.StateConstants{} }

func TestSnapshotSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	ctx := context.Background()

	store, err := NewStore(path, domain.NewRulesEngine(), stubRef{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	var created domain.Plan
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePlan(domain.Plan{
			Name:  "cottage",
			Rooms: []domain.Room{{Category: "bedroom", Width: 10, Height: 12}},
		})
		return err
	}); err != nil {
		t.Fatalf("RunInTransaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, domain.NewRulesEngine(), stubRef{})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, ok := reopened.GetPlan(created.ID)
	if !ok {
		t.Fatalf("plan %s missing after reopen", created.ID)
	}
	if got.Name != "cottage" || len(got.Rooms) != 1 {
		t.Fatalf("snapshot round trip mangled plan: %+v", got)
	}
}

func TestUpdateOverwritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	ctx := context.Background()

	store, err := NewStore(path, domain.NewRulesEngine(), stubRef{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = store.Close() }()

	var created domain.Plan
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePlan(domain.Plan{Name: "v1"})
		return err
	}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		_, err := tx.UpdatePlan(created.ID, func(p *domain.Plan) error {
			p.Name = "v2"
			return nil
		})
		return err
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&count); err != nil {
		t.Fatalf("count buckets: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single plans bucket, got %d", count)
	}
}

func TestDefaultPathFallback(t *testing.T) {
	t.Chdir(t.TempDir())
	store, err := NewStore("", domain.NewRulesEngine(), stubRef{})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	defer func() { _ = store.Close() }()
	if store.Path() != "plancore.db" {
		t.Fatalf("unexpected default path %q", store.Path())
	}
}
