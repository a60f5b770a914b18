package editor

import (
	"testing"

	"plancore/pkg/domain"
)

func TestCreateDeleteUndoRedo(t *testing.T) {
	plan := &domain.Plan{}
	var history History

	if err := history.Do(plan, CreateRoom{Room: domain.Room{ID: "r1", Width: 10, Height: 10}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(plan.Rooms) != 1 {
		t.Fatalf("room not added: %+v", plan.Rooms)
	}

	if err := history.Undo(plan); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(plan.Rooms) != 0 {
		t.Fatalf("undo did not remove room: %+v", plan.Rooms)
	}

	if err := history.Redo(plan); err != nil {
		t.Fatalf("redo: %v", err)
	}
	if len(plan.Rooms) != 1 || plan.Rooms[0].ID != "r1" {
		t.Fatalf("redo did not restore room: %+v", plan.Rooms)
	}
}

func TestDeleteRestoresFullRoom(t *testing.T) {
	room := domain.Room{
		ID: "r1", Category: "bedroom", Label: "Primary",
		X: 4, Y: 6, Width: 12, Height: 11,
		HasEgressWindow: true, WindowArea: 9,
	}
	plan := &domain.Plan{Rooms: []domain.Room{room}}
	var history History

	if err := history.Do(plan, DeleteRoom{ID: "r1"}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := history.Undo(plan); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if len(plan.Rooms) != 1 || plan.Rooms[0] != room {
		t.Fatalf("restored room lost fields: %+v", plan.Rooms)
	}
}

func TestMoveAndResizeInverses(t *testing.T) {
	plan := &domain.Plan{Rooms: []domain.Room{{ID: "r1", X: 0, Y: 0, Width: 10, Height: 10}}}
	var history History

	if err := history.Do(plan, MoveRoom{ID: "r1", X: 5, Y: 7}); err != nil {
		t.Fatalf("move: %v", err)
	}
	if err := history.Do(plan, ResizeRoom{ID: "r1", X: 5, Y: 7, Width: 20, Height: 4}); err != nil {
		t.Fatalf("resize: %v", err)
	}

	if err := history.Undo(plan); err != nil {
		t.Fatalf("undo resize: %v", err)
	}
	if got := plan.Rooms[0]; got.Width != 10 || got.Height != 10 || got.X != 5 {
		t.Fatalf("resize undo wrong: %+v", got)
	}
	if err := history.Undo(plan); err != nil {
		t.Fatalf("undo move: %v", err)
	}
	if got := plan.Rooms[0]; got.X != 0 || got.Y != 0 {
		t.Fatalf("move undo wrong: %+v", got)
	}
}

func TestNewMutationClearsRedo(t *testing.T) {
	plan := &domain.Plan{}
	var history History

	if err := history.Do(plan, CreateRoom{Room: domain.Room{ID: "r1", Width: 5, Height: 5}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := history.Undo(plan); err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !history.CanRedo() {
		t.Fatal("expected redo entry")
	}
	if err := history.Do(plan, CreateRoom{Room: domain.Room{ID: "r2", Width: 5, Height: 5}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if history.CanRedo() {
		t.Fatal("redo stack should clear on new mutation")
	}
}

func TestResizeRejectsBelowMinimum(t *testing.T) {
	plan := &domain.Plan{Rooms: []domain.Room{{ID: "r1", Width: 10, Height: 10}}}
	var history History

	if err := history.Do(plan, ResizeRoom{ID: "r1", Width: 1, Height: 10}); err == nil {
		t.Fatal("expected sub-minimum resize to be rejected")
	}
	if history.CanUndo() {
		t.Fatal("failed command must not enter history")
	}
}
