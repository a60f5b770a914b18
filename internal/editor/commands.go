package editor

import (
	"fmt"

	"plancore/pkg/domain"
)

// Command is one reversible mutation of a plan's room list. Apply performs
// the mutation and returns the inverse command that undoes it.
type Command interface {
	Apply(plan *domain.Plan) (Command, error)
}

// CreateRoom appends a room to the plan.
type CreateRoom struct {
	Room domain.Room
}

// Apply adds the room and returns the deleting inverse.
func (c CreateRoom) Apply(plan *domain.Plan) (Command, error) {
	if c.Room.ID == "" {
		return nil, fmt.Errorf("create room: missing id")
	}
	if existing, _ := plan.FindRoom(c.Room.ID); existing != nil {
		return nil, fmt.Errorf("create room: %q already exists", c.Room.ID)
	}
	plan.Rooms = append(plan.Rooms, c.Room)
	return DeleteRoom{ID: c.Room.ID}, nil
}

// DeleteRoom removes a room by id.
type DeleteRoom struct {
	ID string
}

// Apply removes the room and returns a restoring inverse. The restored room
// re-enters at the top of the z-order; z-order is not an invariant worth
// preserving across undo.
func (c DeleteRoom) Apply(plan *domain.Plan) (Command, error) {
	room, idx := plan.FindRoom(c.ID)
	if room == nil {
		return nil, fmt.Errorf("delete room: %q not found", c.ID)
	}
	removed := *room
	plan.Rooms = append(plan.Rooms[:idx], plan.Rooms[idx+1:]...)
	return CreateRoom{Room: removed}, nil
}

// MoveRoom repositions a room's top-left corner.
type MoveRoom struct {
	ID   string
	X, Y float64
}

// Apply moves the room and returns the move back.
func (c MoveRoom) Apply(plan *domain.Plan) (Command, error) {
	room, _ := plan.FindRoom(c.ID)
	if room == nil {
		return nil, fmt.Errorf("move room: %q not found", c.ID)
	}
	inverse := MoveRoom{ID: c.ID, X: room.X, Y: room.Y}
	room.X = c.X
	room.Y = c.Y
	return inverse, nil
}

// ResizeRoom replaces a room's rectangle.
type ResizeRoom struct {
	ID            string
	X, Y          float64
	Width, Height float64
}

// Apply resizes the room and returns the resize back.
func (c ResizeRoom) Apply(plan *domain.Plan) (Command, error) {
	room, _ := plan.FindRoom(c.ID)
	if room == nil {
		return nil, fmt.Errorf("resize room: %q not found", c.ID)
	}
	if c.Width < MinRoomDimension || c.Height < MinRoomDimension {
		return nil, fmt.Errorf("resize room: %gx%g below %g ft minimum", c.Width, c.Height, MinRoomDimension)
	}
	inverse := ResizeRoom{ID: c.ID, X: room.X, Y: room.Y, Width: room.Width, Height: room.Height}
	room.X = c.X
	room.Y = c.Y
	room.Width = c.Width
	room.Height = c.Height
	return inverse, nil
}

// History tracks applied commands for undo/redo. One entry corresponds to
// one committed gesture.
type History struct {
	undo []Command
	redo []Command
}

// Do applies the command to the plan and records its inverse. The redo stack
// clears on any new mutation.
func (h *History) Do(plan *domain.Plan, cmd Command) error {
	inverse, err := cmd.Apply(plan)
	if err != nil {
		return err
	}
	h.undo = append(h.undo, inverse)
	h.redo = nil
	return nil
}

// record notes an already-applied gesture by its inverse, without re-applying
// anything. Used when a gesture mutated the plan incrementally and commits as
// a single undo entry on pointer-up.
func (h *History) record(inverse Command) {
	h.undo = append(h.undo, inverse)
	h.redo = nil
}

// Undo reverses the most recent entry.
func (h *History) Undo(plan *domain.Plan) error {
	if len(h.undo) == 0 {
		return nil
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	inverse, err := cmd.Apply(plan)
	if err != nil {
		return err
	}
	h.redo = append(h.redo, inverse)
	return nil
}

// Redo re-applies the most recently undone entry.
func (h *History) Redo(plan *domain.Plan) error {
	if len(h.redo) == 0 {
		return nil
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	inverse, err := cmd.Apply(plan)
	if err != nil {
		return err
	}
	h.undo = append(h.undo, inverse)
	return nil
}

// CanUndo reports whether an undo entry exists.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo entry exists.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
