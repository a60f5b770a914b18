package editor

import (
	"math"

	"github.com/google/uuid"

	"plancore/pkg/domain"
)

// MinDrawSize is the smallest committed draw gesture, in feet per axis.
// Smaller rectangles are discarded as pointer noise.
const MinDrawSize = 2.0

// Session owns one plan during editing. Pointer events are processed fully
// and synchronously: mutate, then re-run the rule stack, before the next
// event is accepted. There is exactly one writer (the session) so no locking
// is involved.
type Session struct {
	plan   *domain.Plan
	view   ViewState
	mode   Mode
	engine *domain.RulesEngine
	ref    domain.ReferenceData

	history History
	results []domain.ConstraintResult

	selectedID   string
	drawCategory string

	// Gesture flags are mutually exclusive; pointer-up clears them all
	// unconditionally.
	drawing              bool
	drawStartX, drawStartY float64
	drawEndX, drawEndY     float64

	dragging               bool
	dragOffsetX, dragOffsetY float64
	dragOrigin             MoveRoom

	resizing     bool
	resizeHandle Handle
	resizeOrigin ResizeRoom

	panning              bool
	panStartX, panStartY float64
	panBaseX, panBaseY   float64
}

// NewSession wraps a plan for editing. The engine and reference data drive
// the re-evaluation that follows every committed mutation; either may be nil
// for pure-geometry tests.
func NewSession(plan *domain.Plan, engine *domain.RulesEngine, ref domain.ReferenceData) *Session {
	s := &Session{
		plan:         plan,
		view:         ViewState{Scale: 10},
		mode:         ModeSelect,
		engine:       engine,
		ref:          ref,
		drawCategory: "bedroom",
	}
	s.refresh()
	return s
}

// Plan returns a snapshot of the plan being edited.
func (s *Session) Plan() domain.Plan { return s.plan.Clone() }

// View returns the current view state.
func (s *Session) View() ViewState { return s.view }

// Mode returns the current interaction mode.
func (s *Session) Mode() Mode { return s.mode }

// SetMode switches gesture families. Any in-flight gesture is abandoned.
func (s *Session) SetMode(mode Mode) {
	s.clearGesture()
	s.mode = mode
}

// SetDrawCategory sets the room category assigned to newly drawn rooms.
func (s *Session) SetDrawCategory(category string) { s.drawCategory = category }

// SelectedRoomID returns the id of the selected room, or empty.
func (s *Session) SelectedRoomID() string { return s.selectedID }

// Results returns the constraint results from the latest evaluation.
func (s *Session) Results() []domain.ConstraintResult {
	return append([]domain.ConstraintResult(nil), s.results...)
}

// Status returns the overall badge for the latest evaluation.
func (s *Session) Status() domain.Status { return domain.WorstStatus(s.results) }

// Zoom rescales around the pointer so the world point under it stays fixed.
func (s *Session) Zoom(sx, sy, newScale float64) {
	s.view.ZoomAt(sx, sy, newScale)
}

// PointerDown begins a gesture for the current mode.
func (s *Session) PointerDown(sx, sy float64) {
	wx, wy := s.view.ScreenToWorld(sx, sy)
	switch s.mode {
	case ModeDraw:
		s.drawing = true
		s.drawStartX = SnapToGrid(wx)
		s.drawStartY = SnapToGrid(wy)
		s.drawEndX = s.drawStartX
		s.drawEndY = s.drawStartY
	case ModePan:
		s.panning = true
		s.panStartX = sx
		s.panStartY = sy
		s.panBaseX = s.view.OffsetX
		s.panBaseY = s.view.OffsetY
	case ModeSelect:
		s.pointerDownSelect(sx, sy, wx, wy)
	}
}

// pointerDownSelect tests the selected room's handles before falling back to
// whole-scene hit-testing.
func (s *Session) pointerDownSelect(sx, sy, wx, wy float64) {
	if s.selectedID != "" {
		if room, _ := s.plan.FindRoom(s.selectedID); room != nil {
			if h, ok := HitHandle(*room, s.view, sx, sy); ok {
				s.resizing = true
				s.resizeHandle = h
				s.resizeOrigin = ResizeRoom{
					ID: room.ID, X: room.X, Y: room.Y, Width: room.Width, Height: room.Height,
				}
				return
			}
		}
	}
	if hit, ok := HitRoom(*s.plan, wx, wy); ok {
		s.selectedID = hit.ID
		s.dragging = true
		s.dragOffsetX = wx - hit.X
		s.dragOffsetY = wy - hit.Y
		s.dragOrigin = MoveRoom{ID: hit.ID, X: hit.X, Y: hit.Y}
		return
	}
	s.selectedID = ""
}

// PointerMove advances the active gesture, if any.
func (s *Session) PointerMove(sx, sy float64) {
	wx, wy := s.view.ScreenToWorld(sx, sy)
	switch {
	case s.drawing:
		s.drawEndX = SnapToGrid(wx)
		s.drawEndY = SnapToGrid(wy)
	case s.panning:
		s.view.OffsetX = s.panBaseX + (sx - s.panStartX)
		s.view.OffsetY = s.panBaseY + (sy - s.panStartY)
	case s.dragging:
		if room, _ := s.plan.FindRoom(s.selectedID); room != nil {
			room.X = SnapToGrid(wx - s.dragOffsetX)
			room.Y = SnapToGrid(wy - s.dragOffsetY)
			s.refresh()
		}
	case s.resizing:
		if room, _ := s.plan.FindRoom(s.selectedID); room != nil {
			*room = applyHandle(*room, s.resizeHandle, wx, wy)
			s.refresh()
		}
	}
}

// PointerUp commits the active gesture as a single undo entry and clears all
// transient gesture state, including for gestures that moved nothing.
func (s *Session) PointerUp() {
	switch {
	case s.drawing:
		s.commitDraw()
	case s.dragging:
		if room, _ := s.plan.FindRoom(s.selectedID); room != nil {
			if room.X != s.dragOrigin.X || room.Y != s.dragOrigin.Y {
				s.history.record(s.dragOrigin)
			}
		}
	case s.resizing:
		if room, _ := s.plan.FindRoom(s.selectedID); room != nil {
			o := s.resizeOrigin
			if room.X != o.X || room.Y != o.Y || room.Width != o.Width || room.Height != o.Height {
				s.history.record(o)
			}
		}
	}
	s.clearGesture()
}

// commitDraw turns the draw rectangle into a room when it clears the noise
// threshold. The rectangle is normalized so width and height are positive
// regardless of drag direction.
func (s *Session) commitDraw() {
	width := math.Abs(s.drawEndX - s.drawStartX)
	height := math.Abs(s.drawEndY - s.drawStartY)
	if width < MinDrawSize || height < MinDrawSize {
		return
	}
	room := domain.Room{
		ID:       uuid.NewString(),
		Category: s.drawCategory,
		X:        math.Min(s.drawStartX, s.drawEndX),
		Y:        math.Min(s.drawStartY, s.drawEndY),
		Width:    width,
		Height:   height,
	}
	if err := s.history.Do(s.plan, CreateRoom{Room: room}); err != nil {
		return
	}
	s.selectedID = room.ID
	s.refresh()
}

// DrawPreview returns the normalized in-progress draw rectangle.
func (s *Session) DrawPreview() (domain.Rect, bool) {
	if !s.drawing {
		return domain.Rect{}, false
	}
	return domain.Rect{
		X:      math.Min(s.drawStartX, s.drawEndX),
		Y:      math.Min(s.drawStartY, s.drawEndY),
		Width:  math.Abs(s.drawEndX - s.drawStartX),
		Height: math.Abs(s.drawEndY - s.drawStartY),
	}, true
}

// DeleteSelected removes the selected room as an undoable command.
func (s *Session) DeleteSelected() {
	if s.selectedID == "" {
		return
	}
	if err := s.history.Do(s.plan, DeleteRoom{ID: s.selectedID}); err != nil {
		return
	}
	s.selectedID = ""
	s.refresh()
}

// Undo reverses the most recent committed gesture.
func (s *Session) Undo() {
	if err := s.history.Undo(s.plan); err != nil {
		return
	}
	s.dropDanglingSelection()
	s.refresh()
}

// Redo re-applies the most recently undone gesture.
func (s *Session) Redo() {
	if err := s.history.Redo(s.plan); err != nil {
		return
	}
	s.dropDanglingSelection()
	s.refresh()
}

// CanUndo reports whether an undo entry exists.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether a redo entry exists.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

func (s *Session) dropDanglingSelection() {
	if s.selectedID == "" {
		return
	}
	if room, _ := s.plan.FindRoom(s.selectedID); room == nil {
		s.selectedID = ""
	}
}

func (s *Session) clearGesture() {
	s.drawing = false
	s.dragging = false
	s.resizing = false
	s.panning = false
}

// refresh re-runs the full rule stack against the current plan snapshot.
func (s *Session) refresh() {
	if s.engine == nil || s.ref == nil {
		s.results = nil
		return
	}
	s.results = s.engine.Evaluate(*s.plan, s.ref)
}
