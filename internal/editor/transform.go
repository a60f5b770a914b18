// Package editor implements the floor-plan editing session: the coordinate
// transform, the pointer-driven interaction state machine, and the undoable
// command model over a plan's rooms.
package editor

import "math"

// GridUnit is the snap granularity in feet. Zoom changes the rendered grid
// density, never the snap granularity.
const GridUnit = 1.0

// Mode selects which gesture family pointer events drive.
type Mode string

// Editing modes.
const (
	ModeSelect Mode = "select"
	ModeDraw   Mode = "draw"
	ModePan    Mode = "pan"
)

// ViewState maps world coordinates (feet, top-left origin) to screen pixels.
// It is session-only state and is never persisted.
type ViewState struct {
	Scale   float64 // pixels per foot
	OffsetX float64
	OffsetY float64
}

// WorldToScreen converts a world point to screen pixels.
func (v ViewState) WorldToScreen(x, y float64) (float64, float64) {
	return x*v.Scale + v.OffsetX, y*v.Scale + v.OffsetY
}

// ScreenToWorld converts a screen point to world feet.
func (v ViewState) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - v.OffsetX) / v.Scale, (sy - v.OffsetY) / v.Scale
}

// SnapToGrid rounds a world coordinate to the nearest grid line. Idempotent.
func SnapToGrid(v float64) float64 {
	return math.Round(v/GridUnit) * GridUnit
}

// ZoomAt rescales the view so the world point under the given screen position
// stays fixed on screen.
func (v *ViewState) ZoomAt(sx, sy, newScale float64) {
	if newScale <= 0 {
		return
	}
	wx, wy := v.ScreenToWorld(sx, sy)
	v.Scale = newScale
	v.OffsetX = sx - wx*newScale
	v.OffsetY = sy - wy*newScale
}
