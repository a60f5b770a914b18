package editor

import (
	"plancore/pkg/domain"
)

// Handle identifies one of the eight resize handles around a selected room:
// four corners plus four edge midpoints.
type Handle string

// Resize handles, named by compass position.
const (
	HandleNW Handle = "nw"
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
)

// HandleHitRadius is the screen-space pick radius around each handle, in
// pixels.
const HandleHitRadius = 8.0

// MinRoomDimension is the smallest width or height a room may reach through
// resize, in feet. Resizes clamp at this floor instead of rejecting.
const MinRoomDimension = 2.0

// handlePositions returns the world coordinates of every handle for a room.
func handlePositions(r domain.Room) map[Handle][2]float64 {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	right := r.X + r.Width
	bottom := r.Y + r.Height
	return map[Handle][2]float64{
		HandleNW: {r.X, r.Y},
		HandleN:  {cx, r.Y},
		HandleNE: {right, r.Y},
		HandleE:  {right, cy},
		HandleSE: {right, bottom},
		HandleS:  {cx, bottom},
		HandleSW: {r.X, bottom},
		HandleW:  {r.X, cy},
	}
}

// handleOrder fixes the test sequence so corner handles win over edge
// midpoints when hit circles overlap on a tiny room.
var handleOrder = []Handle{
	HandleNW, HandleNE, HandleSE, HandleSW, HandleN, HandleE, HandleS, HandleW,
}

// HitHandle returns the handle of the room lying within HandleHitRadius of
// the screen point, if any.
func HitHandle(r domain.Room, view ViewState, sx, sy float64) (Handle, bool) {
	positions := handlePositions(r)
	for _, h := range handleOrder {
		pos := positions[h]
		hx, hy := view.WorldToScreen(pos[0], pos[1])
		dx := sx - hx
		dy := sy - hy
		if dx*dx+dy*dy <= HandleHitRadius*HandleHitRadius {
			return h, true
		}
	}
	return "", false
}

// applyHandle moves the given handle of the room to the (snapped) world
// point, updating the one or two rectangle fields that handle controls.
// Width and height are clamped so they never drop below MinRoomDimension;
// when a clamp engages the opposite edge stays fixed.
func applyHandle(r domain.Room, h Handle, wx, wy float64) domain.Room {
	wx = SnapToGrid(wx)
	wy = SnapToGrid(wy)
	right := r.X + r.Width
	bottom := r.Y + r.Height

	moveLeft := func() {
		if wx > right-MinRoomDimension {
			wx = right - MinRoomDimension
		}
		r.X = wx
		r.Width = right - wx
	}
	moveRight := func() {
		if wx < r.X+MinRoomDimension {
			wx = r.X + MinRoomDimension
		}
		r.Width = wx - r.X
	}
	moveTop := func() {
		if wy > bottom-MinRoomDimension {
			wy = bottom - MinRoomDimension
		}
		r.Y = wy
		r.Height = bottom - wy
	}
	moveBottom := func() {
		if wy < r.Y+MinRoomDimension {
			wy = r.Y + MinRoomDimension
		}
		r.Height = wy - r.Y
	}

	switch h {
	case HandleNW:
		moveLeft()
		moveTop()
	case HandleN:
		moveTop()
	case HandleNE:
		moveRight()
		moveTop()
	case HandleE:
		moveRight()
	case HandleSE:
		moveRight()
		moveBottom()
	case HandleS:
		moveBottom()
	case HandleSW:
		moveLeft()
		moveBottom()
	case HandleW:
		moveLeft()
	}
	return r
}
