// Package render produces an ordered display list from a plan and view
// state. It is a pure function of its inputs: no retained scene graph, no
// effect on the data model or the rule engine. Op order is the paint order.
package render

import (
	"fmt"
	"math"

	"plancore/internal/editor"
	"plancore/pkg/domain"
)

// OpKind distinguishes the primitive a display-list entry draws.
type OpKind string

// Display-list primitives.
const (
	OpLine  OpKind = "line"
	OpRect  OpKind = "rect"
	OpText  OpKind = "text"
	OpGlyph OpKind = "glyph"
)

// Classes tag ops by the pass that produced them, for styling and tests.
const (
	ClassGrid         = "grid"
	ClassGridMajor    = "grid-major"
	ClassLot          = "lot"
	ClassLotLabel     = "lot-label"
	ClassSetback      = "setback"
	ClassRoom         = "room"
	ClassRoomSelected = "room-selected"
	ClassRoomLabel    = "room-label"
	ClassPreview      = "preview"
	ClassDimension    = "dimension"
	ClassNorth        = "north"
)

// Op is one display-list entry in screen pixels. Lines use both endpoints;
// rects use (X1,Y1) top-left and (X2,Y2) bottom-right; text and glyphs
// anchor at (X1,Y1).
type Op struct {
	Kind   OpKind
	Class  string
	X1, Y1 float64
	X2, Y2 float64
	Dashed bool
	Text   string
}

// Options carries the session-dependent inputs that are not part of the plan.
type Options struct {
	SelectedRoomID string
	// Preview is the in-progress draw rectangle in world feet, when a draw
	// gesture is active.
	Preview *domain.Rect
}

// minLabelPx is the smallest on-screen room dimension that still gets a
// readable label.
const minLabelPx = 36.0

// Render builds the full display list for one frame.
func Render(plan domain.Plan, j domain.Jurisdiction, view editor.ViewState, opts Options) []Op {
	var ops []Op
	ops = append(ops, gridOps(plan, view)...)
	ops = append(ops, lotOps(plan, view)...)
	ops = append(ops, setbackOps(plan, j, view)...)
	ops = append(ops, roomOps(plan, view, opts.SelectedRoomID)...)
	ops = append(ops, previewOps(view, opts.Preview)...)
	ops = append(ops, dimensionOps(plan, view)...)
	ops = append(ops, Op{Kind: OpGlyph, Class: ClassNorth, X1: 24, Y1: 24, Text: "N"})
	return ops
}

// GridSpacing returns the minor grid spacing in feet for a zoom level. The
// density adapts so lines never crowd: fine grids only appear zoomed in.
func GridSpacing(scale float64) float64 {
	switch {
	case scale >= 20:
		return 1
	case scale >= 8:
		return 5
	default:
		return 10
	}
}

func gridOps(plan domain.Plan, view editor.ViewState) []Op {
	if plan.LotWidth <= 0 || plan.LotDepth <= 0 {
		return nil
	}
	spacing := GridSpacing(view.Scale)
	var ops []Op
	for x := 0.0; x <= plan.LotWidth+1e-9; x += spacing {
		x1, y1 := view.WorldToScreen(x, 0)
		x2, y2 := view.WorldToScreen(x, plan.LotDepth)
		ops = append(ops, Op{Kind: OpLine, Class: gridClass(x), X1: x1, Y1: y1, X2: x2, Y2: y2})
	}
	for y := 0.0; y <= plan.LotDepth+1e-9; y += spacing {
		x1, y1 := view.WorldToScreen(0, y)
		x2, y2 := view.WorldToScreen(plan.LotWidth, y)
		ops = append(ops, Op{Kind: OpLine, Class: gridClass(y), X1: x1, Y1: y1, X2: x2, Y2: y2})
	}
	return ops
}

// gridClass bolds every 10-ft major line.
func gridClass(v float64) string {
	if math.Mod(v, 10) == 0 {
		return ClassGridMajor
	}
	return ClassGrid
}

func lotOps(plan domain.Plan, view editor.ViewState) []Op {
	if plan.LotWidth <= 0 || plan.LotDepth <= 0 {
		return nil
	}
	x1, y1 := view.WorldToScreen(0, 0)
	x2, y2 := view.WorldToScreen(plan.LotWidth, plan.LotDepth)
	ops := []Op{{Kind: OpRect, Class: ClassLot, X1: x1, Y1: y1, X2: x2, Y2: y2}}

	midX, topY := view.WorldToScreen(plan.LotWidth/2, 0)
	leftX, midY := view.WorldToScreen(0, plan.LotDepth/2)
	ops = append(ops,
		Op{Kind: OpText, Class: ClassLotLabel, X1: midX, Y1: topY - 6, Text: formatFeet(plan.LotWidth)},
		Op{Kind: OpText, Class: ClassLotLabel, X1: leftX - 6, Y1: midY, Text: formatFeet(plan.LotDepth)},
	)
	return ops
}

func setbackOps(plan domain.Plan, j domain.Jurisdiction, view editor.ViewState) []Op {
	buildable := domain.BuildableRect(plan, j)
	if buildable.Width <= 0 || buildable.Height <= 0 {
		return nil
	}
	x1, y1 := view.WorldToScreen(buildable.X, buildable.Y)
	x2, y2 := view.WorldToScreen(buildable.Right(), buildable.Bottom())
	return []Op{{Kind: OpRect, Class: ClassSetback, X1: x1, Y1: y1, X2: x2, Y2: y2, Dashed: true}}
}

func roomOps(plan domain.Plan, view editor.ViewState, selectedID string) []Op {
	var ops []Op
	for _, room := range plan.Rooms {
		x1, y1 := view.WorldToScreen(room.X, room.Y)
		x2, y2 := view.WorldToScreen(room.X+room.Width, room.Y+room.Height)
		class := ClassRoom
		if room.ID == selectedID {
			class = ClassRoomSelected
		}
		ops = append(ops, Op{Kind: OpRect, Class: class, X1: x1, Y1: y1, X2: x2, Y2: y2})

		if x2-x1 < minLabelPx || y2-y1 < minLabelPx {
			continue
		}
		cx := (x1 + x2) / 2
		cy := (y1 + y2) / 2
		label := room.Label
		if label == "" {
			label = room.Category
		}
		ops = append(ops,
			Op{Kind: OpText, Class: ClassRoomLabel, X1: cx, Y1: cy - 7, Text: label},
			Op{Kind: OpText, Class: ClassRoomLabel, X1: cx, Y1: cy + 7,
				Text: fmt.Sprintf("%s x %s · %.0f sqft", formatFeet(room.Width), formatFeet(room.Height), room.Area())},
		)
	}
	return ops
}

func previewOps(view editor.ViewState, preview *domain.Rect) []Op {
	if preview == nil || preview.Width <= 0 || preview.Height <= 0 {
		return nil
	}
	x1, y1 := view.WorldToScreen(preview.X, preview.Y)
	x2, y2 := view.WorldToScreen(preview.Right(), preview.Bottom())
	return []Op{
		{Kind: OpRect, Class: ClassPreview, X1: x1, Y1: y1, X2: x2, Y2: y2, Dashed: true},
		{Kind: OpText, Class: ClassPreview, X1: (x1 + x2) / 2, Y1: y1 - 8,
			Text: fmt.Sprintf("%s x %s", formatFeet(preview.Width), formatFeet(preview.Height))},
	}
}

// dimensionOps draws overall width/height dimension lines along the bounding
// box of all rooms.
func dimensionOps(plan domain.Plan, view editor.ViewState) []Op {
	if len(plan.Rooms) == 0 {
		return nil
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, r := range plan.Rooms {
		minX = math.Min(minX, r.X)
		minY = math.Min(minY, r.Y)
		maxX = math.Max(maxX, r.X+r.Width)
		maxY = math.Max(maxY, r.Y+r.Height)
	}

	const gap = 14.0
	x1, y1 := view.WorldToScreen(minX, minY)
	x2, y2 := view.WorldToScreen(maxX, maxY)
	return []Op{
		{Kind: OpLine, Class: ClassDimension, X1: x1, Y1: y2 + gap, X2: x2, Y2: y2 + gap},
		{Kind: OpText, Class: ClassDimension, X1: (x1 + x2) / 2, Y1: y2 + gap + 12, Text: formatFeet(maxX - minX)},
		{Kind: OpLine, Class: ClassDimension, X1: x2 + gap, Y1: y1, X2: x2 + gap, Y2: y2},
		{Kind: OpText, Class: ClassDimension, X1: x2 + gap + 12, Y1: (y1 + y2) / 2, Text: formatFeet(maxY - minY)},
	}
}

func formatFeet(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f ft", v)
	}
	return fmt.Sprintf("%.1f ft", v)
}
