package render

import (
	"testing"

	"plancore/internal/editor"
	"plancore/pkg/domain"
)

func testJurisdiction() domain.Jurisdiction {
	return domain.Jurisdiction{
		Key:      "austin",
		Setbacks: domain.Setbacks{Front: 25, Rear: 5, SideInterior: 5, SideCorner: 15},
	}
}

func testPlan() domain.Plan {
	return domain.Plan{
		LotWidth: 50, LotDepth: 100,
		Rooms: []domain.Room{
			{ID: "r1", Category: "bedroom", Label: "Primary", X: 10, Y: 30, Width: 12, Height: 12},
			{ID: "r2", Category: "bathroom", X: 22, Y: 30, Width: 3, Height: 3},
		},
	}
}

func classCount(ops []Op, class string) int {
	n := 0
	for _, op := range ops {
		if op.Class == class {
			n++
		}
	}
	return n
}

func TestGridSpacingAdaptsToZoom(t *testing.T) {
	cases := []struct {
		scale float64
		want  float64
	}{
		{30, 1},
		{20, 1},
		{10, 5},
		{8, 5},
		{4, 10},
	}
	for _, tc := range cases {
		if got := GridSpacing(tc.scale); got != tc.want {
			t.Fatalf("GridSpacing(%v) = %v, want %v", tc.scale, got, tc.want)
		}
	}
}

func TestRenderPassOrder(t *testing.T) {
	view := editor.ViewState{Scale: 10}
	ops := Render(testPlan(), testJurisdiction(), view, Options{})

	order := map[string]int{}
	for i, op := range ops {
		if _, ok := order[op.Class]; !ok {
			order[op.Class] = i
		}
	}
	// Grid under lot under setback under rooms under dimensions.
	for _, pair := range [][2]string{
		{ClassGridMajor, ClassLot},
		{ClassLot, ClassSetback},
		{ClassSetback, ClassRoom},
		{ClassRoom, ClassDimension},
		{ClassDimension, ClassNorth},
	} {
		if order[pair[0]] >= order[pair[1]] {
			t.Fatalf("%s should paint before %s: %v", pair[0], pair[1], order)
		}
	}
}

func TestRenderGridMajorsEveryTenFeet(t *testing.T) {
	view := editor.ViewState{Scale: 10} // 5-ft minor spacing
	ops := Render(testPlan(), testJurisdiction(), view, Options{})

	// 50x100 lot with 5-ft spacing: 11 vertical + 21 horizontal lines, of
	// which 6 vertical + 11 horizontal fall on 10-ft majors.
	if got := classCount(ops, ClassGridMajor); got != 17 {
		t.Fatalf("expected 17 major grid lines, got %d", got)
	}
	if got := classCount(ops, ClassGrid); got != 15 {
		t.Fatalf("expected 15 minor grid lines, got %d", got)
	}
}

func TestRenderSetbackRectDashedAndInset(t *testing.T) {
	view := editor.ViewState{Scale: 10}
	ops := Render(testPlan(), testJurisdiction(), view, Options{})

	var setback *Op
	for i := range ops {
		if ops[i].Class == ClassSetback {
			setback = &ops[i]
		}
	}
	if setback == nil || !setback.Dashed {
		t.Fatalf("expected dashed setback rect, got %+v", setback)
	}
	// Buildable area x 5..45, y 25..95 at 10 px/ft.
	if setback.X1 != 50 || setback.Y1 != 250 || setback.X2 != 450 || setback.Y2 != 950 {
		t.Fatalf("setback rect misplaced: %+v", setback)
	}
}

func TestRenderSelectionAndLabelThreshold(t *testing.T) {
	view := editor.ViewState{Scale: 10}
	ops := Render(testPlan(), testJurisdiction(), view, Options{SelectedRoomID: "r1"})

	if classCount(ops, ClassRoomSelected) != 1 {
		t.Fatal("expected exactly one selected room rect")
	}
	if classCount(ops, ClassRoom) != 1 {
		t.Fatal("expected one unselected room rect")
	}
	// r1 is 120x120 px and labeled; r2 is 30x30 px, below the label
	// threshold.
	labels := 0
	for _, op := range ops {
		if op.Class == ClassRoomLabel {
			labels++
			if op.Text == "bathroom" {
				t.Fatal("tiny room should not be labeled")
			}
		}
	}
	if labels != 2 {
		t.Fatalf("expected label and dimension text for r1 only, got %d", labels)
	}
}

func TestRenderPreviewWithLiveDimensions(t *testing.T) {
	view := editor.ViewState{Scale: 10}
	preview := domain.Rect{X: 5, Y: 5, Width: 12, Height: 9}
	ops := Render(testPlan(), testJurisdiction(), view, Options{Preview: &preview})

	previews := 0
	var text string
	for _, op := range ops {
		if op.Class == ClassPreview {
			previews++
			if op.Kind == OpText {
				text = op.Text
			}
		}
	}
	if previews != 2 {
		t.Fatalf("expected preview rect and readout, got %d ops", previews)
	}
	if text != "12 ft x 9 ft" {
		t.Fatalf("unexpected readout %q", text)
	}
}

func TestRenderEmptyPlanStillHasNorthGlyph(t *testing.T) {
	view := editor.ViewState{Scale: 10}
	ops := Render(domain.Plan{}, domain.UnincorporatedJurisdiction(), view, Options{})

	if classCount(ops, ClassNorth) != 1 {
		t.Fatal("expected north indicator")
	}
	if classCount(ops, ClassDimension) != 0 {
		t.Fatal("no dimension lines without rooms")
	}
}
