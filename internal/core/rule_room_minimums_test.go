package core

import (
	"strings"
	"testing"
)

func TestRoomMinimumsUndersizedBedroom(t *testing.T) {
	// 6x8 = 48 sqft bedroom against the 70 sqft minimum: exactly one fail
	// referencing the room id, even though the 6 ft dimension is also under
	// the 7 ft minimum.
	plan := Plan{
		Rooms: []Room{
			{ID: "bed-1", Category: "bedroom", Width: 6, Height: 8, HasEgressWindow: true},
			{ID: "bath-1", Category: "bathroom", Width: 6, Height: 8},
		},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})

	var fails []ConstraintResult
	for _, r := range results {
		if r.Status == StatusFail {
			fails = append(fails, r)
		}
	}
	if len(fails) != 1 {
		t.Fatalf("expected exactly one failure, got %d: %+v", len(fails), results)
	}
	if !strings.Contains(fails[0].Witness, "bed-1") || !strings.Contains(fails[0].Witness, "48 sqft") {
		t.Fatalf("failure must reference the room id and area, got %q", fails[0].Witness)
	}
}

func TestRoomMinimumsBedroomOnlyAreaFailForCompliantDimensions(t *testing.T) {
	// 7x9 = 63 sqft: area fails, dimension passes.
	plan := Plan{
		Rooms: []Room{
			{ID: "bed-1", Category: "bedroom", Width: 7, Height: 9, HasEgressWindow: true},
			{ID: "bath-1", Category: "bathroom", Width: 5, Height: 6},
		},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})
	var fails int
	for _, r := range results {
		if r.Status == StatusFail {
			fails++
		}
	}
	if fails != 1 {
		t.Fatalf("expected a single failure, got %d: %+v", fails, results)
	}
}

func TestRoomMinimumsEgressWarn(t *testing.T) {
	plan := Plan{
		Rooms: []Room{
			{ID: "bed-1", Category: "bedroom", Width: 10, Height: 12},
			{ID: "bath-1", Category: "bathroom", Width: 5, Height: 6},
		},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})
	found := false
	for _, r := range results {
		if r.Status == StatusWarn && strings.Contains(r.Message, "egress") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an egress warn, got %+v", results)
	}
}

func TestRoomMinimumsDatasetWarnings(t *testing.T) {
	plan := Plan{
		Rooms: []Room{{ID: "k", Category: "kitchen", Width: 10, Height: 10}},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})
	var warns int
	for _, r := range results {
		if r.Status == StatusWarn {
			warns++
		}
	}
	// No bedrooms and no bathrooms.
	if warns != 2 {
		t.Fatalf("expected 2 dataset warns, got %d: %+v", warns, results)
	}
}

func TestRoomMinimumsNarrowHallway(t *testing.T) {
	plan := Plan{
		Rooms: []Room{
			{ID: "bed-1", Category: "bedroom", Width: 10, Height: 12, HasEgressWindow: true},
			{ID: "bath-1", Category: "bathroom", Width: 5, Height: 6},
			{ID: "hall-1", Category: "hallway", Width: 2.5, Height: 20},
		},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})
	found := false
	for _, r := range results {
		if r.Status == StatusFail && strings.Contains(r.Witness, "hall-1") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a hallway-width failure, got %+v", results)
	}
}

func TestRoomMinimumsEmptyPlanWarns(t *testing.T) {
	results := NewRoomMinimumsRule().Evaluate(Plan{}, fixedRef{})
	if len(results) != 1 || results[0].Status != StatusWarn {
		t.Fatalf("expected a single guidance warn, got %+v", results)
	}
}

func TestRoomMinimumsUnknownCategorySkipped(t *testing.T) {
	plan := Plan{
		Rooms: []Room{
			{ID: "x", Category: "observatory", Width: 1, Height: 1},
			{ID: "bed-1", Category: "bedroom", Width: 10, Height: 12, HasEgressWindow: true},
			{ID: "bath-1", Category: "bathroom", Width: 5, Height: 6},
		},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})
	if len(results) != 1 || results[0].Status != StatusPass {
		t.Fatalf("unknown category should be skipped, got %+v", results)
	}
}

func TestRoomMinimumsCompliantPlanSinglePass(t *testing.T) {
	plan := Plan{
		Rooms: []Room{
			{ID: "bed-1", Category: "bedroom", Width: 10, Height: 12, HasEgressWindow: true},
			{ID: "bath-1", Category: "bathroom", Width: 5, Height: 6},
			{ID: "k-1", Category: "kitchen", Width: 10, Height: 10},
		},
	}
	results := NewRoomMinimumsRule().Evaluate(plan, fixedRef{})
	if len(results) != 1 || results[0].Status != StatusPass {
		t.Fatalf("expected a single pass, got %+v", results)
	}
}
