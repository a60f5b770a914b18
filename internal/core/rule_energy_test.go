package core

import (
	"strings"
	"testing"
)

func TestEnergyRatioOverLimitWarns(t *testing.T) {
	// Bounding box 20x10 ft, perimeter 60 ft, 9 ft ceilings: 540 sqft of
	// wall. 200 sqft of glazing is well over the 30% cap.
	plan := Plan{
		Rooms: []Room{
			{ID: "a", Category: "living", X: 0, Y: 0, Width: 20, Height: 10, WindowArea: 200},
		},
	}
	results := NewEnergyRule().Evaluate(plan, fixedRef{})
	if len(results) != 1 || results[0].Status != StatusWarn {
		t.Fatalf("expected warn, got %+v", results)
	}
	if !strings.Contains(results[0].Witness, "540") {
		t.Fatalf("witness should cite the wall area, got %q", results[0].Witness)
	}
}

func TestEnergyRatioUnderLimitPasses(t *testing.T) {
	plan := Plan{
		Rooms: []Room{
			{ID: "a", Category: "living", X: 0, Y: 0, Width: 20, Height: 10, WindowArea: 100},
		},
	}
	results := NewEnergyRule().Evaluate(plan, fixedRef{})
	if len(results) != 1 || results[0].Status != StatusPass {
		t.Fatalf("expected pass, got %+v", results)
	}
}

func TestEnergyNoGlazingDataInformationalPass(t *testing.T) {
	plan := Plan{
		JurisdictionKey: "austin",
		Rooms:           []Room{{ID: "a", Category: "living", Width: 20, Height: 15}},
	}
	results := NewEnergyRule().Evaluate(plan, fixedRef{})
	if len(results) != 1 || results[0].Status != StatusPass {
		t.Fatalf("expected informational pass, got %+v", results)
	}
	if !strings.Contains(results[0].Witness, "IECC") {
		t.Fatalf("pass should carry the climate-zone guidance, got %q", results[0].Witness)
	}
}
