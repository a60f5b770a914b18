package exports

import (
	"encoding/csv"
	"strings"
	"testing"

	"plancore/pkg/domain"
)

func TestRenderCSVOneRowPerResult(t *testing.T) {
	ev := domain.Evaluation{
		Results: []domain.ConstraintResult{
			{ID: "licensing.units", Name: "Licensing exemption", Layer: 1, Status: domain.StatusPass, Message: "ok"},
			{ID: "setback.left", Name: "Setback", Layer: 7, Status: domain.StatusFail, Message: "encroaches", Witness: "left side"},
		},
	}
	payload, err := renderCSV(ev)
	if err != nil {
		t.Fatalf("renderCSV: %v", err)
	}
	rows, err := csv.NewReader(strings.NewReader(string(payload))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("row count = %d, want header + 2", len(rows))
	}
	if rows[2][0] != "7" || rows[2][2] != "fail" || rows[2][5] != "left side" {
		t.Fatalf("unexpected fail row: %v", rows[2])
	}
}

func TestRenderSVGEscapesLabels(t *testing.T) {
	plan := domain.Plan{
		Name:     "A <&> B",
		LotWidth: 50, LotDepth: 100,
		Rooms: []domain.Room{
			{Category: "bedroom", Label: "Kids <room>", X: 10, Y: 30, Width: 10, Height: 10},
		},
	}
	svg := string(renderSVG(plan, domain.Jurisdiction{
		Name:     "City of Austin",
		Setbacks: domain.Setbacks{Front: 25, Rear: 5, SideInterior: 5, SideCorner: 15},
	}))

	if strings.Contains(svg, "Kids <room>") {
		t.Fatal("label not escaped")
	}
	if !strings.Contains(svg, "Kids &lt;room&gt;") {
		t.Fatal("escaped label missing")
	}
	if !strings.Contains(svg, `stroke-dasharray`) {
		t.Fatal("setback rectangle missing")
	}
	if !strings.Contains(svg, "10 ft x 10 ft") {
		t.Fatal("room dimension label missing")
	}
}

func TestRenderSVGOmitsDegenerateSetbackRect(t *testing.T) {
	plan := domain.Plan{Name: "tiny", LotWidth: 8, LotDepth: 20}
	svg := string(renderSVG(plan, domain.Jurisdiction{
		Setbacks: domain.Setbacks{Front: 25, Rear: 5, SideInterior: 5, SideCorner: 5},
	}))
	if strings.Contains(svg, "stroke-dasharray") {
		t.Fatal("degenerate buildable area should draw no setback rect")
	}
}
