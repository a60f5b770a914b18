package core

import (
	"fmt"

	"plancore/pkg/domain"
)

// NewRoomMinimumsRule returns the layer-4 minimum room size / IRC compliance
// check. Each violation appends its own result; rooms with an unknown
// category are skipped rather than rejected.
func NewRoomMinimumsRule() domain.Rule {
	return roomMinimumsRule{}
}

type roomMinimumsRule struct{}

func (roomMinimumsRule) ID() string { return "room_minimums" }

func (roomMinimumsRule) Layer() int { return 4 }

func (r roomMinimumsRule) Evaluate(plan Plan, ref ReferenceData) []ConstraintResult {
	sc := ref.Constants()

	result := func(status Status, message, witness, resolution string) ConstraintResult {
		return ConstraintResult{
			ID:         r.ID(),
			Name:       "Minimum room sizes (IRC)",
			Layer:      r.Layer(),
			Status:     status,
			Message:    message,
			Witness:    witness,
			Resolution: resolution,
		}
	}

	if len(plan.Rooms) == 0 {
		return []ConstraintResult{result(StatusWarn,
			"No rooms drawn yet.",
			"",
			"Sketch the room layout to run size and egress checks.")}
	}

	var findings []ConstraintResult
	bedrooms, bathrooms := 0, 0
	for _, room := range plan.Rooms {
		if room.Category == "bedroom" {
			bedrooms++
		}
		if room.Category == "bathroom" {
			bathrooms++
		}
		rt, ok := ref.RoomType(room.Category)
		if !ok {
			continue
		}
		switch {
		// One size failure per room: an undersized room reports its area
		// first, and the dimension check applies only once the area clears.
		case rt.MinArea > 0 && room.Area() < rt.MinArea:
			findings = append(findings, result(StatusFail,
				fmt.Sprintf("%s is below the minimum area for a %s.", roomName(room), rt.Label),
				fmt.Sprintf("room %s: %.0f sqft < %.0f sqft minimum", room.ID, room.Area(), rt.MinArea),
				fmt.Sprintf("Enlarge the room to at least %.0f sqft.", rt.MinArea)))
		case rt.MinDimension > 0 && room.MinDimension() < rt.MinDimension:
			findings = append(findings, result(StatusFail,
				fmt.Sprintf("%s is narrower than the minimum for a %s.", roomName(room), rt.Label),
				fmt.Sprintf("room %s: %.1f ft < %.1f ft minimum dimension", room.ID, room.MinDimension(), rt.MinDimension),
				fmt.Sprintf("Widen the room to at least %.1f ft.", rt.MinDimension)))
		}
		if rt.RequiresEgress && !room.HasEgressWindow {
			findings = append(findings, result(StatusWarn,
				fmt.Sprintf("%s has no egress window.", roomName(room)),
				fmt.Sprintf("room %s: sleeping rooms require an emergency escape opening", room.ID),
				"Add a window meeting egress size and sill-height rules."))
		}
		if room.Category == "hallway" && room.MinDimension() < sc.MinHallwayWidthFt {
			findings = append(findings, result(StatusFail,
				fmt.Sprintf("%s is narrower than the minimum hallway width.", roomName(room)),
				fmt.Sprintf("room %s: %.1f ft < %.1f ft minimum", room.ID, room.MinDimension(), sc.MinHallwayWidthFt),
				fmt.Sprintf("Widen the hallway to at least %.1f ft.", sc.MinHallwayWidthFt)))
		}
	}

	if bedrooms == 0 {
		findings = append(findings, result(StatusWarn,
			"Plan has no bedrooms.",
			"",
			"Add at least one bedroom for a habitable dwelling."))
	}
	if bathrooms == 0 {
		findings = append(findings, result(StatusWarn,
			"Plan has no bathrooms.",
			"",
			"Add at least one bathroom for a habitable dwelling."))
	}

	if len(findings) == 0 {
		return []ConstraintResult{result(StatusPass,
			"All rooms meet their category minimums.",
			fmt.Sprintf("%d room(s) checked", len(plan.Rooms)),
			"")}
	}
	return findings
}

func roomName(room Room) string {
	if room.Label != "" {
		return room.Label
	}
	return room.Category
}
