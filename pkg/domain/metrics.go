package domain

// Derived-metric functions shared by the rule layers and the summary
// aggregator. The engineering, zoning, and setback layers all consume these
// rather than carrying private copies of the same formulas.

// Rect is an axis-aligned rectangle in feet, top-left origin.
type Rect struct {
	X      float64 `json:"x_ft"`
	Y      float64 `json:"y_ft"`
	Width  float64 `json:"width_ft"`
	Height float64 `json:"height_ft"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the point lies inside or on the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// interiorRooms filters out rooms whose category is flagged exterior.
// Unknown categories count as interior so a typo never drops a room from
// structural checks silently.
func interiorRooms(plan Plan, ref ReferenceData) []Room {
	out := make([]Room, 0, len(plan.Rooms))
	for _, room := range plan.Rooms {
		if rt, ok := ref.RoomType(room.Category); ok && rt.Exterior {
			continue
		}
		out = append(out, room)
	}
	return out
}

// InteriorArea sums the floor area of all non-exterior rooms.
func InteriorArea(plan Plan, ref ReferenceData) float64 {
	var total float64
	for _, room := range interiorRooms(plan, ref) {
		total += room.Area()
	}
	return total
}

// MaxClearSpan returns the widest clear span across non-exterior rooms,
// where a room's span is its narrower dimension.
func MaxClearSpan(plan Plan, ref ReferenceData) float64 {
	var max float64
	for _, room := range interiorRooms(plan, ref) {
		if span := room.MinDimension(); span > max {
			max = span
		}
	}
	return max
}

// InteriorBounds returns the axis-aligned bounding box of all non-exterior
// rooms. ok is false when the plan has no interior rooms.
func InteriorBounds(plan Plan, ref ReferenceData) (Rect, bool) {
	rooms := interiorRooms(plan, ref)
	if len(rooms) == 0 {
		return Rect{}, false
	}
	minX, minY := rooms[0].X, rooms[0].Y
	maxX, maxY := rooms[0].X+rooms[0].Width, rooms[0].Y+rooms[0].Height
	for _, room := range rooms[1:] {
		if room.X < minX {
			minX = room.X
		}
		if room.Y < minY {
			minY = room.Y
		}
		if right := room.X + room.Width; right > maxX {
			maxX = right
		}
		if bottom := room.Y + room.Height; bottom > maxY {
			maxY = bottom
		}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}

// LotCoverage returns footprint area over lot area, or 0 for a degenerate lot.
func LotCoverage(plan Plan, ref ReferenceData) float64 {
	lotArea := plan.LotWidth * plan.LotDepth
	if lotArea <= 0 {
		return 0
	}
	return InteriorArea(plan, ref) / lotArea
}

// BuildableRect derives the lot area remaining after setbacks. Front is the
// top edge (y = 0). On a corner lot the right side uses the corner-side
// setback. The result may have non-positive width or height when setbacks
// consume the whole lot.
func BuildableRect(plan Plan, j Jurisdiction) Rect {
	right := j.Setbacks.SideInterior
	if plan.CornerLot {
		right = j.Setbacks.SideCorner
	}
	return Rect{
		X:      j.Setbacks.SideInterior,
		Y:      j.Setbacks.Front,
		Width:  plan.LotWidth - j.Setbacks.SideInterior - right,
		Height: plan.LotDepth - j.Setbacks.Front - j.Setbacks.Rear,
	}
}

// EstimatedHeight approximates building height from story count: ten feet
// per story plus a three-foot roof allowance.
func EstimatedHeight(stories int) float64 {
	return float64(stories)*10 + 3
}

// CountCategory counts rooms of the given category key.
func CountCategory(plan Plan, category string) int {
	n := 0
	for _, room := range plan.Rooms {
		if room.Category == category {
			n++
		}
	}
	return n
}

// Summary holds the derived statistics recomputed alongside every
// evaluation. Outputs only; the rule layers read the same underlying
// metric functions, never this struct.
type Summary struct {
	RoomCount     int     `json:"room_count"`
	TotalArea     float64 `json:"total_area_sqft"`
	MaxSpan       float64 `json:"max_span_ft"`
	Bedrooms      int     `json:"bedrooms"`
	Bathrooms     int     `json:"bathrooms"`
	LotCoverage   float64 `json:"lot_coverage"`
	BuildableArea float64 `json:"buildable_area_sqft"`
	EstHeight     float64 `json:"estimated_height_ft"`
}

// Summarize computes the summary statistics for a plan.
func Summarize(plan Plan, ref ReferenceData) Summary {
	j := ref.Jurisdiction(plan.JurisdictionKey)
	buildable := BuildableRect(plan, j)
	buildableArea := buildable.Width * buildable.Height
	if buildableArea < 0 {
		buildableArea = 0
	}
	return Summary{
		RoomCount:     len(plan.Rooms),
		TotalArea:     InteriorArea(plan, ref),
		MaxSpan:       MaxClearSpan(plan, ref),
		Bedrooms:      CountCategory(plan, "bedroom"),
		Bathrooms:     CountCategory(plan, "bathroom"),
		LotCoverage:   LotCoverage(plan, ref),
		BuildableArea: buildableArea,
		EstHeight:     EstimatedHeight(plan.Stories),
	}
}
