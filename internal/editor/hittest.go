package editor

import "plancore/pkg/domain"

// HitRoom returns the topmost room containing the world point. Rooms later
// in the plan's list render on top, so the scan runs back to front; ties go
// to the most recently added room.
func HitRoom(plan domain.Plan, wx, wy float64) (domain.Room, bool) {
	for i := len(plan.Rooms) - 1; i >= 0; i-- {
		r := plan.Rooms[i]
		if wx >= r.X && wx <= r.X+r.Width && wy >= r.Y && wy <= r.Y+r.Height {
			return r, true
		}
	}
	return domain.Room{}, false
}
