// Package domain defines the floor-plan entities, reference-data records,
// constraint-result primitives, and rule evaluation contracts used by plancore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityPlan identifies a floor-plan document.
	EntityPlan EntityType = "plan"
	// EntityRoom identifies a room within a plan.
	EntityRoom EntityType = "room"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Plan is a floor-plan document: one lot, one jurisdiction, one building type,
// and an ordered collection of rooms. The room order is the z-order; the
// last-added room renders on top and is hit-tested first.
type Plan struct {
	Base
	Name            string  `json:"name"`
	JurisdictionKey string  `json:"jurisdiction_key"`
	BuildingTypeKey string  `json:"building_type_key"`
	Stories         int     `json:"stories"`
	IntendedUse     string  `json:"intended_use"`
	LotWidth        float64 `json:"lot_width_ft"`
	LotDepth        float64 `json:"lot_depth_ft"`
	CornerLot       bool    `json:"corner_lot"`
	SurveyProvided  bool    `json:"survey_provided"`
	Rooms           []Room  `json:"rooms"`
}

// Room is an axis-aligned rectangle on the lot, in feet with a top-left
// origin. Width and height are kept positive by the editor.
type Room struct {
	ID              string  `json:"id"`
	Category        string  `json:"category"`
	Label           string  `json:"label"`
	X               float64 `json:"x_ft"`
	Y               float64 `json:"y_ft"`
	Width           float64 `json:"width_ft"`
	Height          float64 `json:"height_ft"`
	HasEgressWindow bool    `json:"has_egress_window"`
	WindowArea      float64 `json:"window_area_sqft"`
}

// Area returns the room's floor area in square feet.
func (r Room) Area() float64 { return r.Width * r.Height }

// MinDimension returns the narrower of the room's two dimensions.
func (r Room) MinDimension() float64 {
	if r.Width < r.Height {
		return r.Width
	}
	return r.Height
}

// FindRoom locates a room by id and returns its z-order index.
func (p *Plan) FindRoom(id string) (*Room, int) {
	for i := range p.Rooms {
		if p.Rooms[i].ID == id {
			return &p.Rooms[i], i
		}
	}
	return nil, -1
}

// Clone returns a deep copy of the plan.
func (p Plan) Clone() Plan {
	cp := p
	cp.Rooms = append([]Room(nil), p.Rooms...)
	return cp
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	PlanID string
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported operations captured in the audit trail.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)
