package event

import "github.com/google/uuid"

// NightModePayload carries the requested theme
type NightModePayload struct {
	Night bool `json:"night" msgpack:"night"`
}

// TuningPayload carries optional parameter changes; nil fields are left untouched
type TuningPayload struct {
	Speed           *float64 `json:"speed,omitempty" msgpack:"speed,omitempty"`
	CruiseHeight    *float64 `json:"cruise_height,omitempty" msgpack:"cruise_height,omitempty"`
	SplineTension   *float64 `json:"spline_tension,omitempty" msgpack:"spline_tension,omitempty"`
	CurveMode       *string  `json:"curve_mode,omitempty" msgpack:"curve_mode,omitempty"`
	RingCount       *int     `json:"ring_count,omitempty" msgpack:"ring_count,omitempty"`
	DroneCount      *int     `json:"drone_count,omitempty" msgpack:"drone_count,omitempty"`
	TerrainSize     *float64 `json:"terrain_size,omitempty" msgpack:"terrain_size,omitempty"`
	PreRingDistance *float64 `json:"pre_ring_distance,omitempty" msgpack:"pre_ring_distance,omitempty"`
	MaxRingHeight   *float64 `json:"max_ring_height,omitempty" msgpack:"max_ring_height,omitempty"`
}

// Reshapes reports whether the change requires regenerating the ring field
func (p *TuningPayload) Reshapes() bool {
	return p.SplineTension != nil || p.CurveMode != nil || p.RingCount != nil || p.DroneCount != nil ||
		p.TerrainSize != nil || p.PreRingDistance != nil || p.MaxRingHeight != nil
}

// WorldGeneratedPayload describes a new field
type WorldGeneratedPayload struct {
	WorldID uuid.UUID `json:"world_id" msgpack:"world_id"`
	Rings   int       `json:"rings" msgpack:"rings"`
	Drones  int       `json:"drones" msgpack:"drones"`
}

// RoundPayload describes the player's route
type RoundPayload struct {
	StartID int   `json:"start_id" msgpack:"start_id"`
	Targets []int `json:"targets" msgpack:"targets"`
}

// RingPassedPayload describes one crossing
type RingPassedPayload struct {
	RingID    int `json:"ring_id" msgpack:"ring_id"`
	Remaining int `json:"remaining" msgpack:"remaining"`
}
