package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/ringflight/effect"
	"github.com/lixenwraith/ringflight/particle"
)

// Snapshot is a self-contained copy of everything a renderer draws for one tick
type Snapshot struct {
	WorldID string `json:"world_id" msgpack:"world_id"`
	Tick    uint64 `json:"tick" msgpack:"tick"`
	Night   bool   `json:"night" msgpack:"night"`
	Status  string `json:"status" msgpack:"status"`

	Rings     []RingView     `json:"rings" msgpack:"rings"`
	Player    PlayerView     `json:"player" msgpack:"player"`
	Drones    []DroneView    `json:"drones" msgpack:"drones"`
	Particles []ParticleView `json:"particles" msgpack:"particles"`
}

// RingView is one ring with its state colors and night beacon
type RingView struct {
	ID         int        `json:"id" msgpack:"id"`
	Center     mgl64.Vec3 `json:"center" msgpack:"center"`
	Normal     mgl64.Vec3 `json:"normal" msgpack:"normal"`
	Yaw        float64    `json:"yaw" msgpack:"yaw"`
	Radius     float64    `json:"radius" msgpack:"radius"`
	PostHeight float64    `json:"post_height" msgpack:"post_height"`
	State      string     `json:"state" msgpack:"state"`
	Color      string     `json:"color" msgpack:"color"`
	Emissive   string     `json:"emissive" msgpack:"emissive"`
	Beacon     BeaconView `json:"beacon" msgpack:"beacon"`
}

type BeaconView struct {
	Visible bool    `json:"visible" msgpack:"visible"`
	Color   string  `json:"color,omitempty" msgpack:"color,omitempty"`
	Opacity float64 `json:"opacity" msgpack:"opacity"`
	Scale   float64 `json:"scale" msgpack:"scale"`
}

// PlayerView is the camera pose and round progress
type PlayerView struct {
	Position  mgl64.Vec3   `json:"position" msgpack:"position"`
	Gaze      mgl64.Vec3   `json:"gaze" msgpack:"gaze"`
	Tangent   mgl64.Vec3   `json:"tangent" msgpack:"tangent"`
	Progress  float64      `json:"progress" msgpack:"progress"`
	Route     []int        `json:"route" msgpack:"route"`
	Cursor    int          `json:"cursor" msgpack:"cursor"`
	Remaining int          `json:"remaining" msgpack:"remaining"`
	Look      string       `json:"look" msgpack:"look"`
	Curve     []mgl64.Vec3 `json:"curve,omitempty" msgpack:"curve,omitempty"`
}

// DroneView is one drone and its tapered ribbon
type DroneView struct {
	ID           string          `json:"id" msgpack:"id"`
	Position     mgl64.Vec3      `json:"position" msgpack:"position"`
	Heading      mgl64.Vec3      `json:"heading" msgpack:"heading"`
	Color        string          `json:"color" msgpack:"color"`
	Scale        float64         `json:"scale" msgpack:"scale"`
	Trail        [][2]mgl64.Vec3 `json:"trail,omitempty" msgpack:"trail,omitempty"`
	TrailOpacity float64         `json:"trail_opacity" msgpack:"trail_opacity"`
}

// ParticleView is one live flame particle
type ParticleView struct {
	Ring      int        `json:"ring" msgpack:"ring"`
	Position  mgl64.Vec3 `json:"position" msgpack:"position"`
	Color     string     `json:"color" msgpack:"color"`
	Emissive  string     `json:"emissive" msgpack:"emissive"`
	Intensity float64    `json:"intensity" msgpack:"intensity"`
	Opacity   float64    `json:"opacity" msgpack:"opacity"`
	Scale     float64    `json:"scale" msgpack:"scale"`
}

// Snapshot builds a fresh snapshot of the current tick; tick goroutine only
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Tick:   w.tick,
		Night:  w.night,
		Status: w.message,
	}
	if w.field == nil {
		return s
	}
	s.WorldID = w.id.String()

	rings := w.field.Rings()
	s.Rings = make([]RingView, len(rings))
	for i := range rings {
		r := &rings[i]
		b := effect.Beacon(r.State, w.night)
		rv := RingView{
			ID:         r.ID,
			Center:     r.Center,
			Normal:     r.Normal,
			Yaw:        r.Yaw,
			Radius:     r.Radius,
			PostHeight: r.PostHeight,
			State:      r.State.String(),
			Color:      r.State.Color().Hex(),
			Emissive:   r.State.Emissive().Hex(),
			Beacon:     BeaconView{Visible: b.Visible, Opacity: b.Opacity, Scale: b.Scale},
		}
		if b.Visible {
			rv.Beacon.Color = b.Color.Hex()
		}
		s.Rings[i] = rv
	}

	s.Player = PlayerView{
		Position:  w.camera,
		Gaze:      w.gaze,
		Tangent:   w.tangent,
		Progress:  w.player.Progress,
		Route:     append([]int(nil), w.player.Route...),
		Cursor:    w.course.Cursor(),
		Remaining: w.course.Remaining(),
		Look:      w.look.State().String(),
		Curve:     w.polyline,
	}

	opacity := effect.TrailOpacity(w.night)
	s.Drones = make([]DroneView, len(w.drones))
	for i, d := range w.drones {
		s.Drones[i] = DroneView{
			ID:           d.Agent.ID.String(),
			Position:     d.Pose.Position,
			Heading:      d.Pose.Tangent,
			Color:        d.Color.Hex(),
			Scale:        d.Scale,
			Trail:        d.Trail.Ribbon(),
			TrailOpacity: opacity,
		}
	}

	for _, f := range w.fires.Fires() {
		id := f.RingID()
		f.Each(func(p *particle.Particle, look effect.FlameLook) {
			s.Particles = append(s.Particles, ParticleView{
				Ring:      id,
				Position:  p.Position,
				Color:     look.Color.Hex(),
				Emissive:  look.Emissive.Hex(),
				Intensity: look.EmissiveIntensity,
				Opacity:   look.Opacity,
				Scale:     look.Scale,
			})
		})
	}
	return s
}
