package flight

import (
	"errors"

	"github.com/google/uuid"

	"github.com/lixenwraith/ringflight/curve"
	"github.com/lixenwraith/ringflight/parameter"
	"github.com/lixenwraith/ringflight/planner"
	"github.com/lixenwraith/ringflight/ring"
	"github.com/lixenwraith/ringflight/vmath"
)

// ErrInsufficientTargets is returned when a route cannot be planned from the current field
var ErrInsufficientTargets = errors.New("flight: not enough rings to plan a route")

// Kind distinguishes the camera-carrying player from autonomous drones
type Kind uint8

const (
	KindPlayer Kind = iota
	KindDrone
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "drone"
}

// Agent is anything that follows a flight curve: the player camera or a drone
type Agent struct {
	ID    uuid.UUID
	Kind  Kind
	Speed float64 // world units per tick

	Mode    curve.Mode
	Tension float64

	Curve    *curve.Curve
	Path     *planner.Path
	Progress float64 // normalized arc length, [0,1)

	Route       []int // target ring ids of the current curve, in order
	StartID     int   // ring the current route departs from
	NextStartID int   // last target, the departure ring of the following route
}

// NewPlayer creates the player agent at startID
func NewPlayer(startID int, speed float64, mode curve.Mode, tension float64) *Agent {
	return &Agent{
		ID:      uuid.New(),
		Kind:    KindPlayer,
		Speed:   speed,
		Mode:    mode,
		Tension: tension,
		StartID: startID,
	}
}

// NewDrone creates a drone at startID with speed jittered around base
func NewDrone(startID int, base float64, mode curve.Mode, tension float64, rng *vmath.FastRand) *Agent {
	return &Agent{
		ID:      uuid.New(),
		Kind:    KindDrone,
		Speed:   base * rng.Range(parameter.DroneSpeedMin, parameter.DroneSpeedMax),
		Mode:    mode,
		Tension: tension,
		StartID: startID,
	}
}

// Replan shuffles every ring except StartID into a new route and builds its curve
// On failure the previous curve and route are kept
func (a *Agent) Replan(p *planner.Planner, field *ring.Field, rng *vmath.FastRand) error {
	route := rng.Shuffle(field.IDsExcept(a.StartID))
	if len(route) == 0 {
		return ErrInsufficientTargets
	}

	path := p.Plan(a.StartID, route)
	if path == nil || len(path.Targets) == 0 {
		return ErrInsufficientTargets
	}
	c, err := curve.New(path.Points, a.Mode, a.Tension)
	if err != nil {
		return ErrInsufficientTargets
	}

	a.Curve = c
	a.Path = path
	a.Route = path.Targets
	a.NextStartID = route[len(route)-1]
	a.Progress = 0
	return nil
}

// Rollover departs from the previous route's last target and replans
func (a *Agent) Rollover(p *planner.Planner, field *ring.Field, rng *vmath.FastRand) error {
	a.StartID = a.NextStartID
	return a.Replan(p, field, rng)
}

// Clear drops the curve, used on world teardown
func (a *Agent) Clear() {
	a.Curve = nil
	a.Path = nil
	a.Route = nil
	a.Progress = 0
}
